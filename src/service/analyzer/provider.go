package analyzer

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"di-quality/src/config"
	"di-quality/src/util"
)

// ProjectInput is the analyzer output and name sets gathered for a project
type ProjectInput struct {
	Project    Project
	Lines      []string
	ClassNames []string
	XMLBeans   []string
}

// Provider gathers project inputs, caching them so several index variants
// over the same project cost a single analyzer run. The LRU is safe for
// concurrent use; two simultaneous misses on one project may both run the
// analyzer and the later result wins.
type Provider struct {
	executor   Executor
	cfg        config.AnalyzerConfig
	exclusions *util.ExclusionMatcher

	cache *lru.Cache[string, *ProjectInput]
}

// NewProvider creates a provider. A disabled cache disables memoization.
func NewProvider(executor Executor, cfg config.AnalyzerConfig, cacheCfg config.CacheConfig, exclusions *util.ExclusionMatcher) (*Provider, error) {
	p := &Provider{
		executor:   executor,
		cfg:        cfg,
		exclusions: exclusions,
	}
	if cacheCfg.Enabled {
		size := cacheCfg.MaxEntries
		if size <= 0 {
			size = 1
		}
		cache, err := lru.New[string, *ProjectInput](size)
		if err != nil {
			return nil, fmt.Errorf("creating analyzer cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

// Get returns the input for project, running the analyzer on a cache miss
func (p *Provider) Get(ctx context.Context, project Project) (*ProjectInput, error) {
	if in, ok := p.lookup(project.Dir); ok {
		util.Debug("Returning cached analyzer output for %s", project.Name)
		return in, nil
	}

	in, err := p.fetch(ctx, project)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Add(project.Dir, in)
	}
	return in, nil
}

func (p *Provider) lookup(key string) (*ProjectInput, bool) {
	if p.cache == nil {
		return nil, false
	}
	return p.cache.Get(key)
}

func (p *Provider) fetch(ctx context.Context, project Project) (*ProjectInput, error) {
	classFiles, err := FindFiles(project.Dir, p.cfg.ClassGlob, p.exclusions)
	if err != nil {
		return nil, err
	}
	beanFiles, err := FindFiles(project.Dir, p.cfg.BeanGlob, p.exclusions)
	if err != nil {
		return nil, err
	}

	lines, err := p.executor.Run(ctx, classFiles)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", project.Name, err)
	}

	in := &ProjectInput{
		Project:    project,
		Lines:      lines,
		ClassNames: ClassNames(classFiles),
		XMLBeans:   BeanClasses(beanFiles),
	}
	util.Info("Analyzed %s: %d class files, %d bean classes, %d output lines",
		project.Name, len(classFiles), len(in.XMLBeans), len(lines))
	return in, nil
}

// Len returns the number of cached projects
func (p *Provider) Len() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

// ClearCache drops all cached analyzer output
func (p *Provider) ClearCache() {
	if p.cache == nil {
		return
	}
	p.cache.Purge()
	util.Debug("Analyzer cache cleared")
}
