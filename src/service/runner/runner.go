package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/service/analyzer"
	"di-quality/src/service/pipeline"
	"di-quality/src/util"
)

// Source supplies analyzer output for a project
type Source interface {
	Get(ctx context.Context, project analyzer.Project) (*analyzer.ProjectInput, error)
}

// Progress is notified once per finished project
type Progress interface {
	Add(n int) error
}

// Result holds the scored variants of one project. Err is set when the
// project failed and was skipped.
type Result struct {
	Project analyzer.Project
	Reports map[model.Variant]model.ProjectReport
	Err     error
}

// Runner scores many projects with bounded parallelism.
// Results keep the order of the projects passed in.
type Runner struct {
	source      Source
	options     []pipeline.Options
	maxParallel int
	failFast    bool
	progress    Progress
}

// NewRunner creates a runner scoring each project for every variant
func NewRunner(source Source, cfg *config.Config, variants []model.Variant) (*Runner, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("no index variants selected")
	}
	options := make([]pipeline.Options, 0, len(variants))
	for _, v := range variants {
		opts, err := pipeline.OptionsFromConfig(cfg, v)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v, err)
		}
		options = append(options, opts)
	}

	maxParallel := cfg.Concurrency.MaxParallelProjects
	if maxParallel < 1 {
		maxParallel = 1
	}

	util.Debug("Runner initialized with %d variants (max parallel: %d, fail fast: %v)",
		len(options), maxParallel, cfg.Analysis.FailFast)

	return &Runner{
		source:      source,
		options:     options,
		maxParallel: maxParallel,
		failFast:    cfg.Analysis.FailFast,
	}, nil
}

// WithProgress attaches a progress sink
func (r *Runner) WithProgress(p Progress) *Runner {
	r.progress = p
	return r
}

// RunAll scores every project. With fail-fast set the first failure cancels
// the remaining work and is returned; otherwise failures are recorded on
// their Result.
func (r *Runner) RunAll(ctx context.Context, projects []analyzer.Project) ([]Result, error) {
	startTime := time.Now()
	util.Info("Scoring %d projects", len(projects))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		results    = make([]Result, len(projects))
		progressMu sync.Mutex
		wg         sync.WaitGroup
		errChan    = make(chan error, len(projects))
		sem        = make(chan struct{}, r.maxParallel)
	)

	for i, p := range projects {
		wg.Add(1)
		go func(i int, project analyzer.Project) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire semaphore
			defer func() { <-sem }() // Release semaphore

			results[i] = r.runProject(ctx, project)
			if r.progress != nil {
				progressMu.Lock()
				_ = r.progress.Add(1)
				progressMu.Unlock()
			}

			if err := results[i].Err; err != nil {
				util.Error("Project %s failed: %v", project.Name, err)
				if r.failFast {
					errChan <- fmt.Errorf("project %s: %w", project.Name, err)
					cancel()
				}
			}
		}(i, p)
	}

	wg.Wait()
	close(errChan)

	if err, ok := <-errChan; ok {
		util.Error("Scoring aborted due to error: %v", err)
		return nil, err
	}

	util.Info("Scoring complete: %d projects (took %v)", len(projects), time.Since(startTime))
	return results, nil
}

func (r *Runner) runProject(ctx context.Context, project analyzer.Project) Result {
	res := Result{Project: project}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	projectStart := time.Now()
	in, err := r.source.Get(ctx, project)
	if err != nil {
		res.Err = err
		return res
	}

	res.Reports = make(map[model.Variant]model.ProjectReport, len(r.options))
	for _, opts := range r.options {
		rep, err := pipeline.Run(pipeline.Input{
			Project:    project.Name,
			Lines:      in.Lines,
			ClassNames: in.ClassNames,
			XMLBeans:   in.XMLBeans,
		}, opts)
		if err != nil {
			res.Err = err
			res.Reports = nil
			return res
		}
		res.Reports[opts.Variant] = rep
	}

	util.Debug("Project %s scored (took %v)", project.Name, time.Since(projectStart))
	return res
}
