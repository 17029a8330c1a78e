package ingest

import (
	"strconv"
	"strings"
	"unicode"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/service/aggregate"
	"di-quality/src/service/di"
	"di-quality/src/util"
)

// LineKind classifies one line of analyzer output
type LineKind int

const (
	LineBlank LineKind = iota
	LineSentinel
	LineFieldTypes
	LineMethodParams
	LineMetrics
)

func (k LineKind) String() string {
	switch k {
	case LineSentinel:
		return "sentinel"
	case LineFieldTypes:
		return "field_types"
	case LineMethodParams:
		return "method_params"
	case LineMetrics:
		return "metrics"
	default:
		return "blank"
	}
}

// Stats counts what the parser has seen
type Stats struct {
	Lines       int
	ByKind      map[LineKind]int
	Orphaned    int // type-list lines with no open class
	Unnamed     int // metrics lines without a class name or without values
	Excluded    int // metrics lines for excluded classes
	ExtraValues int // numeric tokens beyond the schema
}

// Parser turns analyzer output lines into ClassRecords on a ProjectSummary.
// A Parser belongs to one project and is not safe for concurrent use.
type Parser struct {
	markers    config.IngestionConfig
	summary    *aggregate.ProjectSummary
	classifier *di.Classifier
	exclusions *util.ExclusionMatcher

	current  *model.ClassRecord
	skipping bool
	stats    Stats
}

// NewParser creates a parser feeding summary. exclusions may be nil.
func NewParser(markers config.IngestionConfig, summary *aggregate.ProjectSummary, classifier *di.Classifier, exclusions *util.ExclusionMatcher) *Parser {
	return &Parser{
		markers:    markers,
		summary:    summary,
		classifier: classifier,
		exclusions: exclusions,
		stats:      Stats{ByKind: make(map[LineKind]int)},
	}
}

// Feed consumes one raw line and returns how it was classified
func (p *Parser) Feed(line string) LineKind {
	p.stats.Lines++
	kind, fields := p.classify(line)
	p.stats.ByKind[kind]++

	switch kind {
	case LineSentinel:
		p.closeClass()
		p.skipping = false
	case LineFieldTypes, LineMethodParams:
		p.addTypes(kind, fields[1:])
	case LineMetrics:
		p.openClass(fields)
	}
	return kind
}

// Finish closes the last open class. The parser may not be fed afterwards.
func (p *Parser) Finish() {
	p.closeClass()
	util.Debug("Ingestion of %s: %d lines, %d classes, kinds=%v, orphaned=%d, unnamed=%d, excluded=%d",
		p.summary.Name, p.stats.Lines, p.summary.ClassCount(), p.stats.ByKind,
		p.stats.Orphaned, p.stats.Unnamed, p.stats.Excluded)
}

// Stats returns a snapshot of the parser counters
func (p *Parser) Stats() Stats {
	s := p.stats
	s.ByKind = make(map[LineKind]int, len(p.stats.ByKind))
	for k, v := range p.stats.ByKind {
		s.ByKind[k] = v
	}
	return s
}

// Classify reports the kind of line without changing any state
func (p *Parser) Classify(line string) LineKind {
	kind, _ := p.classify(line)
	return kind
}

func (p *Parser) classify(line string) (LineKind, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return LineBlank, nil
	}

	head := fields[0]
	if head == p.markers.Sentinel {
		return LineSentinel, fields
	}

	// The list may be glued to its tag: FIELD_TYPES:Repo,Clock
	tag, glued, _ := strings.Cut(head, ":")
	var kind LineKind
	switch {
	case strings.EqualFold(tag, p.markers.FieldTypesTag):
		kind = LineFieldTypes
	case strings.EqualFold(tag, p.markers.MethodParamsTag):
		kind = LineMethodParams
	default:
		return LineMetrics, fields
	}
	out := []string{tag}
	if glued != "" {
		out = append(out, glued)
	}
	return kind, append(out, fields[1:]...)
}

func (p *Parser) addTypes(kind LineKind, rest []string) {
	if p.current == nil {
		if !p.skipping {
			p.stats.Orphaned++
			util.Debug("Ignoring %s line with no open class", kind)
		}
		return
	}

	for _, name := range splitTypeList(strings.Join(rest, " ")) {
		name = util.SimpleName(name)
		if kind == LineFieldTypes {
			p.current.AddFieldType(name)
		} else {
			p.current.AddMethodParamType(name)
		}
	}
}

func (p *Parser) openClass(fields []string) {
	var (
		name   string
		values []float64
	)
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			// Non-numeric tokens never consume a metric position.
			if name == "" {
				name = util.SimpleName(tok)
			}
			continue
		}
		values = append(values, v)
	}

	// Stray text without any value leaves the open class untouched.
	if len(values) == 0 {
		p.stats.Unnamed++
		util.Debug("Ignoring line without metric values: %q", strings.Join(fields, " "))
		return
	}

	p.closeClass()
	p.skipping = false

	if name == "" {
		p.stats.Unnamed++
		util.Debug("Ignoring metrics line without class name (%d values)", len(values))
		return
	}
	if p.exclusions.MatchesClass(name) {
		p.stats.Excluded++
		p.skipping = true
		util.Debug("Skipping excluded class %s", name)
		return
	}

	rec := p.summary.Class(name)
	for i, v := range values {
		if i >= len(model.MetricSchema) {
			p.stats.ExtraValues += len(values) - i
			break
		}
		rec.SetMetric(model.MetricSchema[i], v)
	}
	p.current = rec
}

func (p *Parser) closeClass() {
	if p.current == nil {
		return
	}
	p.classifier.Classify(p.current)
	p.current = nil
}

func splitTypeList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
