package model

// Metric names one column of the analyzer's per-class output
type Metric string

const (
	MetricWMCNOM Metric = "WMC_NOM"
	MetricDIT    Metric = "DIT"
	MetricNOC    Metric = "NOC"
	MetricCBO    Metric = "CBO"
	MetricRFC    Metric = "RFC"
	MetricLCOM   Metric = "LCOM"
	MetricCa     Metric = "Ca"
	MetricCe     Metric = "Ce"
	MetricNPM    Metric = "NPM"
	MetricLCOM3  Metric = "LCOM3"
	MetricLOC    Metric = "LOC"
	MetricDAM    Metric = "DAM"
	MetricMOA    Metric = "MOA"
	MetricMFA    Metric = "MFA"
	MetricCAM    Metric = "CAM"
	MetricIC     Metric = "IC"
	MetricCBM    Metric = "CBM"
	MetricAMC    Metric = "AMC"
	MetricCC     Metric = "CC"
)

// MetricSchema is the positional order of numeric columns on a metrics line.
// Ingestion and aggregation both iterate this slice.
var MetricSchema = []Metric{
	MetricWMCNOM, MetricDIT, MetricNOC, MetricCBO, MetricRFC, MetricLCOM,
	MetricCa, MetricCe, MetricNPM, MetricLCOM3, MetricLOC, MetricDAM,
	MetricMOA, MetricMFA, MetricCAM, MetricIC, MetricCBM, MetricAMC, MetricCC,
}

// MetricDescriptions is shown by the metrics command
var MetricDescriptions = map[Metric]string{
	MetricWMCNOM: "Weighted methods per class / number of methods",
	MetricDIT:    "Depth of inheritance tree",
	MetricNOC:    "Number of children",
	MetricCBO:    "Coupling between objects",
	MetricRFC:    "Response for a class",
	MetricLCOM:   "Lack of cohesion in methods",
	MetricCa:     "Afferent couplings",
	MetricCe:     "Efferent couplings",
	MetricNPM:    "Number of public methods",
	MetricLCOM3:  "Lack of cohesion in methods (Henderson-Sellers)",
	MetricLOC:    "Lines of code",
	MetricDAM:    "Data access metric",
	MetricMOA:    "Measure of aggregation",
	MetricMFA:    "Measure of functional abstraction",
	MetricCAM:    "Cohesion among methods of class",
	MetricIC:     "Inheritance coupling",
	MetricCBM:    "Coupling between methods",
	MetricAMC:    "Average method complexity",
	MetricCC:     "Cyclomatic complexity",
}

// ClassRecord holds everything known about one analyzed class while its
// project is being scanned.
type ClassRecord struct {
	Name             string
	MethodParamTypes map[string]bool
	FieldTypes       map[string]bool
	Metrics          map[Metric]float64

	// CBO mirrors Metrics[MetricCBO]; the last reported value wins.
	CBO          float64
	DIParamCount float64
	DIWCBO       float64
}

// NewClassRecord creates an empty record for the named class
func NewClassRecord(name string) *ClassRecord {
	return &ClassRecord{
		Name:             name,
		MethodParamTypes: make(map[string]bool),
		FieldTypes:       make(map[string]bool),
		Metrics:          make(map[Metric]float64),
	}
}

// AddMethodParamType records a constructor/setter/method parameter type
func (c *ClassRecord) AddMethodParamType(name string) {
	if name != "" {
		c.MethodParamTypes[name] = true
	}
}

// AddFieldType records a declared field type
func (c *ClassRecord) AddFieldType(name string) {
	if name != "" {
		c.FieldTypes[name] = true
	}
}

// SetMetric stores a metric value, overwriting any earlier report
func (c *ClassRecord) SetMetric(m Metric, v float64) {
	c.Metrics[m] = v
	if m == MetricCBO {
		c.CBO = v
	}
}

// Metric returns the value of m and whether the class reported it
func (c *ClassRecord) Metric(m Metric) (float64, bool) {
	v, ok := c.Metrics[m]
	return v, ok
}

// UsesDI reports whether any declared dependency is injected
func (c *ClassRecord) UsesDI() bool {
	return c.DIParamCount > 0
}
