package di

import (
	"fmt"

	"di-quality/src/model"
	"di-quality/src/util"
)

// CouplingDiscount is subtracted from a class's CBO for every injected
// dependency it declares.
const CouplingDiscount = 0.5

// Scheme selects how injected dependencies are counted
type Scheme string

const (
	// SchemeAuto resolves to SchemeClassNames when project class names are
	// known and to SchemeFieldMethod otherwise.
	SchemeAuto Scheme = "auto"
	// SchemeClassNames intersects field types with parameter and bean types,
	// both restricted to the project's own classes.
	SchemeClassNames Scheme = "class_names"
	// SchemeFieldMethod intersects field types with parameter types directly.
	SchemeFieldMethod Scheme = "field_method"
)

// ParseScheme validates a scheme name
func ParseScheme(name string) (Scheme, error) {
	switch s := Scheme(name); s {
	case SchemeAuto, SchemeClassNames, SchemeFieldMethod:
		return s, nil
	case "":
		return SchemeAuto, nil
	default:
		return "", fmt.Errorf("unknown DI scheme: %q", name)
	}
}

// Classifier decides how many of a class's dependencies are injected.
// Its name sets are read-only after construction.
type Classifier struct {
	scheme     Scheme
	classNames map[string]bool
	beans      map[string]bool
}

// NewClassifier builds a classifier over the project's simple class names
// and the simple names of XML-declared beans. Either list may be empty.
func NewClassifier(scheme Scheme, classNames, xmlBeans []string) *Classifier {
	c := &Classifier{
		classNames: toSet(classNames),
		beans:      toSet(xmlBeans),
	}
	c.scheme = scheme
	if scheme == SchemeAuto || scheme == "" {
		c.scheme = SchemeFieldMethod
		if len(c.classNames) > 0 {
			c.scheme = SchemeClassNames
		}
	}
	util.Debug("DI classifier: scheme=%s, %d class names, %d XML beans", c.scheme, len(c.classNames), len(c.beans))
	return c
}

// Scheme returns the resolved scheme
func (c *Classifier) Scheme() Scheme {
	return c.scheme
}

// Classify stores the injected-dependency count and DI-weighted CBO on rec
func (c *Classifier) Classify(rec *model.ClassRecord) {
	n := c.Count(rec)
	rec.DIParamCount = float64(n)
	rec.DIWCBO = rec.CBO - CouplingDiscount*float64(n)
}

// Count returns the number of distinct injected dependency types of rec
func (c *Classifier) Count(rec *model.ClassRecord) int {
	if c.scheme == SchemeFieldMethod {
		n := 0
		for t := range rec.FieldTypes {
			if rec.MethodParamTypes[t] {
				n++
			}
		}
		return n
	}

	// Parameter or bean types that name one of the project's classes;
	// primitives and library types drop out here.
	injectable := make(map[string]bool)
	for t := range rec.MethodParamTypes {
		if c.classNames[t] {
			injectable[t] = true
		}
	}
	for t := range c.beans {
		if c.classNames[t] {
			injectable[t] = true
		}
	}

	n := 0
	for t := range rec.FieldTypes {
		if c.classNames[t] && injectable[t] {
			n++
		}
	}
	return n
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = true
		}
	}
	return set
}
