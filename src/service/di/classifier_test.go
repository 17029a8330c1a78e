package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"di-quality/src/model"
)

func record(cbo float64, params, fields []string) *model.ClassRecord {
	rec := model.NewClassRecord("Subject")
	rec.SetMetric(model.MetricCBO, cbo)
	for _, p := range params {
		rec.AddMethodParamType(p)
	}
	for _, f := range fields {
		rec.AddFieldType(f)
	}
	return rec
}

func TestClassify_ClassNameSchemeExample(t *testing.T) {
	c := NewClassifier(SchemeAuto, []string{"Foo", "Bar"}, nil)
	require.Equal(t, SchemeClassNames, c.Scheme())

	rec := record(4, []string{"Foo", "int"}, []string{"Foo"})
	c.Classify(rec)

	assert.Equal(t, 1.0, rec.DIParamCount)
	assert.Equal(t, 3.5, rec.DIWCBO)
	assert.True(t, rec.UsesDI())
}

func TestClassify_ClassNameSchemeFiltersForeignTypes(t *testing.T) {
	c := NewClassifier(SchemeClassNames, []string{"Repo"}, nil)

	// String is a parameter and a field but not a project class.
	rec := record(3, []string{"String", "Repo"}, []string{"String", "Repo", "Logger"})
	c.Classify(rec)
	assert.Equal(t, 1.0, rec.DIParamCount)
}

func TestClassify_XMLBeansCountAsInjected(t *testing.T) {
	c := NewClassifier(SchemeClassNames, []string{"Mailer", "Repo"}, []string{"Mailer", "DataSource"})

	// Mailer is wired by XML, never passed as a parameter.
	rec := record(2, nil, []string{"Mailer", "Repo"})
	c.Classify(rec)
	assert.Equal(t, 1.0, rec.DIParamCount)
	assert.Equal(t, 1.5, rec.DIWCBO)
}

func TestClassify_FieldMethodScheme(t *testing.T) {
	c := NewClassifier(SchemeAuto, nil, nil)
	require.Equal(t, SchemeFieldMethod, c.Scheme())

	rec := record(5, []string{"int", "Clock", "Repo"}, []string{"int", "Repo"})
	c.Classify(rec)
	assert.Equal(t, 2.0, rec.DIParamCount)
	assert.Equal(t, 4.0, rec.DIWCBO)
}

func TestClassify_NoTypeListsMeansNoDI(t *testing.T) {
	c := NewClassifier(SchemeAuto, []string{"A"}, []string{"A"})
	rec := record(7, nil, nil)
	c.Classify(rec)
	assert.Equal(t, 0.0, rec.DIParamCount)
	assert.Equal(t, 7.0, rec.DIWCBO)
	assert.False(t, rec.UsesDI())
}

func TestClassify_NeverIncreasesCoupling(t *testing.T) {
	c := NewClassifier(SchemeAuto, []string{"A", "B", "C"}, []string{"C"})
	cases := [][2][]string{
		{{"A", "B"}, {"A", "B", "C"}},
		{{"A"}, {}},
		{{}, {"C"}},
		{{"x", "y"}, {"x"}},
	}
	for _, tc := range cases {
		rec := record(2, tc[0], tc[1])
		c.Classify(rec)
		assert.LessOrEqual(t, rec.DIWCBO, rec.CBO)
	}
}

func TestParseScheme(t *testing.T) {
	s, err := ParseScheme("")
	require.NoError(t, err)
	assert.Equal(t, SchemeAuto, s)

	_, err = ParseScheme("bogus")
	assert.Error(t, err)
}
