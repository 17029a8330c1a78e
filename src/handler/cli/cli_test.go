package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	h := New()
	var out, errOut bytes.Buffer
	h.rootCmd.SetIn(strings.NewReader(stdin))
	h.rootCmd.SetOut(&out)
	h.rootCmd.SetErr(&errOut)
	h.rootCmd.SetArgs(args)
	err := h.Execute()
	return out.String(), errOut.String(), err
}

func TestMetricsCommand(t *testing.T) {
	out, _, err := execute(t, "", "metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "WMC_NOM")
	assert.Contains(t, out, "DIW-MAI")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "di-quality 1.0.0\n", out)
}

func TestScoreCommand_Stdin(t *testing.T) {
	input := "a.Cart 1 1 0 2 4 0 0 0 0 0 10 1 0 0\nFIELD_TYPES: a.Repo\nMETHOD_PARAMS: a.Repo\n"
	out, _, err := execute(t, input, "score", "--project", "shop", "--variant", "mean")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "DI,MAI,DIW-MAI,REU"))
	// No class list: the field-and-method scheme counts Repo as injected.
	assert.True(t, strings.HasPrefix(lines[1], "0.5,"))
}

func TestScoreCommand_FilesAndOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "shop.txt")
	classes := filepath.Join(dir, "classes.txt")
	beans := filepath.Join(dir, "beans.xml")
	require.NoError(t, os.WriteFile(input, []byte("a.Cart 1 1 0 4 4 0 0 0 0 0 10 1 0 0\nFIELD_TYPES: a.Repo a.Clock\n"), 0o644))
	require.NoError(t, os.WriteFile(classes, []byte("a.Cart\na.Repo\na.Clock\n"), 0o644))
	require.NoError(t, os.WriteFile(beans, []byte(`<beans><bean class="a.Repo"/></beans>`), 0o644))

	outDir := filepath.Join(dir, "out")
	_, errOut, err := execute(t, "", "score", "-i", input, "--classes", classes, "--beans", beans,
		"-f", "json", "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Report written to")

	data, err := os.ReadFile(filepath.Join(outDir, "metrics_output.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"project": "shop"`)
	assert.Contains(t, string(data), `"di_scheme": "class_names"`)
}

func TestAnalyzeCommand_RequiresPath(t *testing.T) {
	_, _, err := execute(t, "", "analyze")
	assert.Error(t, err)
}

func TestProjectName(t *testing.T) {
	assert.Equal(t, "given", projectName("given", "x.txt"))
	assert.Equal(t, "stdin", projectName("", "-"))
	assert.Equal(t, "shop", projectName("", "/tmp/shop.txt"))
}
