package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/KaramelBytes/chasta-cli/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBatch_OrderedReportsAndMissingFiles(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"a.csv": "v\n1\n2\n3\n",
		"b.csv": "v\n10\n20\n30\n",
		"c.txt": "ignored\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	missing := filepath.Join(dir, "gone.csv")

	out := mustRun(t, "analyze-batch", filepath.Join(dir, "*.csv"), missing, "--jobs", "2", "--precision", "1")
	ia := strings.Index(out, "[1/3] Processing a.csv...")
	ib := strings.Index(out, "[2/3] Processing b.csv...")
	ig := strings.Index(out, "[3/3] Processing gone.csv...")
	require.True(t, ia >= 0 && ib > ia && ig > ib, "progress lines out of order:\n%s", out)
	assert.Regexp(t, `(?m)^mean\s+2\.0$`, out[ia:ib])
	assert.Regexp(t, `(?m)^mean\s+20\.0$`, out[ib:ig])
	assert.Contains(t, out[ig:], missing+" No such file. Aborting.")
	assert.NotContains(t, out, "ignored")
}

func TestAnalyzeBatch_QuietAndErrors(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "geo.csv")
	require.NoError(t, os.WriteFile(p, []byte("france,paris\nengland,london\nfrance,lyon\n"), 0o644))

	out := mustRun(t, "analyze-batch", p, "--quiet", "-i")
	assert.NotContains(t, out, "Processing")
	assert.Regexp(t, `(?m)^france\s+2$`, out)

	_, _, err := runCmd(t, "", "analyze-batch", p, "-c", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geo.csv")
	assert.Contains(t, err.Error(), "is not in: col_0, col_1")

	_, _, err = runCmd(t, "", "analyze-batch", filepath.Join(dir, "*.none"))
	assert.Error(t, err)

	_, _, err = runCmd(t, "", "analyze-batch", p, "--jobs", "0")
	assert.Error(t, err)
}

func TestAnalyzeBatch_Charts(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "s.csv")
	require.NoError(t, os.WriteFile(p, []byte("v\n1\n2\n"), 0o644))
	out := mustRun(t, "analyze-batch", p, "-C")
	chartPath := filepath.Join(dir, "s.chart.xlsx")
	assert.Contains(t, out, "✓ Wrote chart to "+chartPath)
	assert.FileExists(t, chartPath)
}

func TestAnalyzeBatch_ChartDirCollisions(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, sub := range []string{"a", "b", "c"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		p := filepath.Join(dir, sub, "x.csv")
		require.NoError(t, os.WriteFile(p, []byte("v\n1\n2\n"), 0o644))
		inputs = append(inputs, p)
	}
	c := cfgpkg.Default()
	c.ChartDir = filepath.Join(dir, "charts")

	args := append([]string{"analyze-batch", "-C", "--jobs", "3"}, inputs...)
	out, _, err := runCmdWithConfig(t, c, "", args...)
	require.NoError(t, err)
	for _, name := range []string{"x.chart.xlsx", "x.chart__2.xlsx", "x.chart__3.xlsx"} {
		p := filepath.Join(c.ChartDir, name)
		assert.FileExists(t, p)
		assert.Contains(t, out, "✓ Wrote chart to "+p)
	}
	entries, err := os.ReadDir(c.ChartDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files left behind")
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(a, []byte("1\n"), 0o644))
	got := collectInputs([]string{filepath.Join(dir, "*.csv"), a, filepath.Join(dir, "x.csv"), filepath.Join(dir, "*.tsv")})
	assert.Equal(t, []string{a, filepath.Join(dir, "x.csv")}, got)
}
