package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestSafeWriteFile_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	if err := SafeWriteFile(path, []byte("hello")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("content = %q, want hello", b)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestSafeWriteFile_ConcurrentSamePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.xlsx")
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = SafeWriteFile(path, []byte(strings.Repeat("x", 1000)))
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: %v", i, err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(b) != 1000 {
		t.Fatalf("len = %d, want 1000", len(b))
	}
}

func TestUniquePaths(t *testing.T) {
	got := UniquePaths([]string{"/c/x.chart.xlsx", "/c/y.chart.xlsx", "/c/x.chart.xlsx", "/c/x.chart.xlsx"})
	want := []string{"/c/x.chart.xlsx", "/c/y.chart.xlsx", "/c/x.chart__2.xlsx", "/c/x.chart__3.xlsx"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UniquePaths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		input, dir, want string
	}{
		{"/data/metrics.csv", "", "/data/metrics.chart.xlsx"},
		{"/data/metrics.csv", "/charts", "/charts/metrics.chart.xlsx"},
		{"", "/charts", "/charts/chasta.chart.xlsx"},
		{"-", "", "chasta.chart.xlsx"},
	}
	for _, c := range cases {
		got := OutputPath(c.input, ".chart.xlsx", c.dir, "chasta.chart.xlsx")
		if got != c.want {
			t.Fatalf("OutputPath(%q, %q) = %q, want %q", c.input, c.dir, got, c.want)
		}
	}
}
