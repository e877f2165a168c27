package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// SafeWriteFile writes data to a uniquely named temp file next to path and
// atomically renames it into place, creating the parent directory if needed.
// Concurrent writers never share a temp file.
func SafeWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// OutputPath derives a sibling path of input with the given suffix, e.g.
// data.csv -> data.chart.xlsx. An empty input uses fallback in dir.
func OutputPath(input, suffix, dir, fallback string) string {
	if input == "" || input == "-" {
		return filepath.Join(dir, fallback)
	}
	base := filepath.Base(input)
	base = base[:len(base)-len(filepath.Ext(base))]
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+suffix)
}

// UniquePaths returns paths with later duplicates renamed to
// base__2.ext, base__3.ext and so on, in order.
func UniquePaths(paths []string) []string {
	out := make([]string, len(paths))
	used := map[string]struct{}{}
	for i, p := range paths {
		cand := p
		ext := filepath.Ext(p)
		stem := p[:len(p)-len(ext)]
		for n := 2; ; n++ {
			if _, ok := used[cand]; !ok {
				break
			}
			cand = fmt.Sprintf("%s__%d%s", stem, n, ext)
		}
		used[cand] = struct{}{}
		out[i] = cand
	}
	return out
}
