package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/chasta-cli/internal/analysis"
	"github.com/KaramelBytes/chasta-cli/internal/chart"
	"github.com/KaramelBytes/chasta-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	abOpts  analyzeOptions
	abJobs  int
	abQuiet bool
)

// batchResult is the buffered output of one file.
type batchResult struct {
	out   bytes.Buffer
	chart string
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple tables concurrently with progress",
	Long: `Analyze every file matched by the given paths or glob patterns with the same flags as analyze.
Reports are printed in input order; missing files are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := collectInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}

		c := effectiveConfig()
		log, err := newLogger(cmd.ErrOrStderr(), c)
		if err != nil {
			return err
		}
		base, err := abOpts.request(cmd, c)
		if err != nil {
			return err
		}
		jobs := c.BatchJobs
		if cmd.Flags().Changed("jobs") {
			jobs = abJobs
		}
		if jobs <= 0 {
			return fmt.Errorf("--jobs must be > 0, got %d", jobs)
		}

		runID := uuid.NewString()
		log = log.With(slog.String("run_id", runID))
		log.Info("batch started", slog.Int("files", len(files)), slog.Int("jobs", jobs))

		var chartPaths []string
		if base.Chart {
			chartPaths = make([]string, len(files))
			for i, path := range files {
				chartPaths[i] = utils.OutputPath(path, chartSuffix, c.ChartDir, chartFallback)
			}
			chartPaths = utils.UniquePaths(chartPaths)
		}

		results := make([]*batchResult, len(files))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(jobs)
		for i, path := range files {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r := &batchResult{}
				req := base
				req.Path = path
				req.Diagnostics = &r.out
				req.Logger = log.With(slog.String("file", path))
				res, err := analysis.Analyze(fsys, req)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if res != nil {
					if _, err := res.Report.WriteTo(&r.out); err != nil {
						return err
					}
					if res.Chart != nil {
						r.chart = chartPaths[i]
						if err := chart.Write(r.chart, res.Chart); err != nil {
							return fmt.Errorf("%s: write chart: %w", path, err)
						}
					}
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			_, _ = results[i].out.WriteTo(out)
			if results[i].chart != "" && !abQuiet {
				fmt.Fprintf(out, "✓ Wrote chart to %s\n", results[i].chart)
			}
		}
		log.Info("batch finished", slog.Int("files", total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abOpts.register(analyzeBatchCmd)
	analyzeBatchCmd.Flags().IntVar(&abJobs, "jobs", 4, "number of files analyzed concurrently (overrides config batch_jobs)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}

// collectInputs expands globs, keeping literal paths that match nothing so
// their absence is reported by the analysis.
func collectInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 && !hasMeta(arg) {
			matches = []string{arg}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[\`)
}
