package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/chasta-cli/internal/analysis"
	"github.com/KaramelBytes/chasta-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/chasta-cli/internal/config"
	"github.com/KaramelBytes/chasta-cli/internal/utils"
	"github.com/spf13/cobra"
)

const (
	chartSuffix   = ".chart.xlsx"
	chartFallback = "chasta.chart.xlsx"
	// noChartX is the --chart value when no x column is given.
	noChartX = "-"
)

// analyzeOptions holds the analysis flags shared by analyze and analyze-batch.
type analyzeOptions struct {
	delimiter     string
	columns       string
	chart         string
	instanceCount bool
	numOnly       bool
	sheet         string
	precision     int
}

var (
	anaOpts       analyzeOptions
	anaOutputPath string
	anaChartOut   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Print statistics for columns of a delimited table",
	Long: `Print descriptive statistics (or instance counts with -i) for the selected columns.
Reads standard input when no file is given. The delimiter is guessed unless -d is set.
The chart x axis column must be attached to the flag: -C=day or --chart=day.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		log, err := newLogger(cmd.ErrOrStderr(), c)
		if err != nil {
			return err
		}
		req, err := anaOpts.request(cmd, c)
		if err != nil {
			return err
		}
		req.Logger = log
		req.Diagnostics = cmd.OutOrStdout()
		if len(args) == 1 {
			req.Path = args[0]
		} else {
			req.Input = cmd.InOrStdin()
		}

		res, err := analysis.Analyze(fsys, req)
		if err != nil {
			return err
		}
		if res == nil {
			// missing input, already reported
			return nil
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(res.Report.Text())); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", anaOutputPath)
		} else if _, err := res.Report.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}

		if res.Chart != nil {
			path := anaChartOut
			if path == "" {
				path = utils.OutputPath(req.Path, chartSuffix, c.ChartDir, chartFallback)
			}
			if err := chart.Write(path, res.Chart); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote chart to %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaOpts.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "write the report to this path instead of stdout")
	analyzeCmd.Flags().StringVar(&anaChartOut, "chart-out", "", "chart workbook path (default <input>.chart.xlsx)")
}

func (o *analyzeOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.delimiter, "delimiter", "d", ",", "field delimiter: a single character or tab | pipe | space (guessed when omitted)")
	f.StringVarP(&o.columns, "columns", "c", analysis.DefaultColumns, "comma-separated column numbers (0-based) or names")
	f.StringVarP(&o.chart, "chart", "C", "", "write an area chart; -C=xcol (or --chart=xcol) names the x axis column")
	f.Lookup("chart").NoOptDefVal = noChartX
	f.BoolVarP(&o.instanceCount, "instance-count", "i", false, "count instances of each distinct value tuple")
	f.BoolVarP(&o.numOnly, "num-only", "n", false, "treat every column as numeric, ignoring unparsable cells")
	f.StringVar(&o.sheet, "sheet", "", "XLSX: sheet name to analyze (first sheet by default)")
	f.IntVar(&o.precision, "precision", analysis.DefaultPrecision, "digits after the decimal point")
}

// request maps the flags onto an analysis request. Flags left unchanged
// take their value from c.
func (o *analyzeOptions) request(cmd *cobra.Command, c *cfgpkg.Global) (analysis.Request, error) {
	f := cmd.Flags()
	req := analysis.Request{
		Columns:       o.columns,
		Sheet:         o.sheet,
		InstanceCount: o.instanceCount,
		NumericOnly:   o.numOnly,
		Precision:     o.precision,
		SampleBytes:   c.SampleBytes,
	}
	if !f.Changed("columns") && c.Columns != "" {
		req.Columns = c.Columns
	}
	if !f.Changed("precision") {
		req.Precision = c.Precision
	}
	if req.Precision < 1 {
		return req, fmt.Errorf("precision must be > 0, got %d", req.Precision)
	}

	if f.Changed("delimiter") {
		d, err := parseDelimiter(o.delimiter)
		if err != nil {
			return req, err
		}
		req.Delimiter = d
	} else {
		d, err := parseDelimiter(c.Delimiter)
		if err != nil {
			return req, fmt.Errorf("config delimiter: %w", err)
		}
		req.DefaultDelimiter = d
	}

	if o.chart != "" {
		req.Chart = true
		if o.chart != noChartX {
			req.ChartX = o.chart
		}
	}
	return req, nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	case "pipe":
		return '|', nil
	case "space":
		return ' ', nil
	case "comma":
		return ',', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("unsupported --delimiter: %q (use a single character, tab, pipe or space)", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("unsupported --delimiter: %q", s)
	}
	return r, nil
}
