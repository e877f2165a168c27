package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/chasta-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Chasta configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		out := cmd.OutOrStdout()
		if c == nil {
			fmt.Fprintln(out, "No config loaded, showing defaults")
			c = cfgpkg.Default()
		}
		fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		fmt.Fprintf(out, "columns: %s\n", c.Columns)
		fmt.Fprintf(out, "precision: %d\n", c.Precision)
		fmt.Fprintf(out, "sample_bytes: %d\n", c.SampleBytes)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "batch_jobs: %d\n", c.BatchJobs)
		if c.ChartDir != "" {
			fmt.Fprintf(out, "chart_dir: %s\n", c.ChartDir)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			next.Delimiter = val
		case "columns":
			if val == "" {
				return fmt.Errorf("columns must not be empty")
			}
			next.Columns = val
		case "precision":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for precision: %w", err)
			}
			next.Precision = i
		case "sample_bytes":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for sample_bytes: %w", err)
			}
			next.SampleBytes = i
		case "log_level":
			next.LogLevel = val
		case "batch_jobs":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for batch_jobs: %w", err)
			}
			next.BatchJobs = i
		case "chart_dir":
			next.ChartDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
