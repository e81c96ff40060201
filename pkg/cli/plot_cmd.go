package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tpch-bench/internal/plot"
)

func newPlotCmd() *cobra.Command {
	var stylePath string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the recorded timings",
		Long: "Reads the timings log and writes a grouped bar chart as a " +
			"standalone HTML file under the plots directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadSettings()
			if err != nil {
				return err
			}

			path, err := plot.Generate(cfg, stylePath)
			if err != nil {
				return err
			}
			log.Info("plot written", "path", path, "include_io", cfg.IncludeIO)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&stylePath, "style", "", "YAML file overriding solution labels and colors")
	return cmd
}
