package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/finqa-cli/internal/dataset"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show dataset summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := dataset.Load(cmd.Context(), cfg.Data)
		if err != nil {
			return eris.Wrap(err, "info: load dataset")
		}

		years := table.Years()
		fmt.Printf("Source:  %s\n", table.Source)
		fmt.Printf("Rows:    %d (%d-%d)\n", len(table.Rows), years[0], years[len(years)-1])
		fmt.Printf("Metrics: %s\n", strings.Join(table.Metrics, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
