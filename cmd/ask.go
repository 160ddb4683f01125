package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/finqa-cli/internal/model"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question about the loaded dataset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return eris.Wrap(err, "ask: init")
		}

		question := strings.Join(args, " ")
		record := env.Engine.Answer(ctx, question)

		fmt.Printf("Question: %s\n", record.Question)
		if record.Status == model.StatusError {
			fmt.Printf("ERROR: %s\n", record.Answer)
			return nil
		}
		fmt.Printf("Answer: %s\n", record.Answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
