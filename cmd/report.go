package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finqa-cli/internal/dataset"
	"github.com/sells-group/finqa-cli/internal/model"
	"github.com/sells-group/finqa-cli/internal/report"
	"github.com/sells-group/finqa-cli/internal/store"
)

var (
	reportQuestions string
	reportOutput    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Answer a batch of questions and write a JSON report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		questionsFile := reportQuestions
		if questionsFile == "" {
			questionsFile = cfg.Data.Questions
		}
		questions, err := dataset.LoadQuestions(questionsFile)
		if err != nil {
			return eris.Wrap(err, "report: load questions")
		}
		zap.L().Info("loaded questions", zap.Int("count", len(questions)), zap.String("file", questionsFile))

		env, err := initEnv(ctx)
		if err != nil {
			return eris.Wrap(err, "report: init")
		}

		records := env.Engine.Batch(ctx, questions)
		rep := report.Build(records, env.ModelName, cfg.Data.Source)

		outPath := reportOutput
		if outPath == "" {
			outPath = filepath.Join(cfg.Output.Dir, cfg.Output.ReportFile)
		}
		if err := report.Write(rep, outPath); err != nil {
			return eris.Wrap(err, "report: write")
		}

		if runID, err := persistRun(cmd, rep); err != nil {
			zap.L().Warn("report: persist run failed", zap.Error(err))
		} else if runID != "" {
			zap.L().Info("report run persisted", zap.String("run_id", runID))
		}

		printReport(env, rep, outPath)
		return nil
	},
}

// persistRun saves the report to the configured store; a disabled store is
// not an error.
func persistRun(cmd *cobra.Command, rep *report.Report) (string, error) {
	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return "", err
	}
	if st == nil {
		return "", nil
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return "", err
	}
	return st.SaveReport(ctx, rep)
}

func printReport(env *qaEnv, rep *report.Report, outPath string) {
	divider := strings.Repeat("=", 80)
	fmt.Println(divider)
	fmt.Printf("%40s\n", "FINANCIAL QA ANALYSIS RESULTS")
	fmt.Println(divider)

	fmt.Printf("\nDataset: %s (%d rows, metrics: %s)\n",
		env.Table.Source, len(env.Table.Rows), strings.Join(env.Table.Metrics, ", "))

	for i, r := range rep.Results {
		label := "Answer"
		if r.Status == model.StatusError {
			label = "ERROR"
		}
		fmt.Printf("\n[%d] Question: %s\n    %s: %s\n", i+1, r.Question, label, r.Answer)
	}

	fmt.Printf("\n%s\nQuestions: %d  Successful: %d  Model: %s\nReport: %s\n%s\n",
		divider, rep.Metadata.TotalQuestions, rep.Metadata.Successful, rep.Metadata.Model, outPath, divider)
}

func init() {
	reportCmd.Flags().StringVar(&reportQuestions, "questions", "", "questions file (one per line, # comments)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "report output path")
	rootCmd.AddCommand(reportCmd)
}
