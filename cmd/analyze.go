package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/rfp-analyzer/internal/analysis"
	"github.com/spigell/rfp-analyzer/internal/logger"
	"github.com/spigell/rfp-analyzer/internal/pipeline"
	"github.com/spigell/rfp-analyzer/internal/report"
	"go.uber.org/zap"
)

const (
	PromptWriteReport    = "Write HTML report"
	PromptShowSummary    = "Show summary"
	PromptShowCriteria   = "Show criteria"
	PromptShowEvaluation = "Show evaluation"
	PromptDumpResults    = "Dump results to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next step",
	Items: []string{PromptWriteReport, PromptShowSummary, PromptShowCriteria, PromptShowEvaluation, PromptDumpResults, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze an RFP and a company profile and decide eligibility",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("rfp", "r", "", "RFP document (.pdf, .docx or .txt)")
	analyzeCmd.Flags().StringP("company", "c", "", "company profile document (.pdf, .docx or .txt)")
	analyzeCmd.Flags().StringP("output", "o", report.DefaultOutput, "report file")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "write the report and exit without asking")
	analyzeCmd.Flags().Bool("no-summary", false, "skip the RFP summary")

	analyzeCmd.MarkFlagRequired("rfp")
	analyzeCmd.MarkFlagRequired("company")

	viper.BindPFlag("report.output", analyzeCmd.Flags().Lookup("output"))
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	logger.Info("starting the rfp-analyzer", zap.String("version", version), zap.String("provider", config.Generation.Provider))

	rfpPath, _ := cmd.Flags().GetString("rfp")
	companyPath, _ := cmd.Flags().GetString("company")

	texts, err := loadDocuments(ctx, newReader(config, logger), logger, rfpPath, companyPath)
	if err != nil {
		logger.Fatal("loading documents", zap.Error(err), zap.String("hint", documentHint(err)))
	}

	generator, err := newGenerator(ctx, config.Generation, logger)
	if err != nil {
		logger.Fatal("creating a generator", zap.Error(err))
	}

	stages := pipeline.DefaultStages()
	if skip, _ := cmd.Flags().GetBool("no-summary"); skip {
		pipeline.DisableByName(stages, pipeline.StageSummary, "disabled by --no-summary")
	}

	deps := pipeline.Deps{
		Analyzer:     newAnalyzer(generator, config, logger),
		Logger:       logger,
		MaxChunkSize: config.Chunking.MaxChunkSize,
	}

	fs := afero.NewOsFs()

	state, err := pipeline.Run(ctx, deps, stages, pipeline.NewState(texts[0], texts[1]))
	if err != nil {
		fields := []zap.Field{zap.Error(err), zap.Strings("completed", state.Completed)}
		if len(state.Completed) > 0 {
			if filename, dumpErr := pipeline.Dump(fs, "", state); dumpErr == nil {
				fields = append(fields, zap.String("partial_results", filename))
			}
		}
		logger.Fatal("analysis failed", fields...)
	}

	out := cmd.OutOrStdout()
	printVerdict(out, state)

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	action := PromptWriteReport
	for {
		if !autoApprove {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, out, fs, logger, config, generator.Provider()+"/"+generator.Model(), state); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if autoApprove {
			return
		}
	}
}

func handleAction(action string, out io.Writer, fs afero.Fs, logger *zap.Logger, config *Config, generatorName string, state pipeline.State) error {
	switch action {
	case PromptWriteReport:
		html, err := report.Render(reportData(state, generatorName))
		if err != nil {
			return err
		}
		if err := report.Write(fs, config.Report.Output, html); err != nil {
			return err
		}
		logger.Info("report written", zap.String("filename", config.Report.Output))
		return nil
	case PromptShowSummary:
		fmt.Fprintln(out, state.Summary)
		return nil
	case PromptShowCriteria:
		printCriteria(out, state.Criteria)
		return nil
	case PromptShowEvaluation:
		fmt.Fprintln(out, state.Evaluation)
		return nil
	case PromptDumpResults:
		filename, err := pipeline.Dump(fs, "", state)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func reportData(state pipeline.State, generatorName string) report.Data {
	data := report.Data{
		Summary:     state.Summary,
		Criteria:    state.Criteria,
		Evaluation:  state.Evaluation,
		GeneratedAt: state.StartedAt.Local(),
		RunID:       state.RunID,
		Generator:   generatorName,
	}
	if state.Verdict != nil {
		data.Verdict = *state.Verdict
	}
	return data
}

func printVerdict(out io.Writer, state pipeline.State) {
	if state.Verdict == nil {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", state.Verdict.Decision, state.Verdict.Reasoning)
}

func printCriteria(out io.Writer, criteria []analysis.Criterion) {
	if len(criteria) == 0 {
		fmt.Fprintln(out, "No eligibility criteria found.")
		return
	}
	fmt.Fprintln(out, analysis.FormatCriteria(criteria))
}
