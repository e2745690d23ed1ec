package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/rfp-analyzer/internal/logger"
	"github.com/spigell/rfp-analyzer/internal/pipeline"
	"go.uber.org/zap"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Extract and print the eligibility criteria of an RFP",
	Run: func(cmd *cobra.Command, _ []string) {
		criteria(cmd)
	},
}

func init() {
	rootCmd.AddCommand(criteriaCmd)

	criteriaCmd.Flags().StringP("rfp", "r", "", "RFP document (.pdf, .docx or .txt)")
	criteriaCmd.MarkFlagRequired("rfp")
}

func criteria(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	rfpPath, _ := cmd.Flags().GetString("rfp")

	texts, err := loadDocuments(ctx, newReader(config, logger), logger, rfpPath)
	if err != nil {
		logger.Fatal("loading documents", zap.Error(err), zap.String("hint", documentHint(err)))
	}

	generator, err := newGenerator(ctx, config.Generation, logger)
	if err != nil {
		logger.Fatal("creating a generator", zap.Error(err))
	}

	deps := pipeline.Deps{
		Analyzer:     newAnalyzer(generator, config, logger),
		Logger:       logger,
		MaxChunkSize: config.Chunking.MaxChunkSize,
	}

	state, err := pipeline.Run(ctx, deps, pipeline.CriteriaStages(), pipeline.NewState(texts[0], ""))
	if err != nil {
		logger.Fatal("extracting criteria", zap.Error(err))
	}

	printCriteria(cmd.OutOrStdout(), state.Criteria)
}
