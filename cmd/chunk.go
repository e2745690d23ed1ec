package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/rfp-analyzer/internal/document"
	"github.com/spigell/rfp-analyzer/internal/logger"
	"go.uber.org/zap"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk FILE",
	Short: "Print the chunks a document is split into",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		chunk(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(chunkCmd)

	chunkCmd.Flags().IntP("max", "m", 0, "maximum chunk size in characters (default is chunking.max-chunk-size from config)")
}

func chunk(cmd *cobra.Command, path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	maxSize := config.Chunking.MaxChunkSize
	if m, _ := cmd.Flags().GetInt("max"); m > 0 {
		maxSize = m
	}

	texts, err := loadDocuments(context.Background(), newReader(config, logger), logger, path)
	if err != nil {
		logger.Fatal("loading documents", zap.Error(err), zap.String("hint", documentHint(err)))
	}

	printChunks(cmd.OutOrStdout(), document.Chunk(texts[0], maxSize))
}

func printChunks(out io.Writer, chunks []string) {
	for i, c := range chunks {
		fmt.Fprintf(out, "--- chunk %d/%d (%d characters) ---\n%s\n", i+1, len(chunks), utf8.RuneCountInString(c), c)
	}
	if len(chunks) == 0 {
		fmt.Fprintln(out, "No chunks: the document is empty.")
	}
}
