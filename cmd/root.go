package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/rfp-analyzer/internal/analysis"
	"github.com/spigell/rfp-analyzer/internal/document"
	"github.com/spigell/rfp-analyzer/internal/report"
)

const (
	app = "rfp-analyzer"
)

type Config struct {
	Debug      bool              `mapstructure:"debug"`
	JSON       bool              `mapstructure:"json"`
	Chunking   *ChunkingConfig   `mapstructure:"chunking" validate:"required"`
	Generation *GenerationConfig `mapstructure:"generation" validate:"required"`
	Extraction *ExtractionConfig `mapstructure:"extraction" validate:"required"`
	Verdict    *VerdictConfig    `mapstructure:"verdict" validate:"required"`
	Report     *ReportConfig     `mapstructure:"report" validate:"required"`
}

type ChunkingConfig struct {
	MaxChunkSize int `mapstructure:"max-chunk-size" validate:"gt=0"`
}

type GenerationConfig struct {
	Provider             string        `mapstructure:"provider" validate:"oneof=gemini ollama mock"`
	Temperature          float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxInputTokens       int           `mapstructure:"max-input-tokens" validate:"gte=0"`
	SummaryMaxLength     int           `mapstructure:"summary-max-length" validate:"gt=0"`
	MetaSummaryMaxLength int           `mapstructure:"meta-summary-max-length" validate:"gt=0"`
	CriteriaMaxLength    int           `mapstructure:"criteria-max-length" validate:"gt=0"`
	EvaluationMaxLength  int           `mapstructure:"evaluation-max-length" validate:"gt=0"`
	MaxLogLength         int           `mapstructure:"max-log-length" validate:"gte=0"`
	Gemini               *GeminiConfig `mapstructure:"gemini" validate:"required"`
	Ollama               *OllamaConfig `mapstructure:"ollama" validate:"required"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries" validate:"gte=0"`
}

type OllamaConfig struct {
	BaseURL string        `mapstructure:"base-url" validate:"omitempty,url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type ExtractionConfig struct {
	TikaURL     string        `mapstructure:"tika-url" validate:"omitempty,url"`
	TikaTimeout time.Duration `mapstructure:"tika-timeout" validate:"gte=0"`
}

type VerdictConfig struct {
	RequireCriteria bool `mapstructure:"require-criteria"`
}

type ReportConfig struct {
	Output string `mapstructure:"output" validate:"required"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "rfp-analyzer checks whether a company is eligible for a Request for Proposal",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"generation.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"generation.ollama.base-url":     "OLLAMA_BASE_URL",
		"extraction.tika-url":            "RFP_ANALYZER_TIKA_URL",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is rfp-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("provider", "p", "mock", "generation provider: gemini, ollama or mock")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("generation.provider", rootCmd.PersistentFlags().Lookup("provider"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// An explicit config must parse; the default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		Chunking: &ChunkingConfig{MaxChunkSize: document.DefaultChunkSize},
		Generation: &GenerationConfig{
			Provider:             "mock",
			Temperature:          analysis.DefaultTemperature,
			SummaryMaxLength:     analysis.DefaultSummaryMaxLength,
			MetaSummaryMaxLength: analysis.DefaultMetaSummaryMaxLength,
			CriteriaMaxLength:    analysis.DefaultCriteriaMaxLength,
			EvaluationMaxLength:  analysis.DefaultEvaluationMaxLength,
			MaxLogLength:         200,
			Gemini:               &GeminiConfig{MaxRetries: 3},
			Ollama:               &OllamaConfig{},
		},
		Extraction: &ExtractionConfig{},
		Verdict:    &VerdictConfig{},
		Report:     &ReportConfig{Output: report.DefaultOutput},
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

// decodeConfig applies settings over the defaults. Unknown keys are rejected.
func decodeConfig(settings map[string]any) (*Config, error) {
	config := defaultConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}
