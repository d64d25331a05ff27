package cmd

import (
	"log"

	"github.com/spigell/hh-matcher/internal/allocator"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hh-matcher"
)

type Config struct {
	Org      string          `mapstructure:"org"`
	Industry string          `mapstructure:"industry"`
	Context  string          `mapstructure:"context"`
	Resume   string          `mapstructure:"resume"`
	Vacancy  string          `mapstructure:"vacancy"`
	Taxonomy *TaxonomyConfig `mapstructure:"taxonomy"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Scoring  *ScoringConfig  `mapstructure:"scoring"`
	AI       *AIConfig       `mapstructure:"ai"`
	Models   *ModelsConfig   `mapstructure:"models"`
}

type TaxonomyConfig struct {
	IndustryFile string `mapstructure:"industry-file"`
	CustomFile   string `mapstructure:"custom-file"`
	Watch        bool   `mapstructure:"watch"`
}

type MatchingConfig struct {
	FuzzyThreshold float64 `mapstructure:"fuzzy-threshold"`
}

type ScoringConfig struct {
	KeywordWeight float64 `mapstructure:"keyword-weight"`
	TFIDFWeight   float64 `mapstructure:"tfidf-weight"`
	VectorWeight  float64 `mapstructure:"vector-weight"`
	Threshold     float64 `mapstructure:"threshold"`
	Excellent     float64 `mapstructure:"excellent"`
	Good          float64 `mapstructure:"good"`
	Maybe         float64 `mapstructure:"maybe"`
	CorpusFile    string  `mapstructure:"corpus-file"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type ModelsConfig struct {
	Active      *allocator.ModelVersion  `mapstructure:"active"`
	Experiments []allocator.ModelVersion `mapstructure:"experiments"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-matcher scores candidate skills against vacancy requirements and routes matcher versions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run and allocate commands. If there is
	// no config, we can skip initialization.
	if runCmd.CalledAs() == "" && allocateCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
