package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/spigell/hh-matcher/internal/secrets"
	"github.com/spigell/hh-matcher/internal/taxonomy"
	"github.com/spigell/hh-matcher/internal/tfidf"
	"github.com/spigell/hh-matcher/internal/vacancy"
	"github.com/spigell/hh-matcher/internal/vector"
	"github.com/spigell/hh-matcher/internal/vector/gemini"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	PromptShowResult = "Show full result"
	PromptDumpToFile = "Dump result to file"
	PromptExit       = "Exit"

	defaultResultFile = "match-result.json"
)

var errExit = errors.New("exit requested")

var resultPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptShowResult, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score a resume against a vacancy",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask what to do with the result, dump it to the output file")
	runCmd.Flags().StringP("output", "o", defaultResultFile, "file for the dumped match result")

	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hh-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}
	if config.Resume == "" || config.Vacancy == "" {
		logger.Fatal("resume and vacancy file paths are required in the configuration")
	}

	resume, err := vacancy.LoadResume(config.Resume)
	if err != nil {
		logger.Fatal("loading the resume", zap.Error(err))
	}

	vac, err := vacancy.LoadVacancy(config.Vacancy)
	if err != nil {
		logger.Fatal("loading the vacancy", zap.Error(err))
	}

	logger.Info("inputs loaded",
		zap.Int("resume_skills", len(resume.Skills)),
		zap.Int("required_skills", len(vac.RequiredSkills)),
	)

	cache, watcher := buildTaxonomy(config, logger)
	if watcher != nil {
		defer watcher.Close()
	}

	tax := cache.Get(config.Org, config.Industry)
	logger.Info("taxonomy ready",
		zap.String("org_id", config.Org),
		zap.String("industry", config.Industry),
		zap.Int("canonical_skills", tax.Len()),
	)

	engine := buildEngine(config, logger)
	importance := buildTFIDF(config, logger)
	semantic := vector.NewMatcher(buildEncoder(ctx, config, logger), logger)

	scorer, err := buildScorer(config)
	if err != nil {
		logger.Fatal("building the scorer", zap.Error(err))
	}

	keyword := engine.MatchMultiple(resume.Skills, vac.RequiredSkills, config.Context, tax)
	coverage := importance.Score(resume.Skills, vac, tax)
	similarity := semantic.Score(ctx, resumeText(resume), vac.SearchText())

	result := scorer.Score(keyword, coverage, similarity)

	logger.Info("match computed",
		zap.Float64("overall_score", result.OverallScore),
		zap.Float64("keyword_score", result.KeywordScore),
		zap.Float64("tfidf_score", result.TFIDFScore),
		zap.Float64("vector_score", result.VectorScore),
		zap.String("vector_mode", string(result.VectorMode)),
		zap.Bool("passed", result.Passed),
		zap.String("recommendation", string(result.Recommendation)),
		zap.Strings("missing_skills", result.MissingSkills),
	)

	if auto, _ := cmd.Flags().GetBool("auto-approve"); auto {
		if err := dumpResult(result, viper.GetString("output")); err != nil {
			logger.Fatal("dumping the result", zap.Error(err))
		}
		logger.Info("result dumped", zap.String("path", viper.GetString("output")))
		return
	}

	if err := interact(logger, result); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("interactive loop", zap.Error(err))
	}
}

func interact(logger *zap.Logger, result scoring.UnifiedResult) error {
	for {
		_, answer, err := resultPrompt.Run()
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}

		switch answer {
		case PromptShowResult:
			pretty, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			fmt.Println(string(pretty))
		case PromptDumpToFile:
			path := viper.GetString("output")
			if err := dumpResult(result, path); err != nil {
				return err
			}
			logger.Info("result dumped", zap.String("path", path))
		case PromptExit:
			return errExit
		}
	}
}

func dumpResult(result scoring.UnifiedResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}

func buildTaxonomy(config *Config, log *zap.Logger) (*taxonomy.Cache, *taxonomy.Watcher) {
	industryFile, customFile, watch := "", "", false
	if config.Taxonomy != nil {
		industryFile = config.Taxonomy.IndustryFile
		customFile = config.Taxonomy.CustomFile
		watch = config.Taxonomy.Watch
	}

	cache := taxonomy.NewCache(taxonomy.Source{
		Static: func() taxonomy.Layer {
			return taxonomy.LoadStatic(log)
		},
		Industry: func(string) taxonomy.Layer {
			return taxonomy.LoadRowsFile(industryFile, log)
		},
		Custom: func(string) taxonomy.Layer {
			return taxonomy.LoadRowsFile(customFile, log)
		},
	}, log)

	if !watch {
		return cache, nil
	}

	watcher, err := taxonomy.NewWatcher(cache, log, industryFile, customFile)
	if err != nil {
		log.Warn("taxonomy watcher unavailable", zap.Error(err))
		return cache, nil
	}
	return cache, watcher
}

func buildEngine(config *Config, log *zap.Logger) *matching.Engine {
	if config.Matching != nil && config.Matching.FuzzyThreshold > 0 {
		return matching.NewEngine(log, matching.WithFuzzyThreshold(config.Matching.FuzzyThreshold))
	}
	return matching.NewEngine(log)
}

func buildTFIDF(config *Config, log *zap.Logger) *tfidf.Matcher {
	if config.Scoring == nil || config.Scoring.CorpusFile == "" {
		return tfidf.NewMatcher(nil, log)
	}

	docs, err := loadCorpus(config.Scoring.CorpusFile)
	if err != nil {
		log.Warn("reference corpus unavailable, using raw term frequency", zap.Error(err))
		return tfidf.NewMatcher(nil, log)
	}

	log.Info("reference corpus loaded", zap.Int("documents", len(docs)))
	return tfidf.NewMatcher(tfidf.TokenizeDocs(docs), log)
}

func loadCorpus(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var docs []string
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &docs)
	default:
		err = json.Unmarshal(data, &docs)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing corpus file: %w", err)
	}
	return docs, nil
}

func buildEncoder(ctx context.Context, config *Config, log *zap.Logger) vector.Encoder {
	if config.AI == nil || !config.AI.Enabled || config.AI.Gemini == nil {
		log.Info("semantic matching disabled: no ai configuration")
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		log.Warn("semantic matching disabled", zap.Error(err))
		return nil
	}

	encoder, err := gemini.NewEncoder(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, log)
	if err != nil {
		log.Warn("semantic matching disabled", zap.Error(err))
		return nil
	}

	log.Info("semantic matching enabled", zap.String("model", encoder.Model()))
	return encoder
}

// resumeText prefers the raw extracted text and falls back to the skill
// list so the vector matcher always has something to encode.
func resumeText(r *vacancy.Resume) string {
	if strings.TrimSpace(r.RawText) != "" {
		return r.RawText
	}
	return strings.Join(r.Skills, " ")
}
