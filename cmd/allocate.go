package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spigell/hh-matcher/internal/allocator"
	"github.com/spigell/hh-matcher/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate [user-id...]",
	Short: "Resolve control or experiment matcher versions for user ids",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		allocate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(allocateCmd)

	allocateCmd.Flags().StringP("model", "m", "", "model name to allocate for (defaults to the active model in the config)")
}

func allocate(cmd *cobra.Command, userIDs []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.Models == nil {
		logger.Fatal("a models section is required in the configuration")
	}

	if err := allocator.ValidateExperiments(config.Models.Experiments); err != nil {
		logger.Fatal("invalid experiment registry", zap.Error(err))
	}

	modelName, _ := cmd.Flags().GetString("model")
	if modelName == "" && config.Models.Active != nil {
		modelName = config.Models.Active.ModelName
	}

	a := allocator.New(logger)
	decisions := make([]allocator.Decision, 0, len(userIDs))
	for _, userID := range userIDs {
		decision := a.Allocate(modelName, userID, config.Models.Active, config.Models.Experiments)
		decisions = append(decisions, decision)

		logger.Info("allocation resolved",
			zap.String("user_id", userID),
			zap.Int("bucket", allocator.Bucket(userID)),
			zap.String("version", decision.Version),
			zap.String("allocation_type", string(decision.Type)),
		)
	}

	pretty, err := json.MarshalIndent(decisions, "", "  ")
	if err != nil {
		logger.Fatal("marshal decisions", zap.Error(err))
	}
	fmt.Println(string(pretty))
}
