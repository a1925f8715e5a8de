package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"imageprompt/pkg/config"
	"imageprompt/pkg/inference"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "imageprompt",
	Short: "Describe images with a vision model and derive generation prompts",
	Long: `imageprompt sends an uploaded image to a vision-capable language model,
then derives four prompt formats from the returned description:

  - a JSON key/value prompt
  - a cartoon style prompt
  - a detailed five-field prompt
  - a cinematic prompt

Configuration comes from ./imageprompt.yaml (or --config), environment
variables such as OPENAI_API_KEY, and flags.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./imageprompt.yaml)",
	)
	rootCmd.PersistentFlags().String("provider", inference.ProviderOpenAI, "vision provider: openai, grok, moonshot or gemini")
	rootCmd.PersistentFlags().String("model", "", "model name (default: provider preset)")
	rootCmd.PersistentFlags().String("base_url", "", "API base URL (default: provider preset)")
	rootCmd.PersistentFlags().Bool("strict_describe", false, "fail the request when the vision call fails")
	rootCmd.PersistentFlags().String("log_level", "info", "log level: debug, info, warn or error")
}

// loadConfig resolves configuration for cmd and applies the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log.SetLevel(cfg.Level())
	return cfg, nil
}
