package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/camila/personachat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change personachat settings.

Without arguments, prints the current configuration.

Settable keys:
  api_key             Gemini API key (GEMINI_API_KEY overrides this)
  default_model       Model used when no -m flag is given
  default_persona     Persona whose instruction seeds new chats
  copy_to_clipboard   Copy one-shot responses to the clipboard (true/false)
  share_country_code  Digits prefixed to WhatsApp share links
  verbose             Print request timing for one-shot queries (true/false)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	apiKey := "(not set)"
	if config.ResolveAPIKey(cfg) != "" {
		apiKey = "(set)"
	}

	fmt.Printf("api_key:            %s\n", apiKey)
	fmt.Printf("default_model:      %s\n", cfg.DefaultModel)
	fmt.Printf("default_persona:    %s\n", cfg.DefaultPersona)
	fmt.Printf("copy_to_clipboard:  %t\n", cfg.CopyToClipboard)
	fmt.Printf("share_country_code: %s\n", cfg.ShareCountryCode)
	fmt.Printf("verbose:            %t\n", cfg.Verbose)
	fmt.Printf("markdown.style:     %s\n", cfg.Markdown.Style)
	return nil
}

func runConfigSet(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "api_key":
		cfg.APIKey = value
	case "default_model":
		cfg.DefaultModel = value
	case "default_persona":
		if _, err := config.GetPersona(value); err != nil {
			return err
		}
		cfg.DefaultPersona = value
	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		cfg.CopyToClipboard = b
	case "share_country_code":
		cfg.ShareCountryCode = value
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		cfg.Verbose = b
	case "markdown.style":
		cfg.Markdown.Style = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("%s updated\n", key)
	return nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
