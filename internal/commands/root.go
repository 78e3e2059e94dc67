// Package commands provides CLI commands for personachat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/camila/personachat/internal/config"
	"github.com/camila/personachat/internal/logger"
)

var (
	// Global flags
	modelFlag   string
	personaFlag string
	outputFlag  string
	fileFlag    string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "personachat [prompt]",
	Short: "Chat with Gemini under a configurable persona",
	Long: `personachat is a terminal chat client for the Gemini API. A persona
(system instruction) conditions every reply; editing it starts a fresh
conversation.

Examples:
  personachat chat                      Start interactive chat
  personachat "What is Go?"             Send a single query
  personachat -p coder "Review this"    Query with a named persona
  personachat -f prompt.md              Read prompt from file
  cat prompt.md | personachat           Read prompt from stdin
  personachat "Hello" -o response.md    Save response to file`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("personachat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data))
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data))
		}

		if len(args) > 0 {
			return runQuery(args[0])
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	initLogger()
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., gemini-2.5-pro, or alias: flash, pro)")
	rootCmd.PersistentFlags().StringVarP(&personaFlag, "persona", "p", "", "Named persona to use")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(personaCmd)
}

func initLogger() {
	cfg, err := config.LoadConfig()
	if err != nil {
		return
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return
	}
	_ = logger.Init(logger.Config{
		Enabled: cfg.Log.Enabled,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
	}, dir)
}

// getModelName returns the model to use (from flag or config)
func getModelName() string {
	if modelFlag != "" {
		return modelFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return "gemini-2.5-flash"
	}

	return cfg.DefaultModel
}

// getPersonaInstruction resolves the starting persona instruction from the
// -p flag or the configured default. A missing named persona is an error; a
// missing default silently falls back to no instruction.
func getPersonaInstruction() (string, error) {
	if personaFlag != "" {
		p, err := config.GetPersona(personaFlag)
		if err != nil {
			return "", err
		}
		return p.Instruction, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return "", nil
	}
	if cfg.DefaultPersona == "" {
		return "", nil
	}
	p, err := config.GetPersona(cfg.DefaultPersona)
	if err != nil {
		return "", nil
	}
	return p.Instruction, nil
}
