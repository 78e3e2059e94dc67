package commands

import (
	"github.com/spf13/cobra"

	"github.com/camila/personachat/internal/api"
	"github.com/camila/personachat/internal/chat"
	"github.com/camila/personachat/internal/config"
	"github.com/camila/personachat/internal/models"
	"github.com/camila/personachat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session.

The active persona conditions every reply; press Ctrl+P to edit it.
Editing the persona starts a fresh conversation.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	instruction, err := getPersonaInstruction()
	if err != nil {
		return err
	}

	modelName := getModelName()
	client := api.NewClient(
		config.ResolveAPIKey(cfg),
		api.WithModel(models.ModelFromName(modelName)),
	)
	session := chat.NewSession(client, instruction)

	return tui.RunChat(session, modelName, cfg.ShareCountryCode)
}
