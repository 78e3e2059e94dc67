package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/camila/personachat/internal/config"
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Manage personas (system instructions)",
	Long: `Manage the library of named personas.

A persona is a system instruction that conditions every reply. The default
persona's instruction seeds new chat sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPersonaList()
	},
}

var personaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPersonaList()
	},
}

var personaShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a persona's instruction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.GetPersona(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:        %s\n", p.Name)
		fmt.Printf("Description: %s\n", p.Description)
		fmt.Printf("Instruction:\n%s\n", p.Instruction)
		return nil
	},
}

var personaAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new persona interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p config.Persona
		if len(args) > 0 {
			p.Name = args[0]
		}

		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Persona name").
					Description("Alphanumeric, underscores and hyphens only.").
					Validate(func(s string) error {
						return config.ValidatePersona(config.Persona{Name: strings.TrimSpace(s)})
					}).
					Value(&p.Name),
				huh.NewInput().
					Title("Description").
					Value(&p.Description),
				huh.NewText().
					Title("Instruction").
					Description("How should the assistant behave?").
					Value(&p.Instruction),
			),
		).Run()
		if err != nil {
			return err
		}

		p.Name = strings.TrimSpace(p.Name)
		if err := config.AddPersona(p); err != nil {
			return err
		}

		fmt.Printf("Persona '%s' added\n", p.Name)
		return nil
	},
}

var personaDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DeletePersona(args[0]); err != nil {
			return err
		}
		fmt.Printf("Persona '%s' deleted\n", args[0])
		return nil
	},
}

var personaUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default persona for new sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetDefaultPersona(args[0]); err != nil {
			return err
		}

		// Keep config.json's default in sync with personas.json
		cfg, err := config.LoadConfig()
		if err == nil {
			cfg.DefaultPersona = args[0]
			_ = config.SaveConfig(cfg)
		}

		fmt.Printf("Default persona set to '%s'\n", args[0])
		return nil
	},
}

func runPersonaList() error {
	personas, err := config.LoadPersonas()
	if err != nil {
		return err
	}

	defaultName := personas.DefaultPersona
	for _, p := range personas.Personas {
		marker := "  "
		if p.Name == defaultName {
			marker = "* "
		}
		fmt.Printf("%s%-12s %s\n", marker, p.Name, p.Description)
	}
	return nil
}

func init() {
	personaCmd.AddCommand(personaListCmd)
	personaCmd.AddCommand(personaShowCmd)
	personaCmd.AddCommand(personaAddCmd)
	personaCmd.AddCommand(personaDeleteCmd)
	personaCmd.AddCommand(personaUseCmd)
}
