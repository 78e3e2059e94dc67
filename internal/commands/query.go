package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/camila/personachat/internal/api"
	"github.com/camila/personachat/internal/chat"
	"github.com/camila/personachat/internal/config"
	"github.com/camila/personachat/internal/models"
	"github.com/camila/personachat/internal/render"
)

// runQuery sends a single prompt and prints the rendered response
func runQuery(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("empty prompt")
	}

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

	spin := newSpinner("Generating")
	spin.start()

	start := time.Now()
	submitErr := session.Submit(context.Background(), prompt)
	elapsed := time.Since(start)

	messages := session.Messages()
	if len(messages) < 2 {
		spin.stopWithError()
		return fmt.Errorf("no response generated")
	}
	reply := messages[len(messages)-1].Text

	if submitErr != nil {
		// The session already mapped the failure to user-facing text; print
		// it and report the underlying error for the exit status.
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, reply)
		return submitErr
	}

	spin.stopWithSuccess(fmt.Sprintf("Done in %s", elapsed.Round(time.Millisecond)))

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "model=%s persona=%d chars\n", modelName, len(instruction))
	}

	// Save raw markdown when writing to a file
	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Response saved to %s\n", outputFlag)
		return nil
	}

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(reply); err == nil {
			fmt.Fprintln(os.Stderr, "Response copied to clipboard")
		}
	}

	rendered, err := render.Markdown(reply, render.LoadOptionsFromConfig().WithWidth(terminalWidth()))
	if err != nil {
		// Fall back to raw text when the renderer chokes
		fmt.Println(reply)
		return nil
	}
	fmt.Print(rendered)

	return nil
}

// terminalWidth returns the stdout width, capped for readability
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	if width > 120 {
		return 120
	}
	return width
}
