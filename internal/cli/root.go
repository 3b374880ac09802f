// Package cli implements the briefgen command-line surface: one-shot
// cobra subcommands plus an interactive chat REPL.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/avolkov/briefgen/internal/archive"
	"github.com/avolkov/briefgen/internal/controller"
)

// App holds the dependencies CLI commands run against.
type App struct {
	Controller *controller.Controller
	Archive    archive.Archive

	// UserID identifies the session owner. One machine usually has one
	// user, but the flag allows separate concurrent sessions.
	UserID string

	// IsInteractive reports whether stdin is a terminal; the bare root
	// command starts the chat REPL only when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "briefgen" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "briefgen",
		Short: "Turn a business description into build-ready website prompts",
		Long: "briefgen collects free-form notes about a business, researches them\n" +
			"into a structured brief, and composes copy-paste prompts for site\n" +
			"builders like v0.dev and Figma Make.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runChat(app)
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&app.UserID, "user", "local", "session owner identity")

	root.AddCommand(
		newChatCmd(app),
		newGenerateCmd(app, "v0", "Generate a v0.dev build prompt from the given notes"),
		newGenerateCmd(app, "figma", "Generate a Figma Make design prompt from the given notes"),
		newHistoryCmd(app),
	)

	return root
}

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(app)
		},
	}
}
