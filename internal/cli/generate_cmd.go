package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avolkov/briefgen/internal/domain"
)

// newGenerateCmd creates a one-shot generation command for a target.
// Notes come from the arguments, one turn per argument, or from stdin
// when no arguments are given. The session lives only for this process.
func newGenerateCmd(app *App, target, short string) *cobra.Command {
	return &cobra.Command{
		Use:   target + " [notes...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			turns := args
			if len(turns) == 0 {
				stdinTurns, err := readTurns(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading notes from stdin: %w", err)
				}
				turns = stdinTurns
			}

			for _, turn := range turns {
				if err := app.Controller.OnMessage(app.UserID, turn); err != nil {
					return err
				}
			}

			prompt, err := app.Controller.OnGeneratePrompt(cmd.Context(), app.UserID, domain.Target(target))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
}

// readTurns reads non-empty lines from r, one turn per line.
func readTurns(r io.Reader) ([]string, error) {
	var turns []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			turns = append(turns, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}
