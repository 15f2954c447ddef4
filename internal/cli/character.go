package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/loader"
	"github.com/rshade/holocron/internal/logging"
	"github.com/rshade/holocron/internal/swapi"
	"github.com/rshade/holocron/internal/tui"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputPlain = "plain"
)

// NewCharacterCmd creates the character command, which runs one fetch cycle and prints
// the page.
func NewCharacterCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "character <id>",
		Short: "Show a character with its films, starships and vehicles",
		Example: `  holocron character 1
  holocron character 4 --output json
  holocron character 10 --output plain | less`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharacter(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or plain")
	return cmd
}

func runCharacter(cmd *cobra.Command, rawID, output string) error {
	output = strings.ToLower(output)
	switch output {
	case outputTable, outputJSON, outputPlain:
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}

	id, err := swapi.ValidateID(rawID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	l := newLoader(config.GetGlobalConfig(), *log)

	state, loadErr := l.Load(ctx, id)
	if renderErr := renderCharacter(cmd.OutOrStdout(), output, state); renderErr != nil {
		return renderErr
	}
	if loadErr != nil {
		return fmt.Errorf("loading character %s: %w", id, loadErr)
	}
	return nil
}

// renderCharacter writes state in the requested format. Table output picks styled or
// plain text from the terminal.
func renderCharacter(w io.Writer, output string, state *loader.ViewState) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case outputPlain:
		_, err := io.WriteString(w, tui.RenderCharacterPlain(*state))
		return err
	}

	switch tui.DetectOutputMode(false, false, false) {
	case tui.OutputModeInteractive, tui.OutputModeStyled:
		_, err := fmt.Fprintln(w, tui.RenderCharacterPage(*state, tui.TerminalWidth(w)))
		return err
	default:
		_, err := io.WriteString(w, tui.RenderCharacterPlain(*state))
		return err
	}
}
