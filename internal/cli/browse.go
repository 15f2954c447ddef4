package cli

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/loader"
	"github.com/rshade/holocron/internal/logging"
	"github.com/rshade/holocron/internal/swapi"
	"github.com/rshade/holocron/internal/tui"
)

var errNotTerminal = errors.New("browse needs an interactive terminal; use `holocron character` instead")

// NewBrowseCmd creates the interactive browser command.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [id]",
		Short: "Browse characters interactively",
		Long: `Opens a full-screen character page. Use n and p to move to the next or
previous character, r to reload and q to quit. Moving on while a page is still
loading cancels the fetches for the page you left.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := "1"
			if len(args) == 1 {
				id = args[0]
			}
			return runBrowse(cmd, id)
		},
	}
}

func runBrowse(cmd *cobra.Command, rawID string) error {
	id, err := swapi.ValidateID(rawID)
	if err != nil {
		return err
	}

	if !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	l := newLoader(config.GetGlobalConfig(), *log)

	var program *tea.Program
	session := loader.NewSession(ctx, l, func(state loader.ViewState) {
		program.Send(tui.StateMsg{State: state})
	})
	defer session.Close()

	program = tea.NewProgram(tui.NewDetailModel(session, id), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
