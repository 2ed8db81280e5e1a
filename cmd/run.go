package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/chartiz/internal/app"
	"github.com/abhisek/chartiz/internal/store"
	"github.com/abhisek/chartiz/internal/templates"
)

// runApp opens the attempt log, checks the template source, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	path := resolveTemplatesPath(cmd)
	warnTemplates(path)

	st, err := store.Open(store.MemoryDSN())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		TemplatesPath: path,
		Rand:          seedFlag(cmd),
		EventRepo:     st.EventRepo(),
	})
}

// warnTemplates prints load problems to stderr before the TUI takes over the
// terminal. The quiz itself still starts and shows its empty state.
func warnTemplates(path string) {
	ts, err := templates.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		fmt.Fprintln(os.Stderr, "No questions will be available.")
		return
	}
	for _, t := range templates.Unsupported(ts) {
		fmt.Fprintf(os.Stderr, "warning: template type %q is not supported; its questions can't be checked\n", t)
	}
}
