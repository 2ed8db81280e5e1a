package app

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chartiz/internal/question"
	"github.com/abhisek/chartiz/internal/router"
	"github.com/abhisek/chartiz/internal/screen"
	"github.com/abhisek/chartiz/internal/screens/home"
	"github.com/abhisek/chartiz/internal/screens/quiz"
	"github.com/abhisek/chartiz/internal/store"
	"github.com/abhisek/chartiz/internal/templates"
	"github.com/abhisek/chartiz/internal/ui/layout"
)

// DebugEnvVar enables logging to DebugLogFile while the TUI runs.
const (
	DebugEnvVar  = "CHARTIZ_DEBUG"
	DebugLogFile = "chartiz-debug.log"
)

// Options configures the TUI.
type Options struct {
	// TemplatesPath is the template file; empty means the embedded set.
	TemplatesPath string

	// Rand drives grid values and question choices.
	Rand *rand.Rand

	// EventRepo receives the attempt log. May be nil.
	EventRepo store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}

	newQuiz := func() screen.Screen {
		board, err := NewBoard(opts.Rand)
		if err != nil {
			log.Printf("build board: %v", err)
			return nil
		}
		path := opts.TemplatesPath
		return quiz.New(quiz.Deps{
			Grid:      board.Grid,
			Engine:    board.Engine,
			Rand:      opts.Rand,
			Events:    opts.EventRepo,
			Templates: func() ([]question.Template, error) { return templates.Load(path) },
		})
	}

	source := opts.TemplatesPath
	if source == "" {
		source = templates.DefaultSource
	}

	return AppModel{
		router: router.New(home.New(newQuiz, source)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.router.Close()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if os.Getenv(DebugEnvVar) != "" {
		f, err := tea.LogToFile(DebugLogFile, "chartiz")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
