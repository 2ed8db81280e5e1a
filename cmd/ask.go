package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/chartiz/internal/app"
	"github.com/abhisek/chartiz/internal/question"
	"github.com/abhisek/chartiz/internal/session"
	"github.com/abhisek/chartiz/internal/store"
	"github.com/abhisek/chartiz/internal/templates"
	"github.com/abhisek/chartiz/internal/ui/components"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer chart questions on the command line (no TUI)",
	Long: `Print a chart and a question, read an answer from stdin, repeat.

Type "?" to see the answer without submitting. The chart is redrawn before
every question unless --keep-chart is set.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Int("count", 5, "Number of questions to ask")
	askCmd.Flags().Bool("keep-chart", false, "Keep the same chart values for every question")
}

// askOptions configures a line-mode quiz.
type askOptions struct {
	Count     int
	KeepChart bool
	Templates []question.Template
	Rand      *rand.Rand
	Events    store.EventRepo
	Now       func() time.Time
}

func runAsk(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	keep, _ := cmd.Flags().GetBool("keep-chart")
	if count < 1 {
		return fmt.Errorf("invalid --count %d: must be at least 1", count)
	}

	ts, err := templates.Load(resolveTemplatesPath(cmd))
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	for _, t := range templates.Unsupported(ts) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: template type %q is not supported; its questions can't be checked\n", t)
	}

	st, err := store.Open(store.MemoryDSN())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return askSession(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), askOptions{
		Count:     count,
		KeepChart: keep,
		Templates: ts,
		Rand:      seedFlag(cmd),
		Events:    st.EventRepo(),
		Now:       time.Now,
	})
}

// askSession runs the quiz loop over in and out.
func askSession(ctx context.Context, in io.Reader, out io.Writer, opts askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	board, err := app.NewBoard(opts.Rand)
	if err != nil {
		return err
	}
	board.Engine.SetTemplates(opts.Templates)

	state := session.NewState(uuid.New().String(), opts.Now())
	if err := opts.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: state.SessionID,
		Action:    "start",
	}); err != nil {
		return fmt.Errorf("record session start: %w", err)
	}

	scanner := bufio.NewScanner(in)

questions:
	for i := 1; i <= opts.Count; i++ {
		if i > 1 && !opts.KeepChart {
			board.Grid.Randomize(opts.Rand)
		}
		q, err := board.Engine.Generate()
		if errors.Is(err, question.ErrNoTemplates) {
			fmt.Fprintln(out, "No questions available.")
			break
		}
		if err != nil {
			return fmt.Errorf("generate question: %w", err)
		}
		state.Begin(q, opts.Now())

		fmt.Fprintf(out, "── Question %d/%d ──\n", i, opts.Count)
		lipgloss.Fprintln(out, components.ChartTable(board.Grid))
		fmt.Fprintln(out)
		fmt.Fprintln(out, q.Text)

		for {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				break questions
			}
			input := strings.TrimSpace(scanner.Text())

			if input == "?" {
				if q.Answerable() {
					fmt.Fprintf(out, "Answer: %s\n", q.Answer)
				}
				state.Reveal()
				continue
			}

			res, err := state.Submit(input, opts.Now())
			if errors.Is(err, session.ErrUnanswerable) {
				fmt.Fprintln(out, "(this question can't be checked)")
				break
			}
			if err != nil {
				return err
			}

			if res.Correct {
				fmt.Fprintln(out, "✓ Correct!")
			} else {
				fmt.Fprintf(out, "✗ Wrong. Answer: %s\n", res.Expected)
			}

			if err := opts.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
				SessionID:     state.SessionID,
				Kind:          string(q.Kind),
				QuestionText:  q.Text,
				CorrectAnswer: res.Expected.String(),
				LearnerAnswer: input,
				Correct:       res.Correct,
				TimeMs:        int(res.AnswerTime.Milliseconds()),
			}); err != nil {
				return fmt.Errorf("record answer: %w", err)
			}
			break
		}
		fmt.Fprintln(out)
	}

	state.Tick(opts.Now())
	if err := opts.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       state.SessionID,
		Action:          "end",
		QuestionsServed: state.TotalAttempts,
		CorrectAnswers:  state.TotalCorrect,
		DurationSecs:    int(state.Elapsed.Seconds()),
	}); err != nil {
		return fmt.Errorf("record session end: %w", err)
	}

	return printAskSummary(ctx, out, state, opts.Events)
}

func printAskSummary(ctx context.Context, out io.Writer, state *session.State, events store.EventRepo) error {
	sum := session.BuildSummary(state)
	fmt.Fprintf(out, "── Summary: %s correct in %s ──\n", state.Score(), session.FormatClock(sum.Duration))

	kinds, err := events.AccuracyByKind(ctx, state.SessionID)
	if err != nil {
		return fmt.Errorf("read attempt log: %w", err)
	}
	for _, k := range kinds {
		fmt.Fprintf(out, "  %-20s %d/%d\n", k.Kind, k.Correct, k.Attempted)
	}
	return nil
}
