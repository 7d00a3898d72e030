package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
	"github.com/zhouzirui/pawmatch/backend/internal/service/catalog"
	quizService "github.com/zhouzirui/pawmatch/backend/internal/service/quiz"
)

func newRunCmd(loadStore func() (breed.Store, error)) *cobra.Command {
	var (
		setName string
		delay   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Answer the questionnaire interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			set, err := quiz.QuestionSetByName(setName)
			if err != nil {
				return err
			}
			return runQuiz(cmd.Context(), set, store, delay, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&setName, "set", quiz.ClassicSet, "question set (classic or cozy)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause between an answer and the next message")
	return cmd
}

func runQuiz(ctx context.Context, set quiz.QuestionSet, store breed.Store, delay time.Duration, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m, err := quizService.NewMachine(
		quiz.Session{ID: uuid.NewString(), QuestionSet: set.Name, CreatedAt: time.Now().UTC()},
		set,
		catalog.NewStatic(store),
		quizService.WithDelay(delay),
		quizService.WithListener(printer(out)),
	)
	if err != nil {
		return err
	}
	defer m.Close()
	m.Start()

	scanner := bufio.NewScanner(in)
	for {
		snap := m.Snapshot()
		switch snap.State {
		case quiz.StateComplete:
			return nil
		case quiz.StateAwaitingRetry:
			fmt.Fprintln(out, "Change an answer with <axis>=<value>, type retry, or quit.")
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "quit":
			return nil
		case line == "":
			continue
		case snap.State == quiz.StateAwaitingAnswer:
			err = m.Answer(ctx, resolveOption(snap.Question, line), "")
		case line == "retry":
			err = m.Retry(ctx)
		case strings.Contains(line, "="):
			name, value, _ := strings.Cut(line, "=")
			axis, ok := breed.ParseAxis(strings.TrimSpace(name))
			if !ok {
				fmt.Fprintf(out, "unknown axis %q\n", name)
				continue
			}
			err = m.Revise(ctx, axis, strings.TrimSpace(value))
		default:
			fmt.Fprintln(out, "unrecognised input")
			continue
		}

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, quizService.ErrSessionClosed) {
				return err
			}
			fmt.Fprintf(out, "! %v\n", err)
		}
	}
}

// resolveOption accepts either an option value or its 1-based position.
func resolveOption(q *quiz.Question, input string) string {
	if q == nil {
		return input
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
		if _, isValue := q.Option(input); !isValue {
			return q.Options[n-1].Value
		}
	}
	return input
}

func printer(out io.Writer) quiz.Listener {
	return func(e quiz.Event) {
		switch e.Kind {
		case quiz.EventEntryAdded:
			entry := e.Entry
			switch entry.Kind {
			case quiz.EntryQuestion:
				fmt.Fprintf(out, "\n%s\n", entry.Text)
				for i, opt := range entry.Options {
					fmt.Fprintf(out, "  %d) %s [%s]\n", i+1, opt.Label, opt.Value)
				}
			case quiz.EntryAnswer:
				fmt.Fprintf(out, "you: %s\n", entry.Text)
			case quiz.EntryLoading:
				fmt.Fprintln(out, "...")
			}
		case quiz.EventIntermediate:
			fmt.Fprintf(out, "So far you look like a %s (%d%% fit).\n", e.Result.Name, e.Result.FitScore)
		case quiz.EventFinal:
			fmt.Fprintf(out, "\nYour match: %s (%d%% fit)\n%s\n", e.Result.Name, e.Result.FitScore, e.Result.Why)
			if len(e.Result.Tags) > 0 {
				fmt.Fprintf(out, "tags: %s\n", strings.Join(e.Result.Tags, ", "))
			}
		case quiz.EventNoMatch:
			fmt.Fprintln(out, e.Message)
		}
	}
}
