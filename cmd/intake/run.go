package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	intake "github.com/lstw2025/sv-documentation-platform"
	"github.com/lstw2025/sv-documentation-platform/internal/logging"
	"github.com/lstw2025/sv-documentation-platform/internal/presentation/tui"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the survey interactively in the terminal",
	Long:  `Starts (or resumes) a survey session for the given handle and walks through it question by question.`,
	Run: func(cmd *cobra.Command, args []string) {
		handle, _ := cmd.Flags().GetString("handle")
		debug, _ := cmd.Flags().GetBool("debug")

		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		def, err := resolveDefinition(cmd)
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		if err := runSession(def, handle, resolveStoreOption(cmd, logger)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("handle", "anonymous", "Pseudonymous handle used to namespace saved progress")
	runCmd.Flags().Bool("debug", false, "Enable debug logging")
	runCmd.Flags().String("store", "file", "Draft store: memory, file, or redis")
	runCmd.Flags().String("sessions-dir", "", "Directory for the file store")
	runCmd.Flags().String("redis", "localhost:6379", "Redis address for the redis store")
}

func resolveStoreOption(cmd *cobra.Command, logger *slog.Logger) []intake.Option {
	return []intake.Option{
		intake.WithStore(resolveStore(cmd)),
		intake.WithLogger(logger),
	}
}

func runSession(def *domain.SurveyDefinition, handle string, opts []intake.Option) error {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	render := tui.NewRenderer()

	crisisShown := false
	hooks := domain.LifecycleHooks{
		OnCrisisDetected: func(_ context.Context, _ *domain.CrisisEvent) {
			// Show the resource block once per session, not on every hit.
			if !crisisShown {
				tui.PrintCrisisResources()
				crisisShown = true
			}
		},
		OnBreakReminder: func(_ context.Context, e *domain.ReminderEvent) {
			fmt.Printf("\nYou've been answering questions for about %d minutes. Consider taking a short break to check in with yourself.\n\n", int(e.Elapsed.Minutes()))
		},
	}
	opts = append(opts, intake.WithLifecycleHooks(hooks))

	eng, err := intake.New(def, opts...)
	if err != nil {
		return err
	}

	if interactive {
		tui.PrintBanner()
	}

	ctx := context.Background()
	state := eng.Start(ctx, handle)
	reader := bufio.NewReader(os.Stdin)

	for {
		eng.Tick(ctx, state)
		view := eng.Current(state)

		switch view.Phase {
		case domain.PhaseSurveyComplete:
			answered, total := eng.Progress(state)
			fmt.Printf("\nSurvey complete. You answered %d of %d questions. Thank you.\n", answered, total)
			eng.Complete(ctx, state)
			return nil

		case domain.PhaseSectionComplete:
			fmt.Printf("\n--- Section complete: %s ---\n", view.Section.Title)
			fmt.Println("Press Enter to continue, or type 'back' / 'quit'.")
			line, err := readLine(reader)
			if err != nil {
				return err
			}
			switch line {
			case "back":
				eng.Retreat(state)
			case "quit":
				return saveAndExit(ctx, eng, state)
			default:
				eng.Advance(state)
			}

		case domain.PhaseQuestion:
			if err := askQuestion(ctx, eng, state, view, render, reader); err != nil {
				if err == errQuit {
					return saveAndExit(ctx, eng, state)
				}
				return err
			}
		}
	}
}

var errQuit = fmt.Errorf("quit requested")

func askQuestion(ctx context.Context, eng *intake.Engine, state *domain.SessionState, view domain.View, render func(string) (string, error), reader *bufio.Reader) error {
	q := view.Question
	answered, total := eng.Progress(state)

	fmt.Printf("\n[%s] (%d/%d answered)\n", view.Section.Title, answered, total)
	if out, err := render("**" + q.Prompt + "**"); err == nil {
		fmt.Print(out)
	} else {
		fmt.Println(q.Prompt)
	}
	if q.Helper != "" {
		fmt.Println(q.Helper)
	}

	printChoices(q)
	printCommands(q)

	for {
		line, err := readLine(reader)
		if err != nil {
			return err
		}

		switch line {
		case "quit":
			return errQuit
		case "back":
			eng.Retreat(state)
			return nil
		case "skip":
			if err := eng.Skip(ctx, state, q.ID); err != nil {
				fmt.Printf("  %v\n", err)
				continue
			}
			eng.Advance(state)
			return nil
		case "":
			if eng.CanAdvance(state) {
				eng.Advance(state)
				return nil
			}
			fmt.Println("  This question needs an answer before continuing.")
			continue
		}

		resp, err := parseResponse(q, line)
		if err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}

		if _, err := eng.SetResponse(ctx, state, q.ID, resp); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}

		if !eng.CanAdvance(state) {
			// Consent-style question answered with a non-affirmative value.
			fmt.Println("  The survey cannot continue without this. You can change your answer or type 'quit'.")
			continue
		}

		eng.Advance(state)
		return nil
	}
}

func printChoices(q *domain.Question) {
	if !q.IsChoice() {
		return
	}
	for i, opt := range q.Options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	if q.Type == domain.TypeMultiChoice {
		fmt.Println("  (select several with commas, e.g. 1,3)")
	}
}

func printCommands(q *domain.Question) {
	cmds := []string{"'back'", "'quit'"}
	if q.Skippable {
		cmds = append([]string{"'skip'"}, cmds...)
	}
	switch q.Type {
	case domain.TypeBoolean:
		fmt.Printf("  Answer y/n, or %s\n", strings.Join(cmds, ", "))
	default:
		fmt.Printf("  Commands: %s\n", strings.Join(cmds, ", "))
	}
	fmt.Print("> ")
}

// parseResponse turns a line of terminal input into a typed response.
func parseResponse(q *domain.Question, line string) (domain.Response, error) {
	switch q.Type {
	case domain.TypeBoolean:
		switch strings.ToLower(line) {
		case "y", "yes", "true":
			return domain.BoolResponse(true), nil
		case "n", "no", "false":
			return domain.BoolResponse(false), nil
		}
		return domain.Response{}, fmt.Errorf("please answer y or n")

	case domain.TypeSingleChoice:
		opt, err := pickOption(q, line)
		if err != nil {
			return domain.Response{}, err
		}
		return domain.ChoiceResponse(opt), nil

	case domain.TypeMultiChoice:
		var opts []string
		for _, part := range strings.Split(line, ",") {
			opt, err := pickOption(q, strings.TrimSpace(part))
			if err != nil {
				return domain.Response{}, err
			}
			opts = append(opts, opt)
		}
		return domain.MultiResponse(opts...), nil

	default:
		return domain.TextResponse(line), nil
	}
}

// pickOption accepts either the 1-based option number or the literal text.
func pickOption(q *domain.Question, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(q.Options) {
			return "", fmt.Errorf("pick a number between 1 and %d", len(q.Options))
		}
		return q.Options[n-1], nil
	}
	for _, opt := range q.Options {
		if strings.EqualFold(opt, input) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%q is not one of the options", input)
}

func saveAndExit(ctx context.Context, eng *intake.Engine, state *domain.SessionState) error {
	if err := eng.Save(ctx, state); err != nil {
		fmt.Println("Could not save progress; your answers so far may be lost.")
	} else {
		fmt.Println("Progress saved. Resume any time with the same handle.")
	}
	return nil
}

func readLine(reader *bufio.Reader) (string, error) {
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
