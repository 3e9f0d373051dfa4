package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"shodhacli/internal/cli/command"
	"shodhacli/internal/contest/model"
	"shodhacli/internal/contest/session"
	"shodhacli/internal/contest/template"
	"shodhacli/internal/contest/track"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
)

// Shell is the interactive contest shell.
type Shell struct {
	mu   sync.Mutex
	out  io.Writer
	sess *session.Session
}

// New creates a shell. Submission lifecycle events go through Notify,
// which is safe to pass to session.Open before Run is called.
func New() *Shell {
	return &Shell{out: os.Stdout}
}

// Notify renders one lifecycle event. Called from the polling
// goroutine, so output is serialized through the shell's lock.
func (s *Shell) Notify(ev track.Event) {
	switch ev.Kind {
	case track.EventProcessing:
		s.printLine("status: Processing...")
	case track.EventVerdict:
		if ev.Status == model.StatusAccepted {
			s.printLine("✅ Accepted! All test cases passed.")
		} else {
			result := ev.Result
			if result == "" {
				result = "Unknown error"
			}
			s.printLine("❌ %s: %s", ev.Status, result)
		}
	case track.EventTimeout:
		s.printLine("⏱ Gave up waiting for a verdict. This is not a judge result; check your submission later.")
	case track.EventSubmitFailed:
		s.printLine("submission failed: %v", ev.Err)
	case track.EventPollError:
		s.printLine("error checking submission status: %v", ev.Err)
	}
}

// Run drives the input loop until exit or EOF.
func (s *Shell) Run(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()

	rl, err := readline.New("shodha> ")
	if err != nil {
		return fmt.Errorf("init readline failed: %w", err)
	}
	defer func() { _ = rl.Close() }()
	s.mu.Lock()
	s.out = rl.Stdout()
	s.mu.Unlock()

	s.printLine("joined as %s, type 'help' for commands", sess.UserName())
	if !sess.Loaded() {
		s.printLine("contest is still loading; problem commands are unavailable")
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			s.printLine("bye")
			return nil
		}
		if err := s.handleCommand(ctx, line); err != nil {
			s.printLine("error: %v", err)
		}
	}
}

func (s *Shell) handleCommand(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0] {
	case "help":
		s.printHelp()
		return nil
	case "problems":
		return s.listProblems()
	case "select":
		if len(tokens) < 2 {
			return fmt.Errorf("usage: select <problem-id>")
		}
		id, err := command.ParseInt64(tokens[1])
		if err != nil {
			return fmt.Errorf("invalid problem id: %w", err)
		}
		if err := s.sess.SelectProblem(id); err != nil {
			return err
		}
		s.printLine("selected problem %d: %s", id, s.sess.Selected().Title)
		return nil
	case "view":
		return s.viewProblem()
	case "lang":
		if len(tokens) < 2 {
			s.printLine("language: %s (available: %s)", s.sess.Language(), strings.Join(template.Languages(), ", "))
			return nil
		}
		return s.setLanguage(tokens[1])
	case "code":
		s.printLine("%s", s.sess.Code())
		return nil
	case "load":
		if len(tokens) < 2 {
			return fmt.Errorf("usage: load <source-file>")
		}
		source, err := command.ReadFile(tokens[1])
		if err != nil {
			return err
		}
		s.sess.SetCode(source)
		s.printLine("loaded %d bytes from %s", len(source), tokens[1])
		return nil
	case "submit":
		if err := s.sess.Submit(ctx); err != nil {
			return err
		}
		s.printLine("submitted; polling for the verdict")
		return nil
	case "status":
		s.printLine("tracking state: %s", s.sess.TrackingState())
		return nil
	case "board":
		s.printBoard()
		return nil
	}
	return fmt.Errorf("unknown command: %s", tokens[0])
}

func (s *Shell) listProblems() error {
	contest := s.sess.Contest()
	if contest == nil {
		return fmt.Errorf("contest is still loading")
	}
	s.printLine("%s", contest.Title)
	selected := s.sess.Selected()
	for _, p := range contest.Problems {
		marker := " "
		if selected != nil && selected.ID == p.ID {
			marker = "*"
		}
		s.printLine(" %s %d. %s", marker, p.ID, p.Title)
	}
	return nil
}

func (s *Shell) viewProblem() error {
	problem := s.sess.Selected()
	if problem == nil {
		return fmt.Errorf("no problem selected")
	}
	s.printLine("%s", problem.Title)
	s.printLine("%s", problem.Statement)
	return nil
}

func (s *Shell) setLanguage(lang string) error {
	if !template.Known(lang) {
		s.printLine("warning: no template for %q, starting from an empty draft", lang)
	}
	s.sess.SetLanguage(lang)
	s.printLine("language set to %s; the draft was reset to its template", lang)
	return nil
}

func (s *Shell) printBoard() {
	entries := s.sess.Leaderboard()
	if len(entries) == 0 {
		s.printLine("no submissions yet")
		return
	}
	s.printLine("%-4s %-20s %-8s %s", "rank", "user", "solved", "best time")
	for i, entry := range entries {
		best := "-"
		if entry.BestTimeMillis != nil {
			best = fmt.Sprintf("%dms", *entry.BestTimeMillis)
		}
		s.printLine("%-4d %-20s %-8d %s", i+1, entry.UserName, entry.AcceptedCount, best)
	}
}

func (s *Shell) printHelp() {
	s.printLine("commands:")
	s.printLine("  problems            list the contest problems")
	s.printLine("  select <id>         pick a problem")
	s.printLine("  view                show the selected problem statement")
	s.printLine("  lang [java|python|cpp]  show or switch language (resets the draft)")
	s.printLine("  load <file>         load source code into the draft")
	s.printLine("  code                show the current draft")
	s.printLine("  submit              submit the draft for judging")
	s.printLine("  status              show the tracking state")
	s.printLine("  board               show the leaderboard")
	s.printLine("  exit                leave the contest")
}

func (s *Shell) printLine(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}
