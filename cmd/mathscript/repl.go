package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/sahilm/fuzzy"

	mathscript "github.com/jfalameda/mathscript"
)

// Styles.
var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const replHelp = `
REPL commands:
  :help    Show this help
  :quit    Exit the REPL
`

// ReplCmd starts an interactive session.
type ReplCmd struct{}

func (c *ReplCmd) Run(logger *slog.Logger, cfg *Config) error {
	fmt.Println(bannerStyle.Render(fmt.Sprintf("MathScript %s", mathscript.Version)))
	fmt.Println(hintStyle.Render("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit."))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	ip := mathscript.New()
	ln.SetCompleter(completer(ip))

	logger.Debug("repl session started",
		slog.String("history_file", cfg.HistoryFile),
	)

	for {
		code, ok := readInput(ln, cfg.Prompt, cfg.ContPrompt)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			case ":help":
				fmt.Print(replHelp)
			default:
				fmt.Println(hintStyle.Render("unknown command. Type :help for help."))
			}
			continue
		}

		v, err := ip.EvalSourceNamed("<repl>", code)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
			continue
		}
		if v.Tag != mathscript.VTUnit {
			fmt.Println(resultStyle.Render(v.String()))
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return nil
}

// readInput collects lines until they form a complete unit, reparsing the
// accumulated text after each one and prompting for more while the parser
// reports truncated input. The second result is false on EOF.
func readInput(ln *liner.State, prompt, cont string) (string, bool) {
	var lines []string

	for {
		p := prompt
		if len(lines) > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		lines = append(lines, line)
		src := strings.Join(lines, "\n")
		if inputComplete(src) {
			return src, true
		}
	}
}

// inputComplete reports whether src should be handed to the evaluator as-is.
// Hard parse errors count as complete so evaluation surfaces the full
// diagnostic; only truncated input keeps the continuation prompt going.
func inputComplete(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return true
	}
	_, err := mathscript.Parse(src)
	if err == nil {
		return true
	}
	return !mathscript.IsIncomplete(err)
}

// completer fuzzy-matches the word under the cursor against keywords,
// built-ins and the interpreter's global bindings.
func completer(ip *mathscript.Interpreter) liner.Completer {
	keywords := []string{"let", "func", "if", "else", "return", "true", "false"}

	return func(line string) []string {
		start := strings.LastIndexFunc(line, func(r rune) bool {
			return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
		}) + 1
		word := line[start:]
		if word == "" {
			return nil
		}

		candidates := append([]string{}, keywords...)
		candidates = append(candidates, ip.Builtins()...)
		candidates = append(candidates, ip.GlobalNames()...)
		sort.Strings(candidates)

		var out []string
		for _, m := range fuzzy.Find(word, candidates) {
			out = append(out, line[:start]+m.Str)
		}
		return out
	}
}
