package main

import (
	"fmt"
	"log/slog"
	"os"

	mathscript "github.com/jfalameda/mathscript"
)

const appName = "mathscript"

// CLI is the top-level command-line interface.
type CLI struct {
	LogLevel string `help:"Log level (debug|info|warn|error)" enum:"debug,info,warn,error" default:"warn"`
	Config   string `help:"Path to an alternate config file" type:"path"`

	Run     RunCmd     `cmd:"" help:"Run a script file"`
	Repl    ReplCmd    `cmd:"" default:"1" help:"Start an interactive session"`
	Version VersionCmd `cmd:"" help:"Print the interpreter version"`
}

func (c *CLI) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// RunCmd executes a script file.
type RunCmd struct {
	Script string `arg:"" help:"Script file to execute" type:"existingfile"`
	AST    bool   `help:"Print the parsed AST instead of executing"`
}

func (c *RunCmd) Run(logger *slog.Logger) error {
	data, err := os.ReadFile(c.Script)
	if err != nil {
		return err
	}
	src := string(data)

	logger.Debug("script loaded",
		slog.String("path", c.Script),
		slog.Int("bytes", len(data)),
	)

	if c.AST {
		prog, err := mathscript.Parse(src)
		if err != nil {
			return mathscript.WrapErrorWithName(err, c.Script, src)
		}
		fmt.Print(mathscript.DumpAST(prog))
		return nil
	}

	ip := mathscript.New()
	_, err = ip.EvalSourceNamed(c.Script, src)
	return err
}

// VersionCmd prints the interpreter version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(mathscript.Version)
	return nil
}
