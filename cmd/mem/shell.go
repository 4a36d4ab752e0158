package mem

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/ValentinKolb/pine/rpc/client"
	"github.com/ergochat/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	shellPrompt      = "pine> "
	shellHistoryFile = ".pine_history"
	shellHistorySize = 1000
	shellHelp        = `Enter one or more ops separated by spaces, several ops run as one batch.
  r<width>@<address>           read width bytes, e.g. r4@0x00347D34
  w<width>@<address>=<value>   write width bytes, e.g. w1@0x00347D34=7
  help                         show this help
  exit, quit                   leave the shell`
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive memory shell",
	Long: `Starts an interactive shell that reads ops line by line.
With a terminal on stdin the shell provides line editing and a history,
otherwise it reads plain lines, e.g. from a pipe.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := newLineEditor(os.Stdin)
		defer editor.Close()

		return runShell(editor, os.Stdout, rpcClient)
	},
}

// --------------------------------------------------------------------------
// Line Editor
// --------------------------------------------------------------------------

// lineEditor reads lines with readline on a terminal and with a scanner otherwise
type lineEditor struct {
	rl      *readline.Instance
	scanner *bufio.Scanner
	out     io.Writer
}

// newLineEditor creates a line editor for in. Readline is only used if in is
// a terminal, a failing readline setup falls back to plain line reading.
func newLineEditor(in *os.File) *lineEditor {
	if term.IsTerminal(int(in.Fd())) && os.Getenv("INSIDE_EMACS") == "" {
		rl, err := readline.NewFromConfig(&readline.Config{
			Prompt:                 shellPrompt,
			HistoryFile:            historyPath(),
			HistoryLimit:           shellHistorySize,
			DisableAutoSaveHistory: true,
		})
		if err == nil {
			return &lineEditor{rl: rl}
		}
		fmt.Fprintf(os.Stderr, "readline init failed (%v), using basic input\n", err)
	}
	return newScannerEditor(in, os.Stdout)
}

// newScannerEditor creates a line editor that reads plain lines from r
func newScannerEditor(r io.Reader, out io.Writer) *lineEditor {
	return &lineEditor{scanner: bufio.NewScanner(r), out: out}
}

// GetLine returns the next line, io.EOF at the end of input or on ctrl-c
func (e *lineEditor) GetLine() (string, error) {
	if e.rl != nil {
		line, err := e.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			_ = e.rl.SaveToHistory(trimmed)
		}
		return line, nil
	}

	if e.out != nil {
		fmt.Fprint(e.out, shellPrompt)
	}
	if !e.scanner.Scan() {
		if err := e.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return e.scanner.Text(), nil
}

// Close releases the terminal
func (e *lineEditor) Close() {
	if e.rl != nil {
		_ = e.rl.Close()
		e.rl = nil
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, shellHistoryFile)
}

// --------------------------------------------------------------------------
// Shell Loop
// --------------------------------------------------------------------------

// runShell executes lines from editor until the input ends or exit is entered.
// Errors of single lines are printed, they do not end the shell.
func runShell(editor *lineEditor, out io.Writer, c *client.Client) error {
	for {
		line, err := editor.GetLine()
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return nil
		case "help", "?":
			fmt.Fprintln(out, shellHelp)
			continue
		}

		ops, err := ParseOps(fields)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		results, err := RunOps(c, ops)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		for _, r := range results {
			fmt.Fprintln(out, r)
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "ok")
		}
	}
}
