package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/samzong/git-autocommit/internal/interact"
)

var kindColors = map[interact.Kind]*color.Color{
	interact.Info:    color.New(color.FgCyan),
	interact.Success: color.New(color.FgGreen),
	interact.Warning: color.New(color.FgYellow),
	interact.Error:   color.New(color.FgRed, color.Bold),
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

var panelTitleStyle = lipgloss.NewStyle().Bold(true)

// Terminal is the interact.Gateway for a human at a terminal. Status lines go to
// Err, panels go to Out. Questions use a huh form when both In and Err are
// terminals and a plain [y/N] line prompt otherwise.
type Terminal struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	interactive bool
	reader      *bufio.Reader
}

var _ interact.Gateway = (*Terminal)(nil)

// NewTerminal returns a gateway on the process's standard streams.
func NewTerminal() *Terminal {
	return &Terminal{
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		interactive: IsTerminal(os.Stdin) && IsTerminal(os.Stderr),
	}
}

// NewTerminalWithIO returns a line-oriented gateway on the given streams.
func NewTerminalWithIO(in io.Reader, out, errOut io.Writer) *Terminal {
	return &Terminal{In: in, Out: out, Err: errOut}
}

func (t *Terminal) AskYesNo(question string) (bool, error) {
	if t.interactive {
		var ok bool
		err := huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&ok).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		return ok, nil
	}

	fmt.Fprintf(t.Err, "%s [y/N]: ", question)
	line, err := t.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (t *Terminal) ShowMessage(text string, kind interact.Kind) {
	c, ok := kindColors[kind]
	if !ok {
		fmt.Fprintln(t.Err, text)
		return
	}
	c.Fprintln(t.Err, text)
}

func (t *Terminal) ShowPanel(title, text string) {
	if !t.interactive {
		fmt.Fprintf(t.Err, "\n%s:\n", title)
		fmt.Fprintln(t.Out, text)
		return
	}
	fmt.Fprintln(t.Err, panelTitleStyle.Render(title))
	fmt.Fprintln(t.Out, panelStyle.Render(text))
}

func (t *Terminal) Progress(text string) func() {
	if !t.interactive {
		fmt.Fprintln(t.Err, text)
		return func() {}
	}
	sp := NewSpinner(t.Err, text)
	sp.Start()
	return sp.Stop
}

// PromptSecret reads a line without echoing it when In is a terminal.
func (t *Terminal) PromptSecret(label string) (string, error) {
	fmt.Fprint(t.Err, label)
	if f, ok := t.In.(*os.File); ok && IsTerminal(f) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(t.Err)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return t.readLine()
}

// Prompt reads one line of visible input.
func (t *Terminal) Prompt(label string) (string, error) {
	fmt.Fprint(t.Err, label)
	return t.readLine()
}

// readLine reads one trimmed line from In. End of input counts as an empty answer.
func (t *Terminal) readLine() (string, error) {
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}
	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
