// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prompt reads single lines of user input. On a real terminal it
// runs a small bubbletea text input; everywhere else (pipes, CI, tests)
// it falls back to plain buffered reads so the tool stays scriptable.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt (ctrl+c, esc).
var ErrAborted = errors.New("prompt aborted")

// LineReader blocks until the user answers the given prompt label with
// one line of input.
type LineReader func(label string) (string, error)

// Stdin returns the LineReader for the current process: interactive when
// stdin is a terminal, plain reads otherwise.
func Stdin() LineReader {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return teaLine
	}
	return PlainLine(os.Stdin, os.Stdout)
}

// PlainLine reads lines from r, echoing the label to w. Used directly by
// tests to script answers.
func PlainLine(r io.Reader, w io.Writer) LineReader {
	reader := bufio.NewReader(r)
	return func(label string) (string, error) {
		fmt.Fprintf(w, "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// inputModel is the one-shot bubbletea model behind teaLine.
type inputModel struct {
	label   string
	input   textinput.Model
	done    bool
	aborted bool
}

func newInputModel(label string) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	return inputModel{label: label, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return labelStyle.Render(m.label) + "\n" + m.input.View() + "\n" + hintStyle.Render("enter to confirm, esc to cancel") + "\n"
}

// teaLine runs the text input program on the controlling terminal.
func teaLine(label string) (string, error) {
	p := tea.NewProgram(newInputModel(label))
	res, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := res.(inputModel)
	if !ok || m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}
