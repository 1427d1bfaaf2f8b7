// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

package prompt

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPlainLine(t *testing.T) {
	in := strings.NewReader("10.0.0.5\nsecond\n")
	var out bytes.Buffer
	read := PlainLine(in, &out)

	got, err := read("URL for \"SSH-Key MyServer\"")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got != "10.0.0.5" {
		t.Errorf("read = %q, want 10.0.0.5", got)
	}
	if !strings.Contains(out.String(), "URL for") {
		t.Errorf("label not echoed: %q", out.String())
	}

	got, err = read("second prompt")
	if err != nil || got != "second" {
		t.Errorf("second read = %q, %v", got, err)
	}
}

func TestPlainLineCRLF(t *testing.T) {
	read := PlainLine(strings.NewReader("value\r\n"), &bytes.Buffer{})
	got, err := read("field")
	if err != nil || got != "value" {
		t.Errorf("read = %q, %v; want value", got, err)
	}
}

func TestPlainLineEOF(t *testing.T) {
	read := PlainLine(strings.NewReader(""), &bytes.Buffer{})
	if _, err := read("field"); err == nil {
		t.Error("expected error at EOF")
	}
}

func TestInputModelEnter(t *testing.T) {
	m := newInputModel("User for \"box\"")
	var model tea.Model = m
	for _, r := range "deploy" {
		model, _ = model.(inputModel).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.(inputModel).Update(tea.KeyMsg{Type: tea.KeyEnter})

	final := model.(inputModel)
	if !final.done || final.aborted {
		t.Fatalf("enter should complete the prompt: %+v", final)
	}
	if got := final.input.Value(); got != "deploy" {
		t.Errorf("input value = %q, want deploy", got)
	}
}

func TestInputModelAbort(t *testing.T) {
	model, _ := newInputModel("field").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !model.(inputModel).aborted {
		t.Error("ctrl+c should abort the prompt")
	}
}
