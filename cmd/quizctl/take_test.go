package main

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"style-finder/internal/domain"
	"style-finder/internal/service"
)

func items() []domain.QuestionItem {
	return []domain.QuestionItem{
		{ID: 1, Text: "I set the direction", Group: 1},
		{ID: 2, Text: "I ask the team", Group: 2},
		{ID: 7, Text: "I imagine what is next", Group: 4},
	}
}

func TestAskResponses_DefaultsAndReprompts(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("5\n\nseven\n0\n2\n"))
	var out bytes.Buffer

	answers, err := askResponses(in, &out, items())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Answer{
		{QuestionID: 1, Score: 5},
		{QuestionID: 2, Score: 3},
		{QuestionID: 7, Score: 2},
	}
	if !reflect.DeepEqual(answers, want) {
		t.Fatalf("expected %+v, got %+v", want, answers)
	}
	if n := strings.Count(out.String(), "Enter a whole number from 1 to 5."); n != 2 {
		t.Fatalf("expected 2 re-prompts, got %d", n)
	}
	if !strings.Contains(out.String(), "[3/3] PART 4") {
		t.Fatalf("expected progress label, got %q", out.String())
	}
}

func TestAskResponses_LastLineWithoutNewline(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("1\n2\n4"))
	answers, err := askResponses(in, io.Discard, items())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answers[2].Score != 4 {
		t.Fatalf("expected last score 4, got %d", answers[2].Score)
	}
}

func TestAskResponses_EOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("1\n"))
	if _, err := askResponses(in, io.Discard, items()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestParseScore(t *testing.T) {
	for input, want := range map[string]int{"": 3, "1": 1, "5": 5} {
		got, ok := parseScore(input)
		if !ok || got != want {
			t.Fatalf("parseScore(%q) = %d, %v; want %d", input, got, ok, want)
		}
	}
	for _, input := range []string{"6", "-1", "3.5", "x"} {
		if _, ok := parseScore(input); ok {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestPromptRequired(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("\n  \nAda\n"))
	var out bytes.Buffer
	v, err := promptRequired(in, &out, "Name: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "Ada" {
		t.Fatalf("expected Ada, got %q", v)
	}
	if n := strings.Count(out.String(), "A value is required."); n != 2 {
		t.Fatalf("expected 2 re-prompts, got %d", n)
	}
}

type checkFunc func(string) error

func (f checkFunc) Authorize(secret string) error { return f(secret) }

func TestAuthorize(t *testing.T) {
	access, err := service.NewAccessGate("open-sesame", "")
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	gate := checkFunc(access.Check)

	secret, err := authorize(gate, "open-sesame", bufio.NewReader(strings.NewReader("")), io.Discard)
	if err != nil || secret != "open-sesame" {
		t.Fatalf("expected configured secret to pass, got %q, %v", secret, err)
	}

	var out bytes.Buffer
	secret, err = authorize(gate, "", bufio.NewReader(strings.NewReader("open-sesame\n")), &out)
	if err != nil || secret != "open-sesame" {
		t.Fatalf("expected prompted secret to pass, got %q, %v", secret, err)
	}
	if !strings.Contains(out.String(), "Access secret: ") {
		t.Fatalf("expected a prompt, got %q", out.String())
	}

	if _, err := authorize(gate, "", bufio.NewReader(strings.NewReader("guess\n")), io.Discard); !errors.Is(err, service.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}
