package vars_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/euforicio/wikipage/internal/vars"
)

func TestPreprocessIdentity(t *testing.T) {
	t.Parallel()
	docs := []string{
		"",
		"# Heading\n\nplain paragraph\n",
		"text with braces {not a ref} and 'quotes'\n",
	}
	for _, doc := range docs {
		got, err := vars.Preprocess(doc)
		if err != nil {
			t.Fatalf("Preprocess(%q) returned error: %v", doc, err)
		}
		if got != doc {
			t.Errorf("Preprocess(%q) = %q, want identity", doc, got)
		}
	}
}

func TestPreprocessSubstitution(t *testing.T) {
	t.Parallel()
	doc := "<'''red{color:red}big{font-size:2em}'''>\n" +
		"# Title\n\n" +
		"Some '{parent style $red}' styled text.\n"

	got, err := vars.Preprocess(doc)
	if err != nil {
		t.Fatalf("Preprocess returned error: %v", err)
	}
	if strings.Contains(got, "<'''") || strings.Contains(got, "'''>") {
		t.Errorf("definition block leaked into output: %q", got)
	}
	if !strings.Contains(got, "'{parent style color:red}'") {
		t.Errorf("expected substituted reference, got %q", got)
	}
}

func TestPreprocessKeepsSurroundingText(t *testing.T) {
	t.Parallel()
	doc := "<'''c{blue}'''>before '{x $c y}' after"
	got, err := vars.Preprocess(doc)
	if err != nil {
		t.Fatalf("Preprocess returned error: %v", err)
	}
	if !strings.Contains(got, "'{x blue y}'") {
		t.Errorf("surrounding reference text lost: %q", got)
	}
}

func TestPreprocessDuplicateKeys(t *testing.T) {
	t.Parallel()
	doc := "<'''c{first}c{second}'''>'{$c}'"
	got, err := vars.Preprocess(doc)
	if err != nil {
		t.Fatalf("Preprocess returned error: %v", err)
	}
	if got != "'{second}'" {
		t.Errorf("expected later duplicate to win, got %q", got)
	}
}

func TestPreprocessUndefinedVariable(t *testing.T) {
	t.Parallel()
	doc := "<'''known{v}'''>text '{use $unknown here}' more"
	_, err := vars.Preprocess(doc)
	if err == nil {
		t.Fatalf("expected error for undefined variable")
	}
	var undef *vars.UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %T: %v", err, err)
	}
	if undef.Name != "unknown" {
		t.Errorf("error names variable %q, want %q", undef.Name, "unknown")
	}
}

func TestPreprocessUndefinedWithoutBlock(t *testing.T) {
	t.Parallel()
	if _, err := vars.Preprocess("'{$ghost}'"); err == nil {
		t.Fatalf("expected error when referencing with no definitions at all")
	}
}

func TestPreprocessSinglePass(t *testing.T) {
	t.Parallel()
	// A value containing another reference token is spliced verbatim,
	// not expanded again.
	doc := "<'''outer{$inner}inner{deep}'''>'{$outer}'"
	got, err := vars.Preprocess(doc)
	if err != nil {
		t.Fatalf("Preprocess returned error: %v", err)
	}
	if got != "'{$inner}'" {
		t.Errorf("expected single-pass substitution, got %q", got)
	}
}

func TestPreprocessMultilineBlock(t *testing.T) {
	t.Parallel()
	doc := "intro\n<'''\nred{color:red}\nblue{color:blue}\n'''>\n'{a $blue b}'"
	got, err := vars.Preprocess(doc)
	if err != nil {
		t.Fatalf("Preprocess returned error: %v", err)
	}
	if !strings.Contains(got, "'{a color:blue b}'") {
		t.Errorf("multiline block not parsed: %q", got)
	}
	if strings.Contains(got, "color:red}\n") && strings.Contains(got, "'''") {
		t.Errorf("block not stripped: %q", got)
	}
}
