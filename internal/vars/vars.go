// Package vars implements the per-document variable store: a single
// <'''key{value}...'''> definition block plus inline '{...$name...}'
// references scattered through the rest of the document.
package vars

import (
	"fmt"
	"regexp"
)

var (
	blockPattern = regexp.MustCompile(`(?s)<'''(.*)'''>`)
	pairPattern  = regexp.MustCompile(`(\S*?)\{([^}]*?)\}`)
	refPattern   = regexp.MustCompile(`'\{(.*?)\$(\S+?)(\s.*?\}|\})'`)
)

// UndefinedVariableError reports a reference to a variable that was
// never defined. It is fatal for the whole document: a partially
// substituted page must never be published.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// Store holds the key/value pairs defined by a single document. It is
// created at the start of preprocessing and discarded afterwards.
type Store struct {
	values map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Preprocess runs the whole variable stage over one document: collect
// definitions, strip the definition block, substitute references. With
// no block and no references it is the identity function.
func Preprocess(text string) (string, error) {
	return NewStore().Parse(text)
}

// Parse collects definitions from text, strips the definition block and
// returns the text with every reference substituted.
func (s *Store) Parse(text string) (string, error) {
	s.collect(text)
	cleaned := blockPattern.ReplaceAllString(text, "")
	return s.substitute(cleaned)
}

// collect reads key{value} pairs out of the first definition block.
// Later duplicate keys overwrite earlier ones.
func (s *Store) collect(text string) {
	block := blockPattern.FindStringSubmatch(text)
	if block == nil {
		return
	}
	for _, pair := range pairPattern.FindAllStringSubmatch(block[1], -1) {
		s.values[pair[1]] = pair[2]
	}
}

// substitute splices stored values into '{...$name...}' references.
// Expansion is single-pass: a value that itself contains a $name
// reference is not re-expanded.
func (s *Store) substitute(text string) (string, error) {
	var undefined *UndefinedVariableError
	out := refPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := refPattern.FindStringSubmatch(match)
		before, name, after := groups[1], groups[2], groups[3]
		value, ok := s.values[name]
		if !ok {
			if undefined == nil {
				undefined = &UndefinedVariableError{Name: name}
			}
			return match
		}
		// The closing "}" is always captured together with the after
		// text, so it is trimmed before re-wrapping.
		after = after[:len(after)-1]
		return "'{" + before + value + after + "}'"
	})
	if undefined != nil {
		return "", undefined
	}
	return out, nil
}
