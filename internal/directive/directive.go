// Package directive applies post-render HTML attribute directives.
//
// A directive is a '{target type data}' marker that survived variable
// substitution and markdown rendering inside a text node. It instructs
// the pipeline to set an attribute on a nearby element; the marker
// itself must never reach published output.
package directive

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var markerPattern = regexp.MustCompile(`'\{(\S+)\s+(\S+)\s+(.*?)\}'`)

// serializedMarkerPattern matches markers in serialized HTML, where the
// renderer escapes the surrounding apostrophes as &#39;.
var serializedMarkerPattern = regexp.MustCompile(`(?:'|&#39;)\{(\S+)\s+(\S+)\s+(.*?)\}(?:'|&#39;)`)

// UnknownAttributeError reports a directive whose attribute token falls
// outside the accepted vocabulary. It aborts the document.
type UnknownAttributeError struct {
	Token string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown directive attribute %q", e.Token)
}

// UnknownTargetError reports a directive whose element target token
// falls outside the accepted vocabulary. It aborts the document.
type UnknownTargetError struct {
	Token string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown directive target %q", e.Token)
}

// attribute is the closed set of HTML attributes a directive may set.
// The vocabulary is intentionally not extensible through data.
type attribute int

const attrStyle attribute = iota

func parseAttribute(token string) (attribute, error) {
	switch token {
	case "s", "st", "sty", "styl", "style":
		return attrStyle, nil
	default:
		return 0, &UnknownAttributeError{Token: token}
	}
}

func (a attribute) name() string {
	// style is the only attribute in the vocabulary today.
	return "style"
}

// target is the closed set of elements a directive may address,
// resolved relative to the text node carrying the marker.
type target int

const targetParent target = iota

func parseTarget(token string) (target, error) {
	switch token {
	case "p", "pa", "par", "pare", "paren", "parent":
		return targetParent, nil
	default:
		return 0, &UnknownTargetError{Token: token}
	}
}

// mutation is a recorded attribute write. Mutations are collected
// during the walk and applied afterwards, so the traversal never
// mutates live nodes it may still visit.
type mutation struct {
	node  *html.Node
	attr  string
	value string
}

// Apply parses rendered HTML, honours the first directive marker found
// in each text node and returns the serialized result with every
// remaining marker substring removed. A marker whose target resolution
// is a no-op still disappears from the output.
func Apply(htmlText string) (string, error) {
	nodes, err := parseFragment(htmlText)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var mutations []mutation
	for _, root := range nodes {
		if err := collect(root, &mutations); err != nil {
			return "", err
		}
	}
	for _, m := range mutations {
		setAttribute(m.node, m.attr, m.value)
	}

	var buf strings.Builder
	for _, root := range nodes {
		if err := html.Render(&buf, root); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}

	// Markers are erased from the serialized text, not the tree.
	return serializedMarkerPattern.ReplaceAllString(buf.String(), ""), nil
}

// parseFragment parses body content without wrapping it in a full
// html/head/body document.
func parseFragment(htmlText string) ([]*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	return html.ParseFragment(strings.NewReader(htmlText), body)
}

func collect(node *html.Node, mutations *[]mutation) error {
	if node.Type == html.TextNode {
		if err := collectFromText(node, mutations); err != nil {
			return err
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := collect(child, mutations); err != nil {
			return err
		}
	}
	return nil
}

// collectFromText honours at most one directive per text node: only the
// first marker match counts.
func collectFromText(node *html.Node, mutations *[]mutation) error {
	groups := markerPattern.FindStringSubmatch(node.Data)
	if groups == nil {
		return nil
	}
	targetToken, attrToken, data := groups[1], groups[2], groups[3]

	attr, err := parseAttribute(attrToken)
	if err != nil {
		return err
	}
	tgt, err := parseTarget(targetToken)
	if err != nil {
		return err
	}

	switch tgt {
	case targetParent:
		if parent := node.Parent; parent != nil && parent.Type == html.ElementNode {
			*mutations = append(*mutations, mutation{node: parent, attr: attr.name(), value: data})
		}
	}
	return nil
}

// setAttribute writes key=value on node; an existing attribute with the
// same key is overwritten, so the last directive wins.
func setAttribute(node *html.Node, key, value string) {
	for i := range node.Attr {
		if node.Attr[i].Key == key {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}
