package form

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseMarkup extracts form schemas from HTML. Only forms carrying at least
// one of data-validate, data-autosave or data-ajax are returned. Fields are
// the form's input, select and textarea descendants that have a name.
//
// Native constraint attributes are translated into rules so that markup
// such as <input type="email" required> validates without data-validate.
func ParseMarkup(r io.Reader) ([]Schema, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMarkup, err)
	}

	var schemas []Schema
	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.DataAtom == atom.Form {
			s, ok, err := schemaFromNode(n)
			if err != nil {
				return err
			}
			if ok {
				schemas = append(schemas, s)
			}
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(doc); err != nil {
		return nil, err
	}
	return schemas, nil
}

func schemaFromNode(n *html.Node) (Schema, bool, error) {
	s := Schema{
		ID:       attr(n, "id"),
		Action:   attr(n, "action"),
		Method:   strings.ToUpper(attr(n, "method")),
		Validate: hasAttr(n, "data-validate"),
		AutoSave: hasAttr(n, "data-autosave"),
		Ajax:     hasAttr(n, "data-ajax"),
	}
	if !s.Validate && !s.AutoSave && !s.Ajax {
		return Schema{}, false, nil
	}
	if s.Method == "" {
		s.Method = "GET"
	}

	var walk func(c *html.Node) error
	walk = func(c *html.Node) error {
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Input, atom.Select, atom.Textarea:
				if fs, ok, err := fieldFromNode(c, s.Validate); err != nil {
					return err
				} else if ok {
					s.Fields = append(s.Fields, fs)
				}
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			if err := walk(cc); err != nil {
				return err
			}
		}
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := walk(c); err != nil {
			return Schema{}, false, err
		}
	}
	return s, true, nil
}

func fieldFromNode(n *html.Node, validate bool) (FieldSpec, bool, error) {
	name := attr(n, "name")
	if name == "" {
		return FieldSpec{}, false, nil
	}
	typ := strings.ToLower(attr(n, "type"))
	switch typ {
	case "submit", "button", "reset", "hidden", "image":
		return FieldSpec{}, false, nil
	}

	fs := FieldSpec{
		Name: name,
		ID:   attr(n, "id"),
	}
	if fs.ID == "" {
		fs.ID = name
	}

	switch n.DataAtom {
	case atom.Textarea:
		fs.Value = textContent(n)
	case atom.Select:
		fs.Value = selectedOption(n)
	default:
		fs.Value = attr(n, "value")
	}

	if raw := attr(n, "data-suggestions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fs.Suggestions); err != nil {
			return FieldSpec{}, false, fmt.Errorf("%w: data-suggestions on %q: %w", ErrInvalidMarkup, name, err)
		}
	}

	if validate {
		fs.Rules = rulesFromNode(n, typ)
	}
	return fs, true, nil
}

// rulesFromNode joins the declared rule list with rules implied by native
// constraint attributes that the declared list does not already cover.
func rulesFromNode(n *html.Node, typ string) string {
	declared := strings.TrimSpace(attr(n, "data-validate"))
	rules := []string{}
	if declared != "" {
		rules = append(rules, declared)
	}
	has := func(kind string) bool {
		for _, tok := range strings.Split(declared, "|") {
			name, _, _ := strings.Cut(strings.TrimSpace(tok), ":")
			if name == kind {
				return true
			}
		}
		return false
	}
	add := func(kind, param string) {
		if has(kind) {
			return
		}
		if param != "" {
			kind += ":" + param
		}
		rules = append(rules, kind)
	}

	if hasAttr(n, "required") {
		add("required", "")
	}
	if typ == "email" {
		add("email", "")
	}
	if typ == "number" {
		add("numeric", "")
		if v := attr(n, "min"); v != "" {
			add("min_value", v)
		}
		if v := attr(n, "max"); v != "" {
			add("max_value", v)
		}
	}
	if v := attr(n, "minlength"); v != "" {
		add("min", v)
	}
	if v := attr(n, "maxlength"); v != "" {
		add("max", v)
	}
	if v := attr(n, "data-pattern"); v != "" {
		add("pattern", v)
	}
	return strings.Join(rules, "|")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func selectedOption(n *html.Node) string {
	var value string
	var walk func(c *html.Node) bool
	walk = func(c *html.Node) bool {
		if c.Type == html.ElementNode && c.DataAtom == atom.Option && hasAttr(c, "selected") {
			if hasAttr(c, "value") {
				value = attr(c, "value")
			} else {
				value = strings.TrimSpace(textContent(c))
			}
			return true
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			if walk(cc) {
				return true
			}
		}
		return false
	}
	walk(n)
	return value
}
