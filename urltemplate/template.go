// Package urltemplate resolves tile fetch URLs from "{name}" placeholder templates.
//
// A template is either a single URL or an ordered list of interchangeable
// URLs (shards); a shard is picked per tile as a pure function of its coordinates.
package urltemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTemplate = errors.New("tilecover: invalid url template")

// Template is a single URL template or a list of them.
// The zero Template is empty.
type Template struct {
	single string
	list   []string
	isList bool
}

// Single returns a single-URL template.
func Single(url string) Template {
	return Template{single: url}
}

// List returns a template of interchangeable shard URLs.
func List(urls ...string) Template {
	return Template{list: slices.Clone(urls), isList: true}
}

// ParseTemplate validates a configuration value: a string, a []string, a
// []any of strings, or nil for an absent template.
func ParseTemplate(v any) (Template, error) {
	switch v := v.(type) {
	case nil:
		return Template{}, nil
	case string:
		return Single(v), nil
	case []string:
		return List(v...), nil
	case []any:
		urls := make([]string, 0, len(v))
		for i, item := range v {
			url, ok := item.(string)
			if !ok {
				return Template{}, fmt.Errorf("%w: element %d is %T, want string", ErrInvalidTemplate, i, item)
			}
			urls = append(urls, url)
		}
		return List(urls...), nil
	}
	return Template{}, fmt.Errorf("%w: %T, want string or list of strings", ErrInvalidTemplate, v)
}

// Empty reports whether no source is configured: "" or an empty list.
func (t Template) Empty() bool {
	if t.isList {
		return len(t.list) == 0
	}
	return t.single == ""
}

// IsList reports whether t was given as a list.
func (t Template) IsList() bool {
	return t.isList
}

// URLs returns the template strings.
func (t Template) URLs() []string {
	if t.isList {
		return slices.Clone(t.list)
	}
	if t.single == "" {
		return nil
	}
	return []string{t.single}
}

// Equal reports whether two templates are the same string, or lists of the
// same length with pairwise-equal elements. A string never equals a list.
func (t Template) Equal(other Template) bool {
	if t.isList != other.isList {
		return false
	}
	if !t.isList {
		return t.single == other.single
	}
	return slices.Equal(t.list, other.list)
}

func (t *Template) UnmarshalYAML(node *yaml.Node) error {
	var v any
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*t = Template{}
			return nil
		}
		if node.ShortTag() != "!!str" {
			return fmt.Errorf("%w: line %d: %s, want string or list of strings", ErrInvalidTemplate, node.Line, node.ShortTag())
		}
		v = node.Value
	case yaml.SequenceNode:
		urls := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				return fmt.Errorf("%w: line %d: list element is not a string", ErrInvalidTemplate, item.Line)
			}
			urls = append(urls, item.Value)
		}
		v = urls
	default:
		return fmt.Errorf("%w: line %d: want string or list of strings", ErrInvalidTemplate, node.Line)
	}

	parsed, err := ParseTemplate(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Template) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	parsed, err := ParseTemplate(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Template) MarshalJSON() ([]byte, error) {
	if t.isList {
		return json.Marshal(t.list)
	}
	return json.Marshal(t.single)
}
