package source

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/fragmede/threadtree/internal/thread"
)

// Format is the encoding of a comment file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath guesses the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// rawComment mirrors the file layout. Pointers distinguish a missing key
// from an empty value.
type rawComment struct {
	ID       any          `json:"id" yaml:"id"`
	Author   *string      `json:"author" yaml:"author"`
	Time     *string      `json:"time" yaml:"time"`
	Text     *string      `json:"text" yaml:"text"`
	Children []rawComment `json:"children" yaml:"children"`
}

// Decode reads a comment forest. The document is either a list of root
// comments or a single root object. Every comment needs author, time and
// text keys; id and children are optional.
func Decode(r io.Reader, format Format) ([]thread.Comment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading comments: %w", err)
	}

	var raws []rawComment
	switch format {
	case FormatJSON:
		raws, err = decodeJSON(data)
	case FormatYAML:
		raws, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unknown comment format %q", format)
	}
	if err != nil {
		return nil, err
	}

	forest := make([]thread.Comment, 0, len(raws))
	for i, raw := range raws {
		c, err := raw.comment(fmt.Sprintf("comment[%d]", i))
		if err != nil {
			return nil, err
		}
		forest = append(forest, c)
	}
	return forest, nil
}

func decodeJSON(data []byte) ([]rawComment, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if trimmed[0] == '[' {
		var raws []rawComment
		if err := dec.Decode(&raws); err != nil {
			return nil, fmt.Errorf("decoding JSON comments: %w", err)
		}
		return raws, nil
	}
	var raw rawComment
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding JSON comment: %w", err)
	}
	return []rawComment{raw}, nil
}

func decodeYAML(data []byte) ([]rawComment, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding YAML comments: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var raws []rawComment
		if err := root.Decode(&raws); err != nil {
			return nil, fmt.Errorf("decoding YAML comments: %w", err)
		}
		return raws, nil
	}
	var raw rawComment
	if err := root.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding YAML comment: %w", err)
	}
	return []rawComment{raw}, nil
}

func (r rawComment) comment(path string) (thread.Comment, error) {
	for _, f := range []struct {
		name string
		val  *string
	}{{"author", r.Author}, {"time", r.Time}, {"text", r.Text}} {
		if f.val == nil {
			return thread.Comment{}, fmt.Errorf("%s: missing %q", path, f.name)
		}
	}

	c := thread.Comment{
		Author: *r.Author,
		Time:   *r.Time,
		Text:   *r.Text,
	}
	if r.ID != nil {
		c.ID = fmt.Sprint(r.ID)
	}
	if len(r.Children) > 0 {
		c.Children = make([]thread.Comment, 0, len(r.Children))
	}
	for i, raw := range r.Children {
		child, err := raw.comment(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return thread.Comment{}, err
		}
		c.Children = append(c.Children, child)
	}
	return c, nil
}
