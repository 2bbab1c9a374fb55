package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rogersnm/reel/internal/draft"
	"github.com/rogersnm/reel/internal/model"
	"gopkg.in/yaml.v3"
)

// Parse reads YAML frontmatter and body from r into T.
func Parse[T any](r io.Reader) (T, string, error) {
	var meta T
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return meta, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, strings.TrimSpace(string(body)), nil
}

// Marshal serializes meta as YAML frontmatter followed by body.
func Marshal[T any](meta T, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// ParseDraft reads a draft sheet: frontmatter carries title, tags, thumbnail
// and scheduled_date, the body is the description.
func ParseDraft(r io.Reader) (draft.Fields, error) {
	f, body, err := Parse[draft.Fields](r)
	if err != nil {
		return draft.Fields{}, err
	}
	f.Description = body
	return f, nil
}

func MarshalDraft(f draft.Fields) ([]byte, error) {
	return Marshal(f, f.Description)
}

// MarshalProject renders a project sheet with the description as body.
func MarshalProject(p *model.Project) ([]byte, error) {
	return Marshal(p, p.Description)
}
