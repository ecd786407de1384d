// Package frontmatter extracts the optional YAML header of an artifact
// document.
//
// A header is delimited by "---" lines at the very start of the document:
//
//	---
//	name: staff-engineer
//	description: Reviews designs and mentors the team
//	---
//
//	# Staff Engineer
//	...
//
// Documents without a header parse to an empty Header and the full body.
package frontmatter

import (
	"bytes"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/agentsync/pkg/errors"
)

// delimiter opens and closes the header.
const delimiter = "---"

// maxHeaderSize bounds the YAML handed to the parser.
const maxHeaderSize = 64 * 1024

// Header holds the fields agentsync reads from an artifact header. Other
// fields are ignored.
type Header struct {
	Name        string   `yaml:"name,omitempty" json:"name,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Empty reports whether no known field is set.
func (h Header) Empty() bool {
	return h.Name == "" && h.Description == "" && len(h.Tags) == 0
}

// Parse splits content into its header and body.
func Parse(content []byte) (Header, []byte, error) {
	var h Header

	trimmed := bytes.TrimLeft(content, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte(delimiter)) {
		return h, content, nil
	}

	remaining := trimmed[len(delimiter):]
	idx := bytes.Index(remaining, []byte("\n"+delimiter))
	if idx == -1 {
		return h, nil, errors.NewParseError("yaml", "", "missing closing frontmatter delimiter (---)", nil)
	}

	header := remaining[:idx]
	if len(header) > maxHeaderSize {
		return h, nil, errors.NewParseError("yaml", "", "frontmatter exceeds 64KiB", nil)
	}
	body := bytes.TrimLeft(remaining[idx+len("\n"+delimiter):], "\r\n")

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &h); err != nil {
			return Header{}, nil, errors.WrapParse("yaml", "", err)
		}
	}
	return h, body, nil
}

// Describe returns a short description for a document: the header
// description when present, otherwise its first heading or non-empty line.
// Malformed headers fall back to the body scan over the raw content.
func Describe(content string) string {
	h, body, err := Parse([]byte(content))
	if err != nil {
		body = []byte(content)
	}
	if h.Description != "" {
		return strings.TrimSpace(h.Description)
	}

	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == delimiter {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "#"))
	}
	return ""
}
