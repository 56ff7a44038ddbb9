package parser

import (
	"fmt"
	"strings"
)

// TagParser handles parsing of quill struct tags.
//
// Format: "table:users;alias:owner,creator" at table level, "column" on a
// field. Pairs are semicolon-separated; a pair is either key:value or a bare
// flag.
type TagParser struct{}

func NewTagParser() *TagParser {
	return &TagParser{}
}

// knownKeys is the attribute vocabulary. An unknown key is a malformed
// attribute: the caller recovers by defaulting the field's metadata, it
// never aborts the entity.
var knownKeys = map[string]bool{
	"table":  true,
	"alias":  true,
	"column": true,
}

// Parse splits a quill tag into its attribute map. Duplicate keys merge
// their values comma-separated, so `alias:owner;alias:creator` and
// `alias:owner,creator` are equivalent.
func (p *TagParser) Parse(tagValue string) (map[string]string, error) {
	attributes := make(map[string]string)

	if tagValue == "" {
		return attributes, nil
	}

	for _, part := range strings.Split(tagValue, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key := part
		value := ""
		if idx := strings.Index(part, ":"); idx != -1 {
			key = strings.TrimSpace(part[:idx])
			value = strings.TrimSpace(part[idx+1:])
		}

		if !knownKeys[key] {
			return nil, fmt.Errorf("unknown quill attribute %q", key)
		}
		if key == "column" && value != "" {
			return nil, fmt.Errorf("flag attribute %q should not have a value", key)
		}
		if key != "column" && value == "" {
			return nil, fmt.Errorf("attribute %q requires a value", key)
		}

		if existing, ok := attributes[key]; ok {
			attributes[key] = existing + "," + value
		} else {
			attributes[key] = value
		}
	}

	return attributes, nil
}

// HasFlag reports whether a bare flag attribute is present.
func (p *TagParser) HasFlag(attributes map[string]string, flag string) bool {
	_, ok := attributes[flag]
	return ok
}

// Aliases normalizes the declared alias list: lowercased, whitespace
// stripped, comma-separated, empties dropped.
func (p *TagParser) Aliases(attributes map[string]string) []string {
	raw, ok := attributes["alias"]
	if !ok {
		return nil
	}

	var aliases []string
	cleaned := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	for _, a := range strings.Split(cleaned, ",") {
		if a != "" {
			aliases = append(aliases, a)
		}
	}
	return aliases
}
