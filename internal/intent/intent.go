package intent

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed responses.yaml
var rawResponses []byte

// MatchMode controls how keywords are found in a query.
type MatchMode string

const (
	// MatchWord requires the keyword to stand alone, so "this" does not
	// match "hi".
	MatchWord MatchMode = "word"
	// MatchSubstring matches the keyword anywhere in the query.
	MatchSubstring MatchMode = "substring"
)

// ParseMatchMode converts a config value to a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case MatchWord, MatchSubstring:
		return MatchMode(s), nil
	case "":
		return MatchWord, nil
	}
	return "", fmt.Errorf("unknown match mode %q: supported modes are %q and %q", s, MatchWord, MatchSubstring)
}

// Entry is one keyword and its canned reply.
type Entry struct {
	Keyword string `yaml:"keyword"`
	Reply   string `yaml:"reply"`
}

// Table is the ordered canned-response table.
type Table struct {
	Fallback string  `yaml:"fallback"`
	Entries  []Entry `yaml:"responses"`
}

// ParseTable decodes a YAML response table.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing response table: %w", err)
	}
	for i, e := range t.Entries {
		if strings.TrimSpace(e.Keyword) == "" {
			return nil, fmt.Errorf("response %d: keyword is required", i)
		}
		t.Entries[i].Keyword = strings.ToLower(e.Keyword)
	}
	return &t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the embedded response table.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t, err := ParseTable(rawResponses)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// Classifier routes queries between canned replies and the agent.
type Classifier struct {
	table    *Table
	mode     MatchMode
	patterns []*regexp.Regexp
}

// New returns a Classifier over table. A nil table uses DefaultTable.
func New(table *Table, mode MatchMode) (*Classifier, error) {
	if table == nil {
		table = DefaultTable()
	}
	if mode == "" {
		mode = MatchWord
	}
	if mode != MatchWord && mode != MatchSubstring {
		return nil, fmt.Errorf("unknown match mode %q", mode)
	}

	c := &Classifier{table: table, mode: mode}
	if mode == MatchWord {
		for _, e := range table.Entries {
			re, err := regexp.Compile(`(?:^|\W)` + regexp.QuoteMeta(e.Keyword) + `(?:\W|$)`)
			if err != nil {
				return nil, fmt.Errorf("compiling keyword %q: %w", e.Keyword, err)
			}
			c.patterns = append(c.patterns, re)
		}
	}
	return c, nil
}

func (c *Classifier) match(query string) (int, bool) {
	q := strings.ToLower(query)
	for i, e := range c.table.Entries {
		var hit bool
		if c.mode == MatchWord {
			hit = c.patterns[i].MatchString(q)
		} else {
			hit = strings.Contains(q, e.Keyword)
		}
		if hit {
			return i, true
		}
	}
	return -1, false
}

// IsGeneral reports whether query contains any table keyword.
func (c *Classifier) IsGeneral(query string) bool {
	_, ok := c.match(query)
	return ok
}

// Respond returns the reply of the first entry, in table order, whose
// keyword appears in query.
func (c *Classifier) Respond(query string) (string, bool) {
	i, ok := c.match(query)
	if !ok {
		return "", false
	}
	return c.table.Entries[i].Reply, true
}

// Reply is Respond with the table's fallback when nothing matches.
func (c *Classifier) Reply(query string) string {
	if r, ok := c.Respond(query); ok {
		return r
	}
	return c.table.Fallback
}
