package tools

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	compiled    map[Kind]*jsonschema.Schema
	definitions []Definition
	loadOnce    sync.Once
	loadErr     error
	printer     = message.NewPrinter(language.English)
)

// Definition describes a tool as advertised to a language model.
type Definition struct {
	Kind        Kind
	Description string
	// Parameters is the JSON Schema of the tool's arguments.
	Parameters json.RawMessage
}

// Issue is a single argument validation failure.
type Issue struct {
	Path    string // instance location, e.g. "/filename"
	Message string
	Keyword string
}

// ArgumentError reports arguments that do not satisfy a tool's schema.
type ArgumentError struct {
	Tool   Kind
	Issues []Issue
}

func (e *ArgumentError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(parts, "; "))
}

func load() error {
	loadOnce.Do(func() {
		compiled = make(map[Kind]*jsonschema.Schema)
		c := jsonschema.NewCompiler()

		for _, kind := range AllKinds() {
			name := string(kind) + ".json"
			raw, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				loadErr = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}

			var meta struct {
				Description string `json:"description"`
			}
			if err := json.Unmarshal(raw, &meta); err != nil {
				loadErr = fmt.Errorf("parsing schema %s: %w", name, err)
				return
			}

			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				loadErr = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				loadErr = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
			sch, err := c.Compile(name)
			if err != nil {
				loadErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}

			compiled[kind] = sch
			definitions = append(definitions, Definition{
				Kind:        kind,
				Description: meta.Description,
				Parameters:  json.RawMessage(raw),
			})
		}
	})
	return loadErr
}

// Definitions returns the advertised definition of every tool.
func Definitions() ([]Definition, error) {
	if err := load(); err != nil {
		return nil, err
	}
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out, nil
}

// Validate checks raw JSON arguments against the schema for kind.
// Empty arguments are treated as an empty object. A schema mismatch is
// returned as *ArgumentError.
func Validate(kind Kind, args string) error {
	if err := load(); err != nil {
		return err
	}
	sch, ok := compiled[kind]
	if !ok {
		return fmt.Errorf("unknown tool %q", kind)
	}

	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(args))
	if err != nil {
		return &ArgumentError{Tool: kind, Issues: []Issue{{Message: "arguments are not valid JSON: " + err.Error()}}}
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating %s arguments: %w", kind, err)
	}

	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = []Issue{{Message: ve.Error()}}
	}
	return &ArgumentError{Tool: kind, Issues: issues}
}

// collectIssues walks the error tree and keeps leaf errors.
func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}
