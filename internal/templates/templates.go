// Package templates loads question templates from a JSON file or the
// embedded default set and validates them against a JSON schema.
package templates

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/chartiz/internal/question"
)

// EnvVar names the environment variable holding a template file path.
const EnvVar = "CHARTIZ_TEMPLATES"

// DefaultSource is the source name reported for the embedded set.
const DefaultSource = "(embedded)"

//go:embed default.json
var defaultJSON []byte

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://templates.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError reports a template source that is not valid JSON or does
// not match the template schema.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid templates in %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ResolvePath returns the template file path in priority order:
// 1. the --templates flag value
// 2. the CHARTIZ_TEMPLATES environment variable
// 3. "" (the embedded default set)
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvVar)
}

// Load reads templates from path, or the embedded set when path is empty.
func Load(path string) ([]question.Template, error) {
	if path == "" {
		return Parse(DefaultSource, defaultJSON)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the template schema and decodes it.
// source is used in error messages only.
func Parse(source string, data []byte) ([]question.Template, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compile template schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var ts []question.Template
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("decode templates: %w", err)}
	}
	return ts, nil
}

// Unsupported returns the distinct template types that have no answer
// handler, in first-seen order.
func Unsupported(ts []question.Template) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range ts {
		if t.Kind() != question.KindUnsupported || seen[t.Type] {
			continue
		}
		seen[t.Type] = true
		out = append(out, t.Type)
	}
	return out
}

func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Schema returns the JSON schema template files are validated against.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}
