package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPathNotSet is returned by Save when no prior Load resolved a path.
var ErrPathNotSet = errors.New("config path not set")

// Parse error kinds produced by DiagnoseJSON.
const (
	ParseKindIncomplete    = "incomplete"
	ParseKindSyntax        = "syntax"
	ParseKindTrailingComma = "trailing_comma"
	ParseKindDuplicateKey  = "duplicate_key"
	ParseKindUnknown       = "unknown"
)

// ParseError is a classified JSON parse failure with enough context for a
// front end to show a useful diagnosis instead of a raw decoder message.
type ParseError struct {
	Kind       string `json:"error_type"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	HasBackup  bool   `json:"has_backup"`
	Path       string `json:"-"`
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// ValidationError reports structurally valid JSON that violates a domain
// invariant (empty name, empty command, unquoted multi-word command).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DiagnoseJSON classifies a JSON decode failure against the raw content.
// HasBackup is left false; the caller fills it in once it knows whether a
// backup file exists.
func DiagnoseJSON(content []byte, err error) *ParseError {
	pe := &ParseError{Kind: ParseKindUnknown}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.ErrUnexpectedEOF) || strings.Contains(err.Error(), "unexpected end of JSON input"):
		pe.Kind = ParseKindIncomplete
		pe.Message = "The JSON file appears to be incomplete or truncated"
		pe.Suggestion = "Check if the file ends properly with closing braces }"
		pe.Line, pe.Column = lineColumn(content, int64(len(content)))
	case errors.As(err, &syntaxErr):
		pe.Line, pe.Column = lineColumn(content, syntaxErr.Offset)
		if isTrailingComma(content, syntaxErr.Offset) {
			pe.Kind = ParseKindTrailingComma
			pe.Message = "Found an extra comma at the end of a list or object"
			pe.Suggestion = "Remove the trailing comma before the closing bracket"
		} else {
			pe.Kind = ParseKindSyntax
			pe.Message = "Invalid JSON syntax found"
			pe.Suggestion = "Check for missing commas, quotes, or brackets around the error location"
		}
	case errors.As(err, &typeErr):
		pe.Kind = ParseKindSyntax
		pe.Message = fmt.Sprintf("Unexpected %s value for %q", typeErr.Value, typeErr.Field)
		pe.Suggestion = "Check the value types in the configuration"
		pe.Line, pe.Column = lineColumn(content, typeErr.Offset)
	default:
		pe.Message = "JSON parsing error occurred"
		pe.Suggestion = "Please check your JSON syntax or restore from backup"
	}

	// The stdlib decoder silently keeps the last duplicate key, so a separate
	// token scan decides this subkind regardless of what the decode reported.
	if key, serverName, found := findDuplicateKey(content); found {
		dup := duplicateKeyError(key, serverName)
		pe.Kind = dup.Kind
		pe.Message = dup.Message
		pe.Suggestion = dup.Suggestion
	}

	return pe
}

// duplicateKeyError builds the ParseError for a repeated key. A repeated
// server name gets the domain message; any other repeated key gets a generic
// one.
func duplicateKeyError(key string, serverName bool) *ParseError {
	if serverName {
		return &ParseError{
			Kind:       ParseKindDuplicateKey,
			Message:    fmt.Sprintf("Found duplicate server name %q in the configuration", key),
			Suggestion: "Each server must have a unique name",
		}
	}
	return &ParseError{
		Kind:       ParseKindDuplicateKey,
		Message:    fmt.Sprintf("Found duplicate key %q in the configuration", key),
		Suggestion: "Remove the repeated key",
	}
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(content []byte, offset int64) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(content)) {
		offset = int64(len(content))
	}
	line, col := 1, 1
	for _, b := range content[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// isTrailingComma reports whether the syntax error offset sits just after a
// comma followed only by whitespace and a closing bracket.
func isTrailingComma(content []byte, offset int64) bool {
	if offset <= 0 || offset > int64(len(content)) {
		return false
	}
	i := int(offset) - 1
	if i >= len(content) {
		i = len(content) - 1
	}
	// Walk back over the closing bracket and whitespace to find a comma.
	for i >= 0 {
		switch content[i] {
		case '}', ']', ' ', '\t', '\n', '\r':
			i--
		case ',':
			return true
		default:
			return false
		}
	}
	return false
}

// findDuplicateKey token-scans the document for a repeated object key. It
// returns the first duplicate found, at any nesting depth. serverName reports
// whether the repeated key is an entry of the top-level "mcpServers" object,
// i.e. a server name rather than some arbitrary key such as an env variable.
func findDuplicateKey(content []byte) (key string, serverName bool, found bool) {
	dec := json.NewDecoder(strings.NewReader(string(content)))

	type frame struct {
		isObject  bool
		keys      map[string]bool
		expectKey bool
		lastKey   string
		parentKey string
	}
	var stack []*frame

	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false, false
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				f := &frame{isObject: true, keys: map[string]bool{}, expectKey: true}
				if len(stack) > 0 && stack[len(stack)-1].isObject {
					f.parentKey = stack[len(stack)-1].lastKey
				}
				stack = append(stack, f)
			case '[':
				stack = append(stack, &frame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				if len(stack) > 0 && stack[len(stack)-1].isObject {
					stack[len(stack)-1].expectKey = true
				}
			}
		case string:
			if len(stack) > 0 && stack[len(stack)-1].isObject {
				top := stack[len(stack)-1]
				if top.expectKey {
					if top.keys[v] {
						return v, len(stack) == 2 && top.parentKey == "mcpServers", true
					}
					top.keys[v] = true
					top.lastKey = v
					top.expectKey = false
				} else {
					top.expectKey = true
				}
			}
		default:
			if len(stack) > 0 && stack[len(stack)-1].isObject {
				stack[len(stack)-1].expectKey = true
			}
		}
	}
}
