package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// jsonFence matches a ```json fenced block anywhere in the text. The interior
// is captured lazily so the first closing fence ends the block.
var jsonFence = regexp.MustCompile("(?is)```json(.*?)```")

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractPayload pulls a JSON document out of free-form generated text.
//
// If the text contains a ```json fenced block its interior is used, otherwise
// the whole trimmed text is. The result must decode as JSON; anything else is
// reported as a *MalformedPayloadError carrying the raw text. No semantic
// checks are made.
func ExtractPayload(raw string) (json.RawMessage, error) {
	candidate := locateFence(raw)
	if candidate == "" {
		return nil, &MalformedPayloadError{Raw: raw, Err: errors.New("empty response")}
	}
	if !json.Valid([]byte(candidate)) {
		var probe any
		err := json.Unmarshal([]byte(candidate), &probe)
		if err == nil {
			err = errors.New("not a JSON document")
		}
		return nil, &MalformedPayloadError{Raw: raw, Err: err}
	}
	return json.RawMessage(candidate), nil
}

// ExtractJSON extracts a JSON value of type T from raw LLM text output.
// If validator is non-nil, the decoded value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	payload, err := ExtractPayload(raw)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		return zero, &MalformedPayloadError{Raw: raw, Err: err}
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, &MalformedPayloadError{Raw: raw, Err: fmt.Errorf("validation failed: %w", err)}
		}
	}

	return result, nil
}

// locateFence returns the trimmed interior of the first ```json block, or the
// trimmed text when no such block exists.
func locateFence(raw string) string {
	if m := jsonFence.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}
