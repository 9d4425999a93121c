package typedesc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SchemaError reports the schema violations found in a description.
type SchemaError struct {
	Issues []ValidationIssue
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return "schema validation failed: " + strings.Join(msgs, "; ")
}

// Parse validates data against the description schema and decodes it.
// Unknown fields are rejected at every nesting level.
func Parse(data []byte) (*HashedTypeDescription, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &SchemaError{Issues: result.Issues}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var desc HashedTypeDescription
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decoding type description: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding type description: unexpected data after top-level object")
	}
	return &desc, nil
}
