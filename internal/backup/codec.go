// Package backup converts progress state to and from portable backup codes.
//
// A backup code is the base64 encoding of the state's JSON document. Codes
// produced by earlier versions of the tracker decode unchanged.
package backup

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/transform90/internal/progress"
)

// ErrInvalidCode is returned for any code or payload that cannot be turned
// into a valid state. Callers must not apply anything on this error.
var ErrInvalidCode = errors.New("invalid backup code")

//go:embed state.schema.json
var stateSchemaJSON []byte

const stateSchemaURL = "schema://transform90/state.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// stateSchema compiles the embedded schema once.
func stateSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(stateSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(stateSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(stateSchemaURL)
	})
	return compiledSchema, schemaErr
}

// Marshal returns the JSON document for s.
func Marshal(s progress.State) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return b, nil
}

// Unmarshal validates a JSON state document and returns the normalized
// state. The result always satisfies progress.CheckInvariants.
func Unmarshal(raw []byte) (progress.State, error) {
	schema, err := stateSchema()
	if err != nil {
		return progress.State{}, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return progress.State{}, fmt.Errorf("%w: not JSON: %v", ErrInvalidCode, err)
	}
	if err := schema.Validate(doc); err != nil {
		return progress.State{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	var s progress.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return progress.State{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	s = progress.Normalize(s)
	if err := progress.CheckInvariants(s); err != nil {
		return progress.State{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return s, nil
}

// Encode returns the backup code for s.
func Encode(s progress.State) (string, error) {
	b, err := Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode parses a backup code. Surrounding whitespace and missing padding
// are tolerated.
func Decode(code string) (progress.State, error) {
	code = strings.Join(strings.Fields(code), "")
	if code == "" {
		return progress.State{}, fmt.Errorf("%w: empty", ErrInvalidCode)
	}
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(code, "="))
		if err != nil {
			return progress.State{}, fmt.Errorf("%w: not base64: %v", ErrInvalidCode, err)
		}
	}
	return Unmarshal(raw)
}
