package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds one compiled schema per Schema.Name.
var compiled sync.Map

// validateResponse checks raw against schema. Failures are
// *ErrInvalidResponse so the retry layer grants one more attempt.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(err error) error {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return invalid(errNoContent)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("not JSON: %w", err))
	}
	sch, err := compile(schema)
	if err != nil {
		return invalid(err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalid(fmt.Errorf("%s: %w", schema.Name, err))
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}
	if schema.Name == "" {
		return nil, errors.New("schema has no name")
	}

	// Definitions are Go literals; a JSON round trip normalises ints and
	// []string into the shapes the compiler expects.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}

	url := "lumi://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	compiled.Store(schema.Name, s)
	return s, nil
}
