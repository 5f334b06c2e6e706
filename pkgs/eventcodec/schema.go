package eventcodec

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/aledsdavies/argtags/pkgs/errors"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://events.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Schema returns the JSON Schema describing the JSON output.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks a JSON document against the event stream schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrSchema, "compiling event schema", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrSchema, "decoding JSON document", err)
	}
	if err := schema.Validate(doc); err != nil {
		return errors.Wrap(errors.ErrSchema, "event stream does not match schema", err)
	}
	return nil
}
