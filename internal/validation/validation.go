// Package validation checks request bodies against embedded JSON schemas
// before they are decoded into domain types.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nabeel-hussain/ToDoApp/internal/errs"
)

var (
	compileOnce sync.Once
	compileErr  error
	createSch   *jsonschema.Schema
	updateSch   *jsonschema.Schema
)

func compile() error {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat = true
		if err := c.AddResource("create.json", strings.NewReader(createSchema)); err != nil {
			compileErr = err
			return
		}
		if err := c.AddResource("update.json", strings.NewReader(updateSchema)); err != nil {
			compileErr = err
			return
		}
		if createSch, compileErr = c.Compile("create.json"); compileErr != nil {
			return
		}
		updateSch, compileErr = c.Compile("update.json")
	})
	return compileErr
}

func ValidateCreate(raw []byte) error {
	if err := compile(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return validate(createSch, raw)
}

func ValidateUpdate(raw []byte) error {
	if err := compile(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return validate(updateSch, raw)
}

func validate(sch *jsonschema.Schema, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return errs.Invalid("body", "malformed JSON: %v", err)
	}
	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := firstLeaf(ve)
			return &errs.ValidationError{Field: pointerField(leaf.InstanceLocation), Reason: leaf.Message}
		}
		return errs.Invalid("body", "%v", err)
	}
	return nil
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerField turns "/title" into "title"; the document root is reported as "body".
func pointerField(ptr string) string {
	f := strings.TrimPrefix(ptr, "/")
	if f == "" {
		return "body"
	}
	return strings.ReplaceAll(f, "/", ".")
}
