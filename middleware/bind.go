package middleware

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Schema validates and binds a typed payload from a request. Implementations
// return a *ValidationError for expected shape failures; any other error is
// treated as an internal failure by the Data stage.
type Schema interface {
	Build(req *Request) (any, error)
}

// SchemaFunc adapts a plain function to the Schema interface.
type SchemaFunc func(req *Request) (any, error)

// Build calls f(req).
func (f SchemaFunc) Build(req *Request) (any, error) {
	return f(req)
}

// ValidationError is an expected request-shape failure. Detail carries the
// validation engine's description and is surfaced to the caller in the 400
// response.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "request validation failed: " + e.Detail
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode populates out from fields and validates it. Type mismatches and
// failed validation rules come back as *ValidationError; everything else is an
// internal failure.
func (r *Request) Decode(fields map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: out})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(fields); err != nil {
		return &ValidationError{Detail: err.Error()}
	}
	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return &ValidationError{Detail: fieldErrs.Error()}
		}
		return fmt.Errorf("validating request data: %w", err)
	}
	return nil
}

// BodyFields merges the parsed body with path parameter overrides. pathParams
// maps a model field name to the route parameter it is read from. Path
// parameters win: identifiers embedded in the route are authoritative.
func (r *Request) BodyFields(pathParams map[string]string) map[string]any {
	fields := make(map[string]any, len(r.Event.Body)+len(pathParams))
	for k, v := range r.Event.Body {
		fields[k] = v
	}
	for field, param := range pathParams {
		fields[field] = r.Event.PathParameters[param]
	}
	return fields
}
