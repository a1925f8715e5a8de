package schema

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

var keyValuesType = reflect.TypeFor[KeyValues]()

// mapKeyValues describes ordered maps as plain string-valued objects; the
// reflector would otherwise walk the map's unexported internals.
func mapKeyValues(t reflect.Type) *jsonschema.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != keyValuesType {
		return nil
	}
	return &jsonschema.Schema{
		Type:                 "object",
		AdditionalProperties: &jsonschema.Schema{Type: "string"},
	}
}

func generateSchema[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    mapKeyValues,
	}
	var v T
	return r.Reflect(v)
}

// ResultSchema is the JSON Schema of AnalysisResult, served to clients that
// want to validate responses.
var ResultSchema = generateSchema[AnalysisResult]()
