// Package shape declares the response-shape descriptors handed to the
// generation capability to constrain its JSON output. Shapes are opaque
// to the rest of the system: they are serialized onto the wire as-is and
// the returned payload is trusted to match them.
package shape

// Type values follow the generative-language API wire format.
const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
)

// Schema is a recursive structural description of an expected JSON value.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Str returns a STRING schema, optionally described.
func Str(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Num returns a NUMBER schema, optionally described.
func Num(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

// Bool returns a BOOLEAN schema.
func Bool() *Schema {
	return &Schema{Type: TypeBoolean}
}

// Arr returns an ARRAY schema over the given item schema.
func Arr(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// Obj returns an OBJECT schema with the given properties and required list.
func Obj(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: properties, Required: required}
}
