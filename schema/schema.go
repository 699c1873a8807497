// Package schema is the static registry describing every entity kind exposed
// by the resource API: its fields, validation rules and relations. The
// resource controllers consult it for relation expansion and write-field
// filtering, and the docs package derives the OpenAPI document from it.
package schema

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Relation describes a related entity expanded by default on reads.
type Relation struct {
	Name   string // GORM association name, used as the preload key
	Target string // singular entity kind of the related records
	Many   bool   // true for to-many associations
}

// Field describes one writable or readable attribute of an entity kind.
type Field struct {
	JSON      string // wire name
	Column    string // database column
	Type      string // OpenAPI type: string, integer, number, array
	Required  bool
	Immutable bool // server-assigned, rejected from client writes
	WriteOnly bool // accepted on input, never serialized back
	Rules     []validation.Rule
	Transform func(any) (any, error) // applied to client-supplied values before storage
}

// Entity is the registry entry for one entity kind.
type Entity struct {
	Name      string // singular, lowercase, used in error messages
	Path      string // plural route segment
	Fields    []Field
	Relations []Relation
}

// PreloadNames returns the association names expanded on list and get.
func (e Entity) PreloadNames() []string {
	names := make([]string, 0, len(e.Relations))
	for _, r := range e.Relations {
		names = append(names, r.Name)
	}
	return names
}

func (e Entity) field(jsonName string) (Field, bool) {
	for _, f := range e.Fields {
		if f.JSON == jsonName {
			return f, true
		}
	}
	return Field{}, false
}

// ValidateCreate checks a full set of client-supplied fields: required fields
// must be present and every provided value must satisfy its rules.
func (e Entity) ValidateCreate(fields map[string]any) error {
	errs := validation.Errors{}
	for _, f := range e.Fields {
		if f.Immutable {
			continue
		}
		value := fields[f.JSON]
		rules := f.Rules
		if f.Required {
			rules = append([]validation.Rule{validation.Required}, rules...)
		}
		if err := validation.Validate(value, rules...); err != nil {
			errs[f.JSON] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateUpdate checks only the fields present in a partial update. Unknown
// and immutable fields are ignored here and dropped by Columns.
func (e Entity) ValidateUpdate(fields map[string]any) error {
	errs := validation.Errors{}
	for jsonName, value := range fields {
		f, ok := e.field(jsonName)
		if !ok || f.Immutable {
			continue
		}
		rules := f.Rules
		if f.Required {
			rules = append([]validation.Rule{validation.Required}, rules...)
		}
		if err := validation.Validate(value, rules...); err != nil {
			errs[jsonName] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WritableFields filters client-supplied fields down to the registered
// writable attributes, applying each field's transform. Server-assigned
// attributes, unregistered keys and relation objects are all dropped, so a
// create can never reach past its own row.
func (e Entity) WritableFields(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, f := range e.Fields {
		if f.Immutable {
			continue
		}
		value, ok := fields[f.JSON]
		if !ok {
			continue
		}
		if f.Transform != nil {
			transformed, err := f.Transform(value)
			if err != nil {
				return nil, err
			}
			value = transformed
		}
		out[f.JSON] = value
	}
	return out, nil
}

// Columns converts validated client fields into a column map for a partial
// update. Unknown fields, immutable fields and relations are dropped; list
// values are serialized the way their columns store them.
func (e Entity) Columns(fields map[string]any) (map[string]any, error) {
	columns := make(map[string]any, len(fields))
	for jsonName, value := range fields {
		f, ok := e.field(jsonName)
		if !ok || f.Immutable {
			continue
		}
		if f.Transform != nil {
			transformed, err := f.Transform(value)
			if err != nil {
				return nil, err
			}
			value = transformed
		}
		if f.Type == "array" {
			b, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			value = string(b)
		}
		columns[f.Column] = value
	}
	return columns, nil
}
