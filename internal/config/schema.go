// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// Type enumerates the value types a configuration key may declare.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeLong
	TypeBool
)

// String returns the type name used in validation error messages and in
// the generated reference table.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeBool:
		return "boolean"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Importance is an informational tier attached to a key definition. It is
// used only for documentation and reporting and never affects validation.
type Importance int

const (
	ImportanceHigh Importance = iota
	ImportanceMedium
	ImportanceLow
)

func (i Importance) String() string {
	switch i {
	case ImportanceHigh:
		return "high"
	case ImportanceMedium:
		return "medium"
	case ImportanceLow:
		return "low"
	default:
		return fmt.Sprintf("Importance(%d)", int(i))
	}
}

// Validator constrains a parsed (or defaulted) value beyond its declared
// type. Validate returns a descriptive error naming the violated
// constraint; the key name is added by the resolution engine.
type Validator interface {
	Validate(value any) error
}

// Range is a numeric Validator with optional lower and upper bounds.
type Range struct {
	min, max       int64
	hasMin, hasMax bool
}

// AtLeast returns a Range accepting values >= min.
func AtLeast(min int64) Range {
	return Range{min: min, hasMin: true}
}

// Between returns a Range accepting min <= value <= max.
func Between(min, max int64) Range {
	return Range{min: min, max: max, hasMin: true, hasMax: true}
}

// Validate implements Validator for int and int64 values.
func (r Range) Validate(value any) error {
	var v int64
	switch n := value.(type) {
	case int:
		v = int64(n)
	case int64:
		v = n
	default:
		return fmt.Errorf("range constraint applied to non-numeric value %v", value)
	}

	if r.hasMin && v < r.min {
		return fmt.Errorf("value must be at least %d", r.min)
	}
	if r.hasMax && v > r.max {
		return fmt.Errorf("value must be no more than %d", r.max)
	}

	return nil
}

func (r Range) String() string {
	switch {
	case r.hasMin && r.hasMax:
		return fmt.Sprintf("[%d,...,%d]", r.min, r.max)
	case r.hasMin:
		return fmt.Sprintf("[%d,...]", r.min)
	default:
		return "[...]"
	}
}

type requiredMarker struct{}

// Required marks a key definition that has no default: the key must be
// present in the raw properties or resolution fails.
var Required any = requiredMarker{}

// KeyDef describes a single configuration key: its name, declared type,
// default (or Required), importance tier, optional validator, and
// documentation string.
type KeyDef struct {
	Name       string
	Type       Type
	Default    any
	Importance Importance
	Validator  Validator
	Doc        string
}

// Schema is an ordered table of key definitions. A Schema value is never
// mutated after it is handed out: Define and Extend return copies, so a
// published schema can be shared freely between goroutines.
type Schema struct {
	order []string
	defs  map[string]KeyDef
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{defs: make(map[string]KeyDef)}
}

func (s *Schema) clone() *Schema {
	out := &Schema{
		order: make([]string, len(s.order)),
		defs:  make(map[string]KeyDef, len(s.defs)),
	}
	copy(out.order, s.order)
	for name, def := range s.defs {
		out.defs[name] = def
	}

	return out
}

// Define returns a copy of the schema with def added. Redefining an
// existing name replaces the prior entry (last write wins); this is how a
// derived schema overrides keys inherited from its base.
//
// A malformed definition (unknown type, default of the wrong type) is a
// programming error and panics at declaration time.
func (s *Schema) Define(def KeyDef) *Schema {
	checkKeyDef(def)

	out := s.clone()
	if _, exists := out.defs[def.Name]; !exists {
		out.order = append(out.order, def.Name)
	}
	out.defs[def.Name] = def

	return out
}

// Extend returns base extended by defs, applied in declaration order.
func Extend(base *Schema, defs ...KeyDef) *Schema {
	out := base
	for _, def := range defs {
		out = out.Define(def)
	}

	return out
}

// Keys returns all key definitions in declaration order.
func (s *Schema) Keys() []KeyDef {
	out := make([]KeyDef, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.defs[name])
	}

	return out
}

// Lookup returns the definition for name, if declared.
func (s *Schema) Lookup(name string) (KeyDef, bool) {
	def, ok := s.defs[name]
	return def, ok
}

func checkKeyDef(def KeyDef) {
	if def.Name == "" {
		panic("config: key definition with empty name")
	}
	if def.Type < TypeString || def.Type > TypeBool {
		panic(fmt.Sprintf("config: key %q declares unknown type %v", def.Name, def.Type))
	}
	if def.Default == Required {
		return
	}

	ok := false
	switch def.Type {
	case TypeString:
		_, ok = def.Default.(string)
	case TypeInt:
		_, ok = def.Default.(int)
	case TypeLong:
		_, ok = def.Default.(int64)
	case TypeBool:
		_, ok = def.Default.(bool)
	}

	if !ok {
		panic(fmt.Sprintf("config: key %q declares default %v (%T), want %s",
			def.Name, def.Default, def.Default, def.Type))
	}
}
