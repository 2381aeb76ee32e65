// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Snapshot is the immutable typed view produced by resolving raw
// properties against a schema. It holds one parsed or defaulted value per
// schema key, plus the untouched raw properties for introspection.
type Snapshot struct {
	schema *Schema
	values map[string]any
	raw    map[string]string
}

// Resolve validates raw against schema and applies defaults.
//
// Every schema key is processed: present keys are parsed per their
// declared type, absent keys take their default (or fail if Required),
// and declared validators run on the parsed or defaulted value. All
// failures are collected and returned together as a *ValidationError;
// resolution never stops at the first offending key.
//
// Raw keys not declared in the schema are ignored, so property files can
// carry keys for other layers (the embedded client, future versions)
// without tripping validation here.
func Resolve(schema *Schema, raw map[string]string) (*Snapshot, error) {
	verr := &ValidationError{}
	values := make(map[string]any, len(schema.order))

	for _, def := range schema.Keys() {
		strVal, present := raw[def.Name]

		var value any
		if present {
			parsed, err := parseValue(def.Type, strVal)
			if err != nil {
				verr.add(def.Name, "expected %s, got %q", def.Type, strVal)
				continue
			}
			value = parsed
		} else {
			if def.Default == Required {
				verr.add(def.Name, "missing required configuration")
				continue
			}
			value = def.Default
		}

		if def.Validator != nil {
			if err := def.Validator.Validate(value); err != nil {
				verr.add(def.Name, "%v", err)
				continue
			}
		}

		values[def.Name] = value
	}

	if len(verr.Errs) > 0 {
		return nil, verr
	}

	return &Snapshot{schema: schema, values: values, raw: raw}, nil
}

func parseValue(t Type, s string) (any, error) {
	switch t {
	case TypeString:
		return s, nil
	case TypeInt:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, err
		}
		return int(v), nil
	case TypeLong:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case TypeBool:
		switch strings.ToLower(s) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("not a boolean")
	default:
		return nil, fmt.Errorf("unknown type %v", t)
	}
}

// String returns the resolved value of a string-typed key.
// Asking for an undeclared or differently-typed key is a programming
// error and panics.
func (s *Snapshot) String(name string) string {
	return get[string](s, name)
}

// Int returns the resolved value of an int-typed key.
func (s *Snapshot) Int(name string) int {
	return get[int](s, name)
}

// Long returns the resolved value of a long-typed key.
func (s *Snapshot) Long(name string) int64 {
	return get[int64](s, name)
}

// Bool returns the resolved value of a boolean-typed key.
func (s *Snapshot) Bool(name string) bool {
	return get[bool](s, name)
}

// Raw returns the original properties the snapshot was resolved from.
// Callers must treat the map as read-only.
func (s *Snapshot) Raw() map[string]string {
	return s.raw
}

// Schema returns the schema the snapshot was resolved against.
func (s *Snapshot) Schema() *Schema {
	return s.schema
}

func get[T any](s *Snapshot, name string) T {
	value, ok := s.values[name]
	if !ok {
		panic(fmt.Sprintf("config: unknown configuration key %q", name))
	}

	typed, ok := value.(T)
	if !ok {
		panic(fmt.Sprintf("config: key %q holds %T, asked for %T", name, value, typed))
	}

	return typed
}
