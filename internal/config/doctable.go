package config

import (
	"fmt"
	"strings"
)

// DocTable renders the schema as a markdown reference table: one row per
// key with its type, default, importance, and documentation, in
// declaration order. Reporting only; nothing reads it back.
func DocTable(s *Schema) string {
	var b strings.Builder

	b.WriteString("| Name | Type | Default | Importance | Description |\n")
	b.WriteString("|------|------|---------|------------|-------------|\n")

	for _, def := range s.Keys() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			def.Name,
			def.Type,
			renderDefault(def.Default),
			def.Importance,
			strings.ReplaceAll(def.Doc, "\n", " "),
		)
	}

	return b.String()
}

func renderDefault(v any) string {
	if v == Required {
		return "(required)"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}

	return fmt.Sprintf("%v", v)
}
