package sqlgen

import "strings"

// emptyMigrationMarker is the whole script when there is nothing to do.
const emptyMigrationMarker = "-- This is an empty migration."

// AssembleScript joins statements into a script, terminated and separated
// the way migration files are written. An empty statement list produces the
// empty migration marker.
func AssembleScript(statements []string, renderer Renderer) string {
	if len(statements) == 0 {
		return emptyMigrationMarker
	}
	var b strings.Builder
	prologue, epilogue := renderer.ScriptWrapper()
	if prologue != "" {
		b.WriteString(prologue)
		b.WriteString("\n\n")
	}
	for i, stmt := range statements {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(stmt)
		b.WriteString(";")
	}
	if epilogue != "" {
		b.WriteString("\n\n")
		b.WriteString(epilogue)
	}
	b.WriteString("\n")
	return b.String()
}
