package schema

import (
	"encoding/json"
	"fmt"
	"io"
)

// snapshotEnvelope is the on-disk form of a snapshot: the arena plus the
// optional dialect side data, which Schema.Ext keeps untyped in memory.
type snapshotEnvelope struct {
	*Schema
	Postgres *PostgresExt `json:"postgres,omitempty"`
}

// EncodeJSON writes a snapshot as indented JSON.
func EncodeJSON(w io.Writer, s *Schema) error {
	env := snapshotEnvelope{Schema: s, Postgres: PostgresExtOf(s)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding schema snapshot: %w", err)
	}
	return nil
}

// DecodeJSON reads a snapshot written by EncodeJSON and validates its
// cross-references.
func DecodeJSON(r io.Reader) (*Schema, error) {
	var env snapshotEnvelope
	env.Schema = &Schema{}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding schema snapshot: %w", err)
	}
	if env.Postgres != nil {
		env.Schema.Ext = env.Postgres
	}
	if err := Validate(env.Schema); err != nil {
		return nil, err
	}
	return env.Schema, nil
}

// Validate checks that every id stored in the snapshot points inside the
// arena. Decoded snapshots must pass before diffing.
func Validate(s *Schema) error {
	checkNS := func(what string, i int, ns NamespaceID) error {
		if ns != NoNamespace && (ns < 0 || int(ns) >= len(s.Namespaces)) {
			return fmt.Errorf("schema snapshot: %s %d references unknown namespace %d", what, i, ns)
		}
		return nil
	}
	for i, t := range s.Tables {
		if err := checkNS("table", i, t.Namespace); err != nil {
			return err
		}
		if t.PrimaryKey != nil {
			for _, c := range t.PrimaryKey.Columns {
				if int(c) < 0 || int(c) >= len(s.Columns) || s.Columns[c].Table != TableID(i) {
					return fmt.Errorf("schema snapshot: primary key of table %q references invalid column %d", t.Name, c)
				}
			}
		}
	}
	for i, c := range s.Columns {
		if int(c.Table) < 0 || int(c.Table) >= len(s.Tables) {
			return fmt.Errorf("schema snapshot: column %d references unknown table %d", i, c.Table)
		}
		if c.Type.Family == FamilyEnum {
			if int(c.Type.Enum) < 0 || int(c.Type.Enum) >= len(s.Enums) {
				return fmt.Errorf("schema snapshot: column %q references unknown enum %d", c.Name, c.Type.Enum)
			}
		}
	}
	for i, idx := range s.Indexes {
		if int(idx.Table) < 0 || int(idx.Table) >= len(s.Tables) {
			return fmt.Errorf("schema snapshot: index %d references unknown table %d", i, idx.Table)
		}
		for _, c := range idx.Columns {
			if int(c) < 0 || int(c) >= len(s.Columns) || s.Columns[c].Table != idx.Table {
				return fmt.Errorf("schema snapshot: index %q references invalid column %d", idx.Name, c)
			}
		}
	}
	for i, fk := range s.ForeignKeys {
		if int(fk.Table) < 0 || int(fk.Table) >= len(s.Tables) {
			return fmt.Errorf("schema snapshot: foreign key %d references unknown table %d", i, fk.Table)
		}
		if int(fk.ReferencedTable) < 0 || int(fk.ReferencedTable) >= len(s.Tables) {
			return fmt.Errorf("schema snapshot: foreign key %d references unknown table %d", i, fk.ReferencedTable)
		}
		if len(fk.Columns) != len(fk.ReferencedColumns) {
			return fmt.Errorf("schema snapshot: foreign key %d has mismatched column counts", i)
		}
		for _, c := range fk.Columns {
			if int(c) < 0 || int(c) >= len(s.Columns) || s.Columns[c].Table != fk.Table {
				return fmt.Errorf("schema snapshot: foreign key %d constrains invalid column %d", i, c)
			}
		}
		for _, c := range fk.ReferencedColumns {
			if int(c) < 0 || int(c) >= len(s.Columns) || s.Columns[c].Table != fk.ReferencedTable {
				return fmt.Errorf("schema snapshot: foreign key %d references invalid column %d", i, c)
			}
		}
	}
	for i, e := range s.Enums {
		if err := checkNS("enum", i, e.Namespace); err != nil {
			return err
		}
	}
	for i, seq := range s.Sequences {
		if err := checkNS("sequence", i, seq.Namespace); err != nil {
			return err
		}
	}
	return nil
}
