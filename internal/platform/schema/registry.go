// Package schema holds the relational layout of the MedTrack store: tables,
// columns, enum domains and foreign keys with their referential actions.
//
// The registry is built once per process by MedTrack() before any database
// connection is opened and is read-only afterwards. It is the single source
// for the DDL applied by the migrator and for the table names accepted by the
// generic parent-existence check.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a SQL referential action.
type Action string

const Cascade Action = "CASCADE"

// Column describes one table column.
type Column struct {
	Name    string
	Type    string
	NotNull bool
	Unique  bool
	Default string
	// Enum restricts the column to the listed literals via a CHECK constraint.
	Enum []string
	// MaxLen adds a CHECK on char_length.
	MaxLen int
}

// ForeignKey declares a reference from Column to RefTable.RefColumn.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  Action
	OnUpdate  Action
}

// Table describes one table. Every table has a BIGSERIAL primary key named id
// and created_at/updated_at timestamps; they are not listed in Columns.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
	// Indexes lists columns that get a plain btree index.
	Indexes []string
}

// Column looks up a declared column by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Registry is an immutable set of tables in dependency order.
type Registry struct {
	tables []Table
	byName map[string]int
}

// NewRegistry validates the declarations and returns a registry. Tables must
// be listed parents first; a foreign key to an undeclared or later table, or
// to an unknown column, is an error.
func NewRegistry(tables ...Table) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(tables))}
	for _, t := range tables {
		if t.Name == "" {
			return nil, fmt.Errorf("schema: table with empty name")
		}
		if _, dup := r.byName[t.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate table %q", t.Name)
		}
		for _, fk := range t.ForeignKeys {
			if _, ok := t.Column(fk.Column); !ok {
				return nil, fmt.Errorf("schema: %s.%s: foreign key column not declared", t.Name, fk.Column)
			}
			idx, ok := r.byName[fk.RefTable]
			if !ok {
				return nil, fmt.Errorf("schema: %s.%s references unknown table %q", t.Name, fk.Column, fk.RefTable)
			}
			if fk.RefColumn != "id" {
				if _, ok := r.tables[idx].Column(fk.RefColumn); !ok {
					return nil, fmt.Errorf("schema: %s.%s references unknown column %s.%s", t.Name, fk.Column, fk.RefTable, fk.RefColumn)
				}
			}
		}
		r.byName[t.Name] = len(r.tables)
		r.tables = append(r.tables, t)
	}
	return r, nil
}

// Tables returns the tables in dependency order.
func (r *Registry) Tables() []Table {
	out := make([]Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// Table returns the named table.
func (r *Registry) Table(name string) (Table, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Table{}, false
	}
	return r.tables[idx], true
}

// Has reports whether name is a declared table.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Parents returns the foreign keys declared on table.
func (r *Registry) Parents(table string) []ForeignKey {
	t, ok := r.Table(table)
	if !ok {
		return nil
	}
	out := make([]ForeignKey, len(t.ForeignKeys))
	copy(out, t.ForeignKeys)
	return out
}

// Dependents returns the tables holding a foreign key to table, in
// dependency order.
func (r *Registry) Dependents(table string) []string {
	var out []string
	for _, t := range r.tables {
		for _, fk := range t.ForeignKeys {
			if fk.RefTable == table {
				out = append(out, t.Name)
				break
			}
		}
	}
	return out
}

// CascadeDeletes returns every table whose rows are removed, directly or
// transitively, when a row of table is deleted. The result is sorted by
// dependency order and excludes table itself.
func (r *Registry) CascadeDeletes(table string) []string {
	seen := map[string]bool{}
	var walk func(string)
	walk = func(name string) {
		for _, t := range r.tables {
			for _, fk := range t.ForeignKeys {
				if fk.RefTable == name && fk.OnDelete == Cascade && !seen[t.Name] {
					seen[t.Name] = true
					walk(t.Name)
				}
			}
		}
	}
	walk(table)

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return r.byName[out[i]] < r.byName[out[j]] })
	return out
}

// DDL renders idempotent CREATE statements for every table in dependency
// order.
func (r *Registry) DDL() string {
	var b strings.Builder
	for i, t := range r.tables {
		if i > 0 {
			b.WriteString("\n")
		}
		writeTable(&b, t)
	}
	return b.String()
}

func writeTable(b *strings.Builder, t Table) {
	lines := []string{"    id BIGSERIAL PRIMARY KEY"}
	for _, c := range t.Columns {
		lines = append(lines, "    "+columnDDL(t.Name, c))
	}
	lines = append(lines,
		"    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
		"    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
	)
	for _, fk := range t.ForeignKeys {
		line := fmt.Sprintf("    CONSTRAINT %s_%s_fkey FOREIGN KEY (%s) REFERENCES %s (%s)",
			t.Name, fk.Column, fk.Column, fk.RefTable, fk.RefColumn)
		if fk.OnDelete != "" {
			line += " ON DELETE " + string(fk.OnDelete)
		}
		if fk.OnUpdate != "" {
			line += " ON UPDATE " + string(fk.OnUpdate)
		}
		lines = append(lines, line)
	}

	fmt.Fprintf(b, "CREATE TABLE IF NOT EXISTS %s (\n%s\n);\n", t.Name, strings.Join(lines, ",\n"))
	for _, col := range t.Indexes {
		fmt.Fprintf(b, "CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s);\n", t.Name, col, t.Name, col)
	}
}

func columnDDL(table string, c Column) string {
	parts := []string{c.Name, c.Type}
	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != "" {
		parts = append(parts, "DEFAULT "+c.Default)
	}
	if c.Unique {
		parts = append(parts, fmt.Sprintf("CONSTRAINT %s_%s_key UNIQUE", table, c.Name))
	}
	if len(c.Enum) > 0 {
		quoted := make([]string, len(c.Enum))
		for i, v := range c.Enum {
			quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		}
		parts = append(parts, fmt.Sprintf("CHECK (%s IN (%s))", c.Name, strings.Join(quoted, ", ")))
	}
	if c.MaxLen > 0 {
		parts = append(parts, fmt.Sprintf("CHECK (char_length(%s) <= %d)", c.Name, c.MaxLen))
	}
	return strings.Join(parts, " ")
}
