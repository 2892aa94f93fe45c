package repository

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// column is one selectable field. name is the column in table and alias the
// db tag it scans into; they only differ for joined columns.
type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	if c.name == c.alias {
		return c.table + "." + c.name
	}

	return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
}

// columnsOf walks the db tags of t, descending into embedded structs.
// A table tag moves the column to a joined table and a column tag names it there.
func columnsOf(table string, t reflect.Type) []column {
	var cols []column

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			cols = append(cols, columnsOf(table, field.Type)...)

			continue
		}

		alias := field.Tag.Get("db")
		if alias == "" || alias == "-" {
			continue
		}

		col := column{name: alias, table: table, alias: alias}

		if joined := field.Tag.Get("table"); joined != "" {
			col.table = joined
		}

		if name := field.Tag.Get("column"); name != "" {
			col.name = name
		}

		cols = append(cols, col)
	}

	return cols
}

// selectList renders cols for a SELECT, keeping only the aliases in only when
// it is non-empty.
func selectList(cols []column, only []string) string {
	exprs := make([]string, 0, len(cols))

	for _, col := range cols {
		if len(only) > 0 && !slices.Contains(only, col.alias) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func insertQuery(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// setPrefix keeps SET parameters apart from WHERE parameters naming the same column.
const setPrefix = "set_"

// updateQuery renders an UPDATE of mod's columns in key order and merges its
// parameters into the where clause's args.
func updateQuery(table string, mod map[string]any, where string, args map[string]any) (string, map[string]any) {
	merged := make(map[string]any, len(args)+len(mod))
	maps.Copy(merged, args)

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s%s", col, setPrefix, col))
		merged[setPrefix+col] = mod[col]
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", table, strings.Join(assignments, ", "), where), merged
}

func deleteQuery(table, where string) string {
	return fmt.Sprintf("DELETE FROM %s %s", table, where)
}
