package database

import (
	"fmt"
	"strings"
)

// updateBuilder assembles a parameterized UPDATE from explicitly set columns
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

func (b *updateBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// build returns the statement and its arguments. updated_at never moves
// backwards even if the server clock does.
func (b *updateBuilder) build(id int64, returning string) (string, []any) {
	args := make([]any, 0, len(b.args)+1)
	args = append(args, b.args...)
	args = append(args, id)

	sets := make([]string, 0, len(b.sets)+1)
	sets = append(sets, b.sets...)
	sets = append(sets, "updated_at = GREATEST(now(), updated_at)")

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		b.table, strings.Join(sets, ", "), len(args), returning)
	return sql, args
}
