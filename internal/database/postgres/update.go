package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SetList collects the assignments of a sparse UPDATE, one per provided field.
type SetList struct {
	cols  []string
	exprs []string
	args  []any
}

func (s *SetList) Add(col string, value any) {
	s.AddExpr(col, "%s", value)
}

// AddExpr assigns col from a SQL expression. expr holds one %s verb, replaced
// by the value's placeholder.
func (s *SetList) AddExpr(col, expr string, value any) {
	s.cols = append(s.cols, col)
	s.exprs = append(s.exprs, expr)
	s.args = append(s.args, value)
}

func (s *SetList) Len() int {
	return len(s.cols)
}

// UpdateQuery renders
//
//	UPDATE table SET c1 = $1, ..., updated_at = $n WHERE id = $n+1 RETURNING returning
//
// updated_at is always refreshed, even for an empty set list.
func (s *SetList) UpdateQuery(table, id string, now time.Time, returning string) (string, []any) {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")

	args := make([]any, 0, len(s.args)+2)
	for i, col := range s.cols {
		b.WriteString(col)
		b.WriteString(" = ")
		b.WriteString(fmt.Sprintf(s.exprs[i], "$"+strconv.Itoa(i+1)))
		b.WriteString(", ")
		args = append(args, s.args[i])
	}

	n := len(args)
	b.WriteString("updated_at = $")
	b.WriteString(strconv.Itoa(n + 1))
	b.WriteString(" WHERE id = $")
	b.WriteString(strconv.Itoa(n + 2))
	b.WriteString(" RETURNING ")
	b.WriteString(returning)

	args = append(args, now, id)
	return b.String(), args
}
