// Package query builds parameterized Spanner SQL statements.
package query

import (
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Builder constructs SELECT and DELETE statements. Every method returns a
// new builder, so a base query can be shared.
type Builder struct {
	table      string
	selectCols []string
	where      []Condition
	orderByCol string
	orderByDir Direction
	limitVal   int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a condition. Multiple calls are combined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.where = append(nb.where, condition)
	return nb
}

// OrderBy specifies the column and direction for sorting.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderByCol = column
	nb.orderByDir = direction
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Count returns a COUNT(*) query over the same rows, without ordering or
// limit.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.orderByCol = ""
	nb.limitVal = 0
	return nb
}

// Build constructs the SELECT statement.
func (b *Builder) Build() spanner.Statement {
	p := newParams()
	var sql strings.Builder

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)
	b.writeWhere(&sql, p)

	if b.orderByCol != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(b.orderByCol)
		if b.orderByDir == Desc {
			sql.WriteString(" DESC")
		} else {
			sql.WriteString(" ASC")
		}
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(p.Bind(b.limitVal))
	}

	return spanner.Statement{SQL: sql.String(), Params: p.values}
}

// BuildDelete constructs a DELETE statement over the same rows.
func (b *Builder) BuildDelete() spanner.Statement {
	p := newParams()
	var sql strings.Builder

	sql.WriteString("DELETE FROM ")
	sql.WriteString(b.table)
	if len(b.where) == 0 {
		// Spanner DML requires a WHERE clause.
		sql.WriteString(" WHERE true")
	}
	b.writeWhere(&sql, p)

	return spanner.Statement{SQL: sql.String(), Params: p.values}
}

func (b *Builder) writeWhere(sql *strings.Builder, p *Params) {
	if len(b.where) == 0 {
		return
	}
	parts := make([]string, 0, len(b.where))
	for _, c := range b.where {
		parts = append(parts, c.SQL(p))
	}
	sql.WriteString(" WHERE ")
	sql.WriteString(strings.Join(parts, " AND "))
}

func (b *Builder) clone() *Builder {
	nb := *b
	nb.selectCols = append([]string(nil), b.selectCols...)
	nb.where = append([]Condition(nil), b.where...)
	return &nb
}
