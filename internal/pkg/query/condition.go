package query

import (
	"fmt"
	"strings"
)

// Condition is a WHERE clause fragment. It binds its values through p so
// that parameter names stay unique across nested conditions.
type Condition interface {
	SQL(p *Params) string
}

// Params allocates Spanner named parameters (@p0, @p1, ...).
type Params struct {
	values map[string]interface{}
}

func newParams() *Params {
	return &Params{values: make(map[string]interface{})}
}

// Bind registers v and returns its placeholder.
func (p *Params) Bind(v interface{}) string {
	name := fmt.Sprintf("p%d", len(p.values))
	p.values[name] = v
	return "@" + name
}

type comparison struct {
	field string
	op    string
	value interface{}
}

func (c comparison) SQL(p *Params) string {
	return fmt.Sprintf("%s %s %s", c.field, c.op, p.Bind(c.value))
}

// Eq generates "field = @pN".
func Eq(field string, value interface{}) Condition {
	return comparison{field: field, op: "=", value: value}
}

// Lt generates "field < @pN".
func Lt(field string, value interface{}) Condition {
	return comparison{field: field, op: "<", value: value}
}

type group struct {
	joiner     string
	conditions []Condition
}

func (g group) SQL(p *Params) string {
	parts := make([]string, 0, len(g.conditions))
	for _, c := range g.conditions {
		parts = append(parts, c.SQL(p))
	}
	return "(" + strings.Join(parts, g.joiner) + ")"
}

// And groups conditions that must all hold.
func And(conditions ...Condition) Condition {
	return group{joiner: " AND ", conditions: conditions}
}

// Or groups alternative conditions.
func Or(conditions ...Condition) Condition {
	return group{joiner: " OR ", conditions: conditions}
}
