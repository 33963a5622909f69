// Package filter implements the small predicate language repositories accept:
// equality, inequality, disjunction and conjunction over named fields.
// The same expression can be evaluated in memory or rendered to SQL.
package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned by SQL when an expression names a field that
// has no column mapping.
var ErrUnknownField = errors.New("unknown filter field")

// Op is the kind of an Expr node.
type Op int

const (
	OpAll Op = iota
	OpEq
	OpNe
	OpOr
	OpAnd
)

// Expr is a predicate tree. The zero value matches every record.
type Expr struct {
	Op       Op
	Field    string
	Value    any
	Children []Expr
}

// Record is anything an Expr can be evaluated against.
type Record interface {
	Field(name string) (any, bool)
}

func Eq(field string, value any) Expr { return Expr{Op: OpEq, Field: field, Value: value} }
func Ne(field string, value any) Expr { return Expr{Op: OpNe, Field: field, Value: value} }
func Or(exprs ...Expr) Expr          { return Expr{Op: OpOr, Children: exprs} }
func And(exprs ...Expr) Expr         { return Expr{Op: OpAnd, Children: exprs} }

// Match reports whether r satisfies e. A field r does not expose never
// matches, for either Eq or Ne.
func (e Expr) Match(r Record) bool {
	switch e.Op {
	case OpAll:
		return true
	case OpEq, OpNe:
		v, ok := r.Field(e.Field)
		if !ok {
			return false
		}
		return (v == e.Value) == (e.Op == OpEq)
	case OpOr:
		for _, c := range e.Children {
			if c.Match(r) {
				return true
			}
		}
		return false
	case OpAnd:
		for _, c := range e.Children {
			if !c.Match(r) {
				return false
			}
		}
		return true
	}
	return false
}

// SQL renders e as a WHERE clause body. columns maps field names to quoted
// column identifiers; placeholders start at $offset+1.
func (e Expr) SQL(columns map[string]string, offset int) (string, []any, error) {
	b := &sqlBuilder{columns: columns, n: offset}
	clause, err := b.build(e)
	if err != nil {
		return "", nil, err
	}
	return clause, b.args, nil
}

type sqlBuilder struct {
	columns map[string]string
	args    []any
	n       int
}

func (b *sqlBuilder) build(e Expr) (string, error) {
	switch e.Op {
	case OpAll:
		return "TRUE", nil
	case OpEq, OpNe:
		col, ok := b.columns[e.Field]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
		}
		b.n++
		b.args = append(b.args, e.Value)
		op := " = $"
		if e.Op == OpNe {
			op = " <> $"
		}
		return col + op + strconv.Itoa(b.n), nil
	case OpOr, OpAnd:
		if len(e.Children) == 0 {
			if e.Op == OpOr {
				return "FALSE", nil
			}
			return "TRUE", nil
		}
		parts := make([]string, 0, len(e.Children))
		for _, c := range e.Children {
			p, err := b.build(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, p)
		}
		sep := " OR "
		if e.Op == OpAnd {
			sep = " AND "
		}
		return "(" + strings.Join(parts, sep) + ")", nil
	}
	return "", fmt.Errorf("unsupported filter op %d", e.Op)
}
