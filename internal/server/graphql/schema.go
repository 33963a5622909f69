package graphql

import (
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// maxQueryDepth bounds nesting; the schema itself is three levels deep.
const maxQueryDepth = 8

// NewSchema parses the embedded SDL and binds it to r.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	s, err := graphql.ParseSchema(schemaSDL, r, graphql.MaxDepth(maxQueryDepth))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return s, nil
}
