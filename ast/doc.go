// Package ast represents the parsed form of a GraphQL request document:
// operations, fragments, selections, arguments, directives and values.
//
// The names of the Go types, whenever possible, match 1:1 with the names
// used in the GraphQL specification (https://spec.graphql.org).
package ast
