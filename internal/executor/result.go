package executor

import (
	language "github.com/hanpama/graphlet/internal/language"
)

// Location is a line/column pair pointing into the query source.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError represents an error that occurred during execution
type GraphQLError struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       Path           `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// errorAt builds a GraphQLError tagged with the source location of the AST
// node the problem was detected on. pos may be nil.
func errorAt(message string, pos *language.Position) GraphQLError {
	return GraphQLError{Message: message, Locations: locationsOf(pos)}
}

func locationsOf(pos *language.Position) []Location {
	if pos == nil {
		return nil
	}
	return []Location{{Line: pos.Line, Column: pos.Column}}
}

// ExecutionResult represents the result of executing a GraphQL query
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
