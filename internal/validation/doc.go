// Package validation checks a built composition and reports every problem in
// one diagnostic.Log.
//
// The Validator walks the definition graph with a definition.Visitor. Rules
// never stop the walk; a panic inside a rule is recovered and recorded as an
// unexpected entry for the node being visited.
package validation
