// Package definition holds the composition model of a target class and its
// mixins, and the builder that produces it.
//
// The model is a pointer graph rooted at a TargetClassDefinition. Node types
// form closed sets (classes, members, requirements, dependencies,
// introductions) sealed by unexported methods. Only the builder in this
// package mutates nodes; once Build returns, every collection in the graph is
// frozen and the graph is safe for concurrent readers.
//
// Consumers traverse the graph with a Visitor (one method per node kind) or
// with WalkFunc.
package definition
