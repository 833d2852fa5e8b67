// Package classcontext describes a composition request: a target type, the
// ordered mixins applied to it and the interfaces composed onto it.
//
// A ClassContext is an immutable value. Key gives it value equality so it can
// be used as a cache key.
package classcontext
