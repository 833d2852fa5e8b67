// Package analyze provides the reflected type system the composition engine
// reasons about.
//
// A TypeGraph can be produced from real Go packages (golang.org/x/tools/go/packages
// plus go/types) or assembled from a manifest file. Either way the engine only
// sees the query surface of TypeGraph: type lookup, assignability, transitive
// interface sets and member listings.
//
// Key types:
//   - TypeID: package path + type name
//   - TypeInfo: a class or interface with its members, attributes and mixin requirements
//   - MethodInfo, PropertyInfo, EventInfo: member descriptors
//   - AttributeInfo: a custom attribute applied to a type or member
package analyze
