// Package match provides the signature checker used for member override
// resolution and the fuzzy name matching behind "did you mean" suggestions.
//
// Key functions:
//   - SignatureChecker: exact positional comparison of method, property and event shapes
//   - NormalizeTypeName: normalizes type names for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known type names against an unresolved one
package match
