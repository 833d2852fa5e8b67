// Package diagnostic collects validation results for a composition.
//
// A Log holds errors, warnings and infos plus unexpected internal errors
// recovered while walking a definition graph. Every entry carries a stable
// code, the target it belongs to and the path of the node that produced it.
package diagnostic
