// Package report renders definitions and diagnostic logs for terminals.
package report
