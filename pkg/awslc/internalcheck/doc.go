// Package internalcheck holds source policy tests for the awslc packages:
// constant-time comparison of secrets, no hex formatting of secrets, and no
// raw engine handles in public signatures.
//
// It has no API and is not meant to be imported.
package internalcheck
