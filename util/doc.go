// Package util provides small generic helpers shared across callsight:
// slice membership, pointer construction, string sanitization, and
// parsing of human-readable sizes and masked secrets for logs.
package util
