// Package keep provides a thin wrapper around the Google Keep API for
// reading, creating, sharing, and deleting notes.
package keep
