// Package slides provides a thin wrapper around the Google Slides API
// for building and editing presentations, plus PDF export through
// Drive.
package slides
