// Package meet provides a thin wrapper around the Google Meet API for
// reading past conferences, their participants, recordings, and
// transcripts.
package meet
