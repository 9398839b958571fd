// Package chat provides a thin wrapper around the Google Chat API for
// listing spaces, managing memberships, and sending and searching
// messages.
package chat
