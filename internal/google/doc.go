// Package google provides OAuth2 authentication and token management for
// the Google Workspace APIs used by this server.
//
// Tokens are stored per account as files in the user cache directory, so
// one server instance can act on behalf of several Google accounts
// (default, work, personal, ...). The TokenProvider interface allows other
// token sources to be plugged in.
package google
