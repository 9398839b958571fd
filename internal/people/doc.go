// Package people provides a thin wrapper around the Google People API
// for managing contacts and searching the domain directory.
package people
