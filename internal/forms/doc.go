// Package forms provides a thin wrapper around the Google Forms API for
// creating and updating forms and reading responses.
package forms
