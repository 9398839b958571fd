// Package admin provides a thin wrapper around the Admin SDK Directory
// and Reports APIs for managing users, groups, and group memberships,
// and for reading audit activity.
package admin
