package admin

import (
	directory "google.golang.org/api/admin/directory/v1"
	reports "google.golang.org/api/admin/reports/v1"
)

// User represents a Workspace user account
type User struct {
	// ID is the unique user ID
	ID string

	// PrimaryEmail is the user's primary email address
	PrimaryEmail string

	// FullName is the user's full display name
	FullName string

	// OrgUnitPath is the organizational unit the user belongs to
	OrgUnitPath string

	// Suspended indicates whether the account is suspended
	Suspended bool

	// IsAdmin indicates whether the user is a super administrator
	IsAdmin bool

	// LastLoginTime is the RFC 3339 timestamp of the last login
	LastLoginTime string
}

// UserInput represents input for creating a user
type UserInput struct {
	PrimaryEmail string
	GivenName    string
	FamilyName   string
	Password     string
	OrgUnitPath  string
}

// Group represents a Workspace group
type Group struct {
	// ID is the unique group ID
	ID string

	// Email is the group's email address
	Email string

	// Name is the group's display name
	Name string

	// Description is the group's description
	Description string

	// MemberCount is the number of direct members
	MemberCount int64
}

// GroupMember represents a membership in a group
type GroupMember struct {
	// ID is the unique member ID
	ID string

	// Email is the member's email address
	Email string

	// Role is MEMBER, MANAGER, or OWNER
	Role string

	// Type is USER, GROUP, or CUSTOMER
	Type string
}

// Activity represents an audit event from the Reports API
type Activity struct {
	// Time is the RFC 3339 timestamp of the event
	Time string

	// Actor is the email of the user who performed the action
	Actor string

	// IPAddress is the IP address the action originated from
	IPAddress string

	// EventNames are the names of the events in this activity
	EventNames []string
}

func toUser(u *directory.User) User {
	user := User{
		ID:            u.Id,
		PrimaryEmail:  u.PrimaryEmail,
		OrgUnitPath:   u.OrgUnitPath,
		Suspended:     u.Suspended,
		IsAdmin:       u.IsAdmin,
		LastLoginTime: u.LastLoginTime,
	}
	if u.Name != nil {
		user.FullName = u.Name.FullName
	}
	return user
}

func toGroup(g *directory.Group) Group {
	return Group{
		ID:          g.Id,
		Email:       g.Email,
		Name:        g.Name,
		Description: g.Description,
		MemberCount: g.DirectMembersCount,
	}
}

func toGroupMember(m *directory.Member) GroupMember {
	return GroupMember{
		ID:    m.Id,
		Email: m.Email,
		Role:  m.Role,
		Type:  m.Type,
	}
}

func toActivity(item *reports.Activity) Activity {
	activity := Activity{
		IPAddress: item.IpAddress,
	}
	if item.Id != nil {
		activity.Time = item.Id.Time
	}
	if item.Actor != nil {
		activity.Actor = item.Actor.Email
	}
	for _, event := range item.Events {
		activity.EventNames = append(activity.EventNames, event.Name)
	}
	return activity
}
