package admin

import (
	"context"
	"fmt"

	directory "google.golang.org/api/admin/directory/v1"
	reports "google.golang.org/api/admin/reports/v1"
	"google.golang.org/api/option"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// customerID addresses the domain of the authenticated administrator.
const customerID = "my_customer"

// Client wraps the Admin SDK Directory and Reports services
type Client struct {
	directory *directory.Service
	reports   *reports.Service
	account   string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Admin client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	dirSvc, err := directory.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Directory service: %w", err)
	}

	repSvc, err := reports.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Reports service: %w", err)
	}

	return &Client{
		directory: dirSvc,
		reports:   repSvc,
		account:   account,
	}, nil
}

// NewClient creates a new Admin client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListUsers lists users in the domain, optionally filtered by a Directory
// API query string (e.g. "name:Jane*" or "isSuspended=true").
func (c *Client) ListUsers(ctx context.Context, query string, maxResults int64, pageToken string) ([]User, string, error) {
	call := c.directory.Users.List().Customer(customerID).OrderBy("email").Context(ctx)
	if query != "" {
		call = call.Query(query)
	}
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list users: %w", err)
	}

	var users []User
	for _, u := range result.Users {
		users = append(users, toUser(u))
	}

	return users, result.NextPageToken, nil
}

// GetUser retrieves a user by primary email, alias, or user ID
func (c *Client) GetUser(ctx context.Context, userKey string) (*User, error) {
	u, err := c.directory.Users.Get(userKey).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userKey, err)
	}

	result := toUser(u)
	return &result, nil
}

// CreateUser creates a new user in the domain
func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	u := &directory.User{
		PrimaryEmail: input.PrimaryEmail,
		Password:     input.Password,
		Name: &directory.UserName{
			GivenName:  input.GivenName,
			FamilyName: input.FamilyName,
		},
	}
	if input.OrgUnitPath != "" {
		u.OrgUnitPath = input.OrgUnitPath
	}

	created, err := c.directory.Users.Insert(u).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", input.PrimaryEmail, err)
	}

	result := toUser(created)
	return &result, nil
}

// SuspendUser suspends a user account
func (c *Client) SuspendUser(ctx context.Context, userKey string) (*User, error) {
	return c.setSuspended(ctx, userKey, true)
}

// RestoreUser reactivates a suspended user account
func (c *Client) RestoreUser(ctx context.Context, userKey string) (*User, error) {
	return c.setSuspended(ctx, userKey, false)
}

func (c *Client) setSuspended(ctx context.Context, userKey string, suspended bool) (*User, error) {
	u := &directory.User{
		Suspended:       suspended,
		ForceSendFields: []string{"Suspended"},
	}

	updated, err := c.directory.Users.Update(userKey, u).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update suspension for %s: %w", userKey, err)
	}

	result := toUser(updated)
	return &result, nil
}

// ListGroups lists groups in the domain
func (c *Client) ListGroups(ctx context.Context, maxResults int64, pageToken string) ([]Group, string, error) {
	call := c.directory.Groups.List().Customer(customerID).Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []Group
	for _, g := range result.Groups {
		groups = append(groups, toGroup(g))
	}

	return groups, result.NextPageToken, nil
}

// GetGroup retrieves a group by email, alias, or group ID
func (c *Client) GetGroup(ctx context.Context, groupKey string) (*Group, error) {
	g, err := c.directory.Groups.Get(groupKey).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get group %s: %w", groupKey, err)
	}

	result := toGroup(g)
	return &result, nil
}

// CreateGroup creates a new group
func (c *Client) CreateGroup(ctx context.Context, email, name, description string) (*Group, error) {
	g := &directory.Group{
		Email:       email,
		Name:        name,
		Description: description,
	}

	created, err := c.directory.Groups.Insert(g).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create group %s: %w", email, err)
	}

	result := toGroup(created)
	return &result, nil
}

// DeleteGroup deletes a group
func (c *Client) DeleteGroup(ctx context.Context, groupKey string) error {
	if err := c.directory.Groups.Delete(groupKey).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete group %s: %w", groupKey, err)
	}
	return nil
}

// ListGroupMembers lists the members of a group
func (c *Client) ListGroupMembers(ctx context.Context, groupKey string, pageToken string) ([]GroupMember, string, error) {
	call := c.directory.Members.List(groupKey).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list members of %s: %w", groupKey, err)
	}

	var members []GroupMember
	for _, m := range result.Members {
		members = append(members, toGroupMember(m))
	}

	return members, result.NextPageToken, nil
}

// AddGroupMember adds a member to a group. Role is MEMBER, MANAGER, or
// OWNER; empty defaults to MEMBER.
func (c *Client) AddGroupMember(ctx context.Context, groupKey, email, role string) (*GroupMember, error) {
	if role == "" {
		role = "MEMBER"
	}

	m := &directory.Member{
		Email: email,
		Role:  role,
	}

	created, err := c.directory.Members.Insert(groupKey, m).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add %s to group %s: %w", email, groupKey, err)
	}

	result := toGroupMember(created)
	return &result, nil
}

// RemoveGroupMember removes a member from a group
func (c *Client) RemoveGroupMember(ctx context.Context, groupKey, memberKey string) error {
	if err := c.directory.Members.Delete(groupKey, memberKey).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove %s from group %s: %w", memberKey, groupKey, err)
	}
	return nil
}

// ListAdminActivities lists admin console audit events. userKey may be
// "all" or a specific user's email.
func (c *Client) ListAdminActivities(ctx context.Context, userKey string, maxResults int64) ([]Activity, error) {
	return c.listActivities(ctx, userKey, "admin", maxResults)
}

// ListDriveActivities lists Drive audit events. userKey may be "all" or
// a specific user's email.
func (c *Client) ListDriveActivities(ctx context.Context, userKey string, maxResults int64) ([]Activity, error) {
	return c.listActivities(ctx, userKey, "drive", maxResults)
}

func (c *Client) listActivities(ctx context.Context, userKey, application string, maxResults int64) ([]Activity, error) {
	if userKey == "" {
		userKey = "all"
	}

	call := c.reports.Activities.List(userKey, application).Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s activities: %w", application, err)
	}

	var activities []Activity
	for _, item := range result.Items {
		activities = append(activities, toActivity(item))
	}

	return activities, nil
}
