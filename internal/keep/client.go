package keep

import (
	"context"
	"fmt"
	"io"

	keep "google.golang.org/api/keep/v1"
	"google.golang.org/api/option"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// Client wraps the Google Keep service
type Client struct {
	svc     *keep.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Keep client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := keep.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Keep service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Keep client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListNotes lists the user's notes, optionally filtered (e.g. "trashed").
func (c *Client) ListNotes(ctx context.Context, filter string, pageSize int64, pageToken string) ([]Note, string, error) {
	call := c.svc.Notes.List().Context(ctx)
	if filter != "" {
		call = call.Filter(filter)
	}
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list notes: %w", err)
	}

	var notes []Note
	for _, n := range result.Notes {
		notes = append(notes, toNote(n))
	}

	return notes, result.NextPageToken, nil
}

// GetNote retrieves a note by resource name (notes/{note})
func (c *Client) GetNote(ctx context.Context, name string) (*Note, error) {
	n, err := c.svc.Notes.Get(name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get note %s: %w", name, err)
	}

	result := toNote(n)
	return &result, nil
}

// CreateNote creates a new text note
func (c *Client) CreateNote(ctx context.Context, title, text string) (*Note, error) {
	n := &keep.Note{
		Title: title,
		Body: &keep.Section{
			Text: &keep.TextContent{
				Text: text,
			},
		},
	}

	created, err := c.svc.Notes.Create(n).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	result := toNote(created)
	return &result, nil
}

// DeleteNote deletes a note by resource name
func (c *Client) DeleteNote(ctx context.Context, name string) error {
	if _, err := c.svc.Notes.Delete(name).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", name, err)
	}
	return nil
}

// ShareNote grants users write access to a note
func (c *Client) ShareNote(ctx context.Context, name string, emails []string) ([]Permission, error) {
	var requests []*keep.CreatePermissionRequest
	for _, email := range emails {
		requests = append(requests, &keep.CreatePermissionRequest{
			Parent: name,
			Permission: &keep.Permission{
				Email: email,
				Role:  "WRITER",
			},
		})
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("share requires at least one email")
	}

	req := &keep.BatchCreatePermissionsRequest{Requests: requests}
	resp, err := c.svc.Notes.Permissions.BatchCreate(name, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to share note %s: %w", name, err)
	}

	var perms []Permission
	for _, p := range resp.Permissions {
		perms = append(perms, toPermission(p))
	}

	return perms, nil
}

// UnshareNote revokes permissions on a note. Names are fully-qualified
// permission resource names (notes/{note}/permissions/{permission}).
func (c *Client) UnshareNote(ctx context.Context, name string, permissionNames []string) error {
	if len(permissionNames) == 0 {
		return fmt.Errorf("unshare requires at least one permission name")
	}

	req := &keep.BatchDeletePermissionsRequest{Names: permissionNames}
	if _, err := c.svc.Notes.Permissions.BatchDelete(name, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to unshare note %s: %w", name, err)
	}
	return nil
}

// DownloadAttachment downloads an attachment's bytes. Name is the
// attachment resource name from the note; mimeType selects the format
// when the attachment has several.
func (c *Client) DownloadAttachment(ctx context.Context, name, mimeType string) ([]byte, error) {
	call := c.svc.Media.Download(name).Context(ctx)
	if mimeType != "" {
		call = call.MimeType(mimeType)
	}

	resp, err := call.Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment %s: %w", name, err)
	}

	return data, nil
}
