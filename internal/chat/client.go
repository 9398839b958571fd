package chat

import (
	"context"
	"fmt"

	chat "google.golang.org/api/chat/v1"
	"google.golang.org/api/option"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// Client wraps the Google Chat service
type Client struct {
	svc     *chat.Service
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

// NewClientForAccount creates a new Chat client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := chat.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Chat service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Chat client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListSpaces lists the spaces the authenticated user is a member of
func (c *Client) ListSpaces(ctx context.Context, pageSize int64, pageToken string) ([]Space, string, error) {
	call := c.svc.Spaces.List().Context(ctx)
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list spaces: %w", err)
	}

	var spaces []Space
	for _, s := range result.Spaces {
		spaces = append(spaces, toSpace(s))
	}

	return spaces, result.NextPageToken, nil
}

// CreateSpace creates a new named space
func (c *Client) CreateSpace(ctx context.Context, displayName string, spaceType string) (*Space, error) {
	if spaceType == "" {
		spaceType = "SPACE"
	}

	space := &chat.Space{
		DisplayName: displayName,
		SpaceType:   spaceType,
	}

	created, err := c.svc.Spaces.Create(space).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}

	result := toSpace(created)
	return &result, nil
}

// ListMembers lists the members of a space
func (c *Client) ListMembers(ctx context.Context, spaceName string, pageToken string) ([]Member, string, error) {
	call := c.svc.Spaces.Members.List(spaceName).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list members of %s: %w", spaceName, err)
	}

	var members []Member
	for _, m := range result.Memberships {
		members = append(members, toMember(m))
	}

	return members, result.NextPageToken, nil
}

// AddMember adds a user to a space by email address
func (c *Client) AddMember(ctx context.Context, spaceName, userEmail string) (*Member, error) {
	membership := &chat.Membership{
		Member: &chat.User{
			Name: "users/" + userEmail,
			Type: "HUMAN",
		},
	}

	created, err := c.svc.Spaces.Members.Create(spaceName, membership).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add member to %s: %w", spaceName, err)
	}

	result := toMember(created)
	return &result, nil
}

// RemoveMember removes a membership from a space
func (c *Client) RemoveMember(ctx context.Context, membershipName string) error {
	if _, err := c.svc.Spaces.Members.Delete(membershipName).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove member %s: %w", membershipName, err)
	}
	return nil
}

// ListMessages lists the messages in a space, newest first
func (c *Client) ListMessages(ctx context.Context, spaceName string, pageSize int64, pageToken string) ([]Message, string, error) {
	call := c.svc.Spaces.Messages.List(spaceName).OrderBy("createTime desc").Context(ctx)
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list messages in %s: %w", spaceName, err)
	}

	var messages []Message
	for _, m := range result.Messages {
		messages = append(messages, toMessage(m))
	}

	return messages, result.NextPageToken, nil
}

// SearchMessages lists messages in a space matching a filter expression,
// e.g. `createTime > "2024-01-01T00:00:00Z"`.
func (c *Client) SearchMessages(ctx context.Context, spaceName, filter string, pageSize int64) ([]Message, error) {
	call := c.svc.Spaces.Messages.List(spaceName).Filter(filter).Context(ctx)
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search messages in %s: %w", spaceName, err)
	}

	var messages []Message
	for _, m := range result.Messages {
		messages = append(messages, toMessage(m))
	}

	return messages, nil
}

// SendMessage sends a text message to a space
func (c *Client) SendMessage(ctx context.Context, spaceName, text string) (*Message, error) {
	msg := &chat.Message{
		Text: text,
	}

	created, err := c.svc.Spaces.Messages.Create(spaceName, msg).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to send message to %s: %w", spaceName, err)
	}

	result := toMessage(created)
	return &result, nil
}

// ReplyToThread sends a text message as a reply in an existing thread
func (c *Client) ReplyToThread(ctx context.Context, spaceName, threadName, text string) (*Message, error) {
	msg := &chat.Message{
		Text: text,
		Thread: &chat.Thread{
			Name: threadName,
		},
	}

	created, err := c.svc.Spaces.Messages.Create(spaceName, msg).
		MessageReplyOption("REPLY_MESSAGE_FALLBACK_TO_NEW_THREAD").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to reply in thread %s: %w", threadName, err)
	}

	result := toMessage(created)
	return &result, nil
}
