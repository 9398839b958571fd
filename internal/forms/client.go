package forms

import (
	"context"
	"encoding/json"
	"fmt"

	forms "google.golang.org/api/forms/v1"
	"google.golang.org/api/option"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// Client wraps the Google Forms service
type Client struct {
	svc     *forms.Service
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

// NewClientForAccount creates a new Forms client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := forms.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Forms service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Forms client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// CreateForm creates a new form with the given title. Only the title can
// be set at creation time; everything else goes through BatchUpdate.
func (c *Client) CreateForm(ctx context.Context, title, documentTitle string) (*FormInfo, error) {
	form := &forms.Form{
		Info: &forms.Info{
			Title: title,
		},
	}
	if documentTitle != "" {
		form.Info.DocumentTitle = documentTitle
	}

	created, err := c.svc.Forms.Create(form).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	result := toFormInfo(created)
	return &result, nil
}

// GetForm retrieves a form by ID
func (c *Client) GetForm(ctx context.Context, formID string) (*FormInfo, error) {
	form, err := c.svc.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get form %s: %w", formID, err)
	}

	result := toFormInfo(form)
	return &result, nil
}

// BatchUpdate applies a JSON-encoded list of Forms API update requests
// to a form. The payload is passed through to the API unchanged.
func (c *Client) BatchUpdate(ctx context.Context, formID string, requestsJSON string) (*FormInfo, error) {
	var requests []*forms.Request
	if err := json.Unmarshal([]byte(requestsJSON), &requests); err != nil {
		return nil, fmt.Errorf("failed to decode batch update requests: %w", err)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("batch update requires at least one request")
	}

	req := &forms.BatchUpdateFormRequest{
		Requests:              requests,
		IncludeFormInResponse: true,
	}

	resp, err := c.svc.Forms.BatchUpdate(formID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch update form %s: %w", formID, err)
	}

	if resp.Form == nil {
		return nil, nil
	}
	result := toFormInfo(resp.Form)
	return &result, nil
}

// SetPublishSettings controls whether a form is published and accepting
// responses.
func (c *Client) SetPublishSettings(ctx context.Context, formID string, published, acceptingResponses bool) error {
	req := &forms.SetPublishSettingsRequest{
		PublishSettings: &forms.PublishSettings{
			PublishState: &forms.PublishState{
				IsPublished:          published,
				IsAcceptingResponses: acceptingResponses,
				ForceSendFields:      []string{"IsPublished", "IsAcceptingResponses"},
			},
		},
		UpdateMask: "publishState",
	}

	if _, err := c.svc.Forms.SetPublishSettings(formID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to set publish settings for form %s: %w", formID, err)
	}
	return nil
}

// GetResponse retrieves a single form response by ID
func (c *Client) GetResponse(ctx context.Context, formID, responseID string) (*Response, error) {
	resp, err := c.svc.Forms.Responses.Get(formID, responseID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get response %s: %w", responseID, err)
	}

	result := toResponse(resp)
	return &result, nil
}

// ListResponses lists the responses to a form
func (c *Client) ListResponses(ctx context.Context, formID string, pageToken string) ([]Response, string, error) {
	call := c.svc.Forms.Responses.List(formID).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list responses for form %s: %w", formID, err)
	}

	var responses []Response
	for _, r := range result.Responses {
		responses = append(responses, toResponse(r))
	}

	return responses, result.NextPageToken, nil
}
