package people

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// contactFields is the person field mask requested for contact reads.
const contactFields = "names,emailAddresses,phoneNumbers,organizations"

// Client wraps the Google People service
type Client struct {
	svc     *people.Service
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

// NewClientForAccount creates a new People client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := people.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new People client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListContacts lists the user's contacts
func (c *Client) ListContacts(ctx context.Context, pageSize int64, pageToken string) ([]Contact, string, error) {
	call := c.svc.People.Connections.List("people/me").
		PersonFields(contactFields).
		Context(ctx)
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list contacts: %w", err)
	}

	var contacts []Contact
	for _, p := range result.Connections {
		contacts = append(contacts, toContact(p))
	}

	return contacts, result.NextPageToken, nil
}

// SearchContacts searches the user's contacts by name, email, or phone
func (c *Client) SearchContacts(ctx context.Context, query string, pageSize int64) ([]Contact, error) {
	call := c.svc.People.SearchContacts().
		Query(query).
		ReadMask(contactFields).
		Context(ctx)
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	var contacts []Contact
	for _, r := range result.Results {
		if r.Person != nil {
			contacts = append(contacts, toContact(r.Person))
		}
	}

	return contacts, nil
}

// CreateContact creates a new contact
func (c *Client) CreateContact(ctx context.Context, input ContactInput) (*Contact, error) {
	person := fromContactInput(input)

	created, err := c.svc.People.CreateContact(person).
		PersonFields(contactFields).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	result := toContact(created)
	return &result, nil
}

// UpdateContact replaces the name, email, phone, and organization fields
// of an existing contact. The contact is fetched first so the update
// carries the required etag.
func (c *Client) UpdateContact(ctx context.Context, resourceName string, input ContactInput) (*Contact, error) {
	existing, err := c.svc.People.Get(resourceName).
		PersonFields(contactFields).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get contact %s: %w", resourceName, err)
	}

	person := fromContactInput(input)
	person.Etag = existing.Etag

	updated, err := c.svc.People.UpdateContact(resourceName, person).
		UpdatePersonFields(contactFields).
		PersonFields(contactFields).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update contact %s: %w", resourceName, err)
	}

	result := toContact(updated)
	return &result, nil
}

// DeleteContact deletes a contact by resource name (people/{person})
func (c *Client) DeleteContact(ctx context.Context, resourceName string) error {
	if _, err := c.svc.People.DeleteContact(resourceName).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete contact %s: %w", resourceName, err)
	}
	return nil
}

// ListOtherContacts lists "other contacts", people the user has
// interacted with but not added to their contacts.
func (c *Client) ListOtherContacts(ctx context.Context, pageSize int64, pageToken string) ([]Contact, string, error) {
	call := c.svc.OtherContacts.List().
		ReadMask("names,emailAddresses,phoneNumbers").
		Context(ctx)
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list other contacts: %w", err)
	}

	var contacts []Contact
	for _, p := range result.OtherContacts {
		contacts = append(contacts, toContact(p))
	}

	return contacts, result.NextPageToken, nil
}

// SearchDirectory searches the domain directory for people
func (c *Client) SearchDirectory(ctx context.Context, query string, pageSize int64) ([]Contact, error) {
	call := c.svc.People.SearchDirectoryPeople().
		Query(query).
		ReadMask(contactFields).
		Sources("DIRECTORY_SOURCE_TYPE_DOMAIN_PROFILE").
		Context(ctx)
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search directory: %w", err)
	}

	var contacts []Contact
	for _, p := range result.People {
		contacts = append(contacts, toContact(p))
	}

	return contacts, nil
}
