package contacts

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

// defaultPersonFields are the person fields requested on reads
const defaultPersonFields = "names,emailAddresses,phoneNumbers,organizations"

// searchPageSizeLimit is the maximum page size the searchContacts
// endpoint accepts
const searchPageSizeLimit = 30

// Client wraps the Google People service
type Client struct {
	svc *people.Service
}

// NewClient creates a new People client using the shared credential
// manager. Returns an error if no valid token is cached yet.
func NewClient(ctx context.Context, auth *googleauth.Authenticator) (*Client, error) {
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	svc, err := people.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &Client{
		svc: svc,
	}, nil
}

// ListContacts lists the user's saved contacts (connections)
func (c *Client) ListContacts(ctx context.Context, pageSize int64) ([]Contact, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	resp, err := c.svc.People.Connections.List("people/me").
		PersonFields(defaultPersonFields).
		PageSize(pageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	var contacts []Contact
	for _, person := range resp.Connections {
		contacts = append(contacts, toContact(person))
	}

	return contacts, nil
}

// GetContact retrieves a single contact by resource name. Accepts both
// the full "people/c123" form and the bare ID.
func (c *Client) GetContact(ctx context.Context, resourceName string) (*Contact, error) {
	person, err := c.svc.People.Get(normalizeResourceName(resourceName)).
		PersonFields(defaultPersonFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	contact := toContact(person)
	return &contact, nil
}

// SearchContacts searches the user's saved contacts by name, email, or
// phone number prefix
func (c *Client) SearchContacts(ctx context.Context, query string, pageSize int64) ([]Contact, error) {
	if pageSize <= 0 || pageSize > searchPageSizeLimit {
		pageSize = searchPageSizeLimit
	}

	resp, err := c.svc.People.SearchContacts().
		Query(query).
		ReadMask(defaultPersonFields).
		PageSize(pageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	var contacts []Contact
	for _, result := range resp.Results {
		contacts = append(contacts, toContact(result.Person))
	}

	return contacts, nil
}

// CreateContact creates a new contact in the user's address book
func (c *Client) CreateContact(ctx context.Context, input ContactInput) (*Contact, error) {
	created, err := c.svc.People.CreateContact(buildPerson(input)).
		PersonFields(defaultPersonFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	contact := toContact(created)
	return &contact, nil
}

// UpdateContact updates an existing contact. The People API requires the
// current etag on updates, so the contact is fetched first and the input
// fields are applied over it. Only fields the input sets are written.
func (c *Client) UpdateContact(ctx context.Context, resourceName string, input ContactInput) (*Contact, error) {
	mask := updateMask(input)
	if mask == "" {
		return nil, fmt.Errorf("no fields to update")
	}

	name := normalizeResourceName(resourceName)

	existing, err := c.svc.People.Get(name).
		PersonFields(defaultPersonFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing contact: %w", err)
	}

	person := buildPerson(input)
	person.Etag = existing.Etag
	person.ResourceName = existing.ResourceName

	updated, err := c.svc.People.UpdateContact(name, person).
		UpdatePersonFields(mask).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	contact := toContact(updated)
	return &contact, nil
}

// DeleteContact deletes a contact from the user's address book
func (c *Client) DeleteContact(ctx context.Context, resourceName string) error {
	_, err := c.svc.People.DeleteContact(normalizeResourceName(resourceName)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// ListOtherContacts lists "other contacts", the auto-collected addresses
// from past interactions that are not saved contacts
func (c *Client) ListOtherContacts(ctx context.Context, pageSize int64) ([]Contact, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	resp, err := c.svc.OtherContacts.List().
		ReadMask("names,emailAddresses,phoneNumbers").
		PageSize(pageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list other contacts: %w", err)
	}

	var contacts []Contact
	for _, person := range resp.OtherContacts {
		contacts = append(contacts, toContact(person))
	}

	return contacts, nil
}

// SearchDirectory searches the Workspace domain directory. Only
// meaningful for accounts in a Workspace domain.
func (c *Client) SearchDirectory(ctx context.Context, query string, pageSize int64) ([]Contact, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	resp, err := c.svc.People.SearchDirectoryPeople().
		Query(query).
		ReadMask(defaultPersonFields).
		Sources("DIRECTORY_SOURCE_TYPE_DOMAIN_PROFILE", "DIRECTORY_SOURCE_TYPE_DOMAIN_CONTACT").
		PageSize(pageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search directory: %w", err)
	}

	var contacts []Contact
	for _, person := range resp.People {
		contacts = append(contacts, toContact(person))
	}

	return contacts, nil
}
