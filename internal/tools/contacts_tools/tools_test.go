package contacts_tools

import (
	"testing"

	"github.com/workspacekit/workspace-mcp/internal/contacts"
)

func TestContactInputFromArgs(t *testing.T) {
	args := map[string]interface{}{
		"givenName":    "Jane",
		"familyName":   "Doe",
		"emails":       "jane@example.com, jane@work.example",
		"phones":       "+1-555-0100",
		"organization": "Example Corp",
		"jobTitle":     "Engineer",
	}

	input := contactInputFromArgs(args)

	if input.GivenName != "Jane" {
		t.Errorf("GivenName = %v, want Jane", input.GivenName)
	}
	if input.FamilyName != "Doe" {
		t.Errorf("FamilyName = %v, want Doe", input.FamilyName)
	}
	if len(input.Emails) != 2 {
		t.Errorf("len(Emails) = %d, want 2", len(input.Emails))
	}
	if len(input.Phones) != 1 {
		t.Errorf("len(Phones) = %d, want 1", len(input.Phones))
	}
	if input.Organization != "Example Corp" {
		t.Errorf("Organization = %v, want Example Corp", input.Organization)
	}
	if input.JobTitle != "Engineer" {
		t.Errorf("JobTitle = %v, want Engineer", input.JobTitle)
	}
}

func TestContactInputFromArgs_Empty(t *testing.T) {
	input := contactInputFromArgs(map[string]interface{}{})

	if input.GivenName != "" || input.FamilyName != "" {
		t.Errorf("expected empty names, got %q %q", input.GivenName, input.FamilyName)
	}
	if input.Emails != nil || input.Phones != nil {
		t.Errorf("expected nil email/phone slices, got %v %v", input.Emails, input.Phones)
	}
}

func TestFormatContactList(t *testing.T) {
	contactList := []contacts.Contact{
		{
			ResourceName: "people/c1",
			DisplayName:  "Jane Doe",
			Emails:       []contacts.LabeledValue{{Value: "jane@example.com", Type: "work"}},
			Phones:       []contacts.LabeledValue{{Value: "+1-555-0100"}},
			Organizations: []contacts.Organization{
				{Name: "Example Corp", Title: "Engineer"},
			},
		},
		{
			ResourceName: "people/c2",
		},
	}

	want := "Found 2 contact(s):\n\n" +
		"1. Jane Doe\n" +
		"   Resource: people/c1\n" +
		"   Email: jane@example.com (work)\n" +
		"   Phone: +1-555-0100\n" +
		"   Organization: Example Corp - Engineer\n" +
		"\n" +
		"2. (no name)\n" +
		"   Resource: people/c2\n" +
		"\n"

	if got := formatContactList(contactList); got != want {
		t.Errorf("formatContactList() = %v, want %v", got, want)
	}
}
