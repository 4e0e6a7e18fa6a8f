package contacts

import (
	"testing"

	people "google.golang.org/api/people/v1"
)

func TestToContact(t *testing.T) {
	// Nil person converts to the zero value
	contact := toContact(nil)
	if contact.ResourceName != "" {
		t.Errorf("Expected empty resource name for nil person, got %s", contact.ResourceName)
	}

	person := &people.Person{
		ResourceName: "people/c123",
		Etag:         "etag-1",
		Names: []*people.Name{
			{
				DisplayName: "Ada Lovelace",
				GivenName:   "Ada",
				FamilyName:  "Lovelace",
			},
		},
		EmailAddresses: []*people.EmailAddress{
			{Value: "ada@example.com", Type: "work"},
			{Value: "ada@home.example", Type: "home"},
		},
		PhoneNumbers: []*people.PhoneNumber{
			{Value: "+1 555 0100", Type: "mobile"},
		},
		Organizations: []*people.Organization{
			{Name: "Analytical Engines Ltd", Title: "Programmer"},
		},
	}

	contact = toContact(person)

	if contact.ResourceName != "people/c123" {
		t.Errorf("Expected resource name people/c123, got %s", contact.ResourceName)
	}
	if contact.Etag != "etag-1" {
		t.Errorf("Expected etag etag-1, got %s", contact.Etag)
	}
	if contact.DisplayName != "Ada Lovelace" {
		t.Errorf("Expected display name 'Ada Lovelace', got %s", contact.DisplayName)
	}
	if contact.GivenName != "Ada" || contact.FamilyName != "Lovelace" {
		t.Errorf("Expected Ada Lovelace, got %s %s", contact.GivenName, contact.FamilyName)
	}

	if len(contact.Emails) != 2 {
		t.Fatalf("Expected 2 emails, got %d", len(contact.Emails))
	}
	if contact.Emails[0].Value != "ada@example.com" || contact.Emails[0].Type != "work" {
		t.Errorf("Expected work email first, got %+v", contact.Emails[0])
	}

	if len(contact.Phones) != 1 {
		t.Fatalf("Expected 1 phone, got %d", len(contact.Phones))
	}
	if contact.Phones[0].Value != "+1 555 0100" {
		t.Errorf("Expected phone number, got %s", contact.Phones[0].Value)
	}

	if len(contact.Organizations) != 1 {
		t.Fatalf("Expected 1 organization, got %d", len(contact.Organizations))
	}
	if contact.Organizations[0].Title != "Programmer" {
		t.Errorf("Expected title Programmer, got %s", contact.Organizations[0].Title)
	}
}

func TestNormalizeResourceName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full resource name unchanged",
			input: "people/c12345",
			want:  "people/c12345",
		},
		{
			name:  "bare ID gets prefix",
			input: "c12345",
			want:  "people/c12345",
		},
		{
			name:  "other contacts name unchanged",
			input: "otherContacts/c67890",
			want:  "otherContacts/c67890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeResourceName(tt.input)
			if got != tt.want {
				t.Errorf("normalizeResourceName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildPerson(t *testing.T) {
	input := ContactInput{
		GivenName:    "Grace",
		FamilyName:   "Hopper",
		Emails:       []string{"grace@example.com"},
		Phones:       []string{"+1 555 0101"},
		Organization: "Navy",
		JobTitle:     "Rear Admiral",
	}

	person := buildPerson(input)

	if len(person.Names) != 1 {
		t.Fatalf("Expected 1 name, got %d", len(person.Names))
	}
	if person.Names[0].GivenName != "Grace" || person.Names[0].FamilyName != "Hopper" {
		t.Errorf("Expected Grace Hopper, got %+v", person.Names[0])
	}
	if len(person.EmailAddresses) != 1 || person.EmailAddresses[0].Value != "grace@example.com" {
		t.Errorf("Expected one email, got %+v", person.EmailAddresses)
	}
	if len(person.PhoneNumbers) != 1 {
		t.Errorf("Expected one phone, got %+v", person.PhoneNumbers)
	}
	if len(person.Organizations) != 1 || person.Organizations[0].Name != "Navy" {
		t.Errorf("Expected Navy organization, got %+v", person.Organizations)
	}
}

func TestBuildPerson_Empty(t *testing.T) {
	person := buildPerson(ContactInput{})

	if person.Names != nil {
		t.Errorf("Expected no names, got %+v", person.Names)
	}
	if person.EmailAddresses != nil {
		t.Errorf("Expected no emails, got %+v", person.EmailAddresses)
	}
	if person.Organizations != nil {
		t.Errorf("Expected no organizations, got %+v", person.Organizations)
	}
}

func TestUpdateMask(t *testing.T) {
	tests := []struct {
		name  string
		input ContactInput
		want  string
	}{
		{
			name:  "empty input",
			input: ContactInput{},
			want:  "",
		},
		{
			name:  "name only",
			input: ContactInput{GivenName: "Ada"},
			want:  "names",
		},
		{
			name:  "family name only",
			input: ContactInput{FamilyName: "Lovelace"},
			want:  "names",
		},
		{
			name:  "emails only",
			input: ContactInput{Emails: []string{"a@example.com"}},
			want:  "emailAddresses",
		},
		{
			name: "all fields",
			input: ContactInput{
				GivenName:    "Ada",
				Emails:       []string{"a@example.com"},
				Phones:       []string{"+1"},
				Organization: "Org",
			},
			want: "names,emailAddresses,phoneNumbers,organizations",
		},
		{
			name:  "job title implies organizations",
			input: ContactInput{JobTitle: "Engineer"},
			want:  "organizations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := updateMask(tt.input)
			if got != tt.want {
				t.Errorf("updateMask() = %q, want %q", got, tt.want)
			}
		})
	}
}
