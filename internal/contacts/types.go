package contacts

import (
	"strings"

	people "google.golang.org/api/people/v1"
)

// Contact represents a person from the user's contacts or the domain
// directory
type Contact struct {
	ResourceName  string
	Etag          string
	DisplayName   string
	GivenName     string
	FamilyName    string
	Emails        []LabeledValue
	Phones        []LabeledValue
	Organizations []Organization
}

// LabeledValue is a value with its type label (e.g. "work", "home")
type LabeledValue struct {
	Value string
	Type  string
}

// Organization represents a company affiliation of a contact
type Organization struct {
	Name  string
	Title string
}

// ContactInput represents the input for creating or updating a contact
type ContactInput struct {
	GivenName    string
	FamilyName   string
	Emails       []string
	Phones       []string
	Organization string
	JobTitle     string
}

// normalizeResourceName accepts both "people/c123" and bare "c123" forms
func normalizeResourceName(resourceName string) string {
	if strings.HasPrefix(resourceName, "people/") || strings.HasPrefix(resourceName, "otherContacts/") {
		return resourceName
	}
	return "people/" + resourceName
}

// toContact converts a People API person to our Contact type
func toContact(p *people.Person) Contact {
	if p == nil {
		return Contact{}
	}

	result := Contact{
		ResourceName: p.ResourceName,
		Etag:         p.Etag,
	}

	if len(p.Names) > 0 {
		result.DisplayName = p.Names[0].DisplayName
		result.GivenName = p.Names[0].GivenName
		result.FamilyName = p.Names[0].FamilyName
	}

	for _, email := range p.EmailAddresses {
		result.Emails = append(result.Emails, LabeledValue{
			Value: email.Value,
			Type:  email.Type,
		})
	}

	for _, phone := range p.PhoneNumbers {
		result.Phones = append(result.Phones, LabeledValue{
			Value: phone.Value,
			Type:  phone.Type,
		})
	}

	for _, org := range p.Organizations {
		result.Organizations = append(result.Organizations, Organization{
			Name:  org.Name,
			Title: org.Title,
		})
	}

	return result
}

// buildPerson converts a ContactInput to a People API person
func buildPerson(input ContactInput) *people.Person {
	p := &people.Person{}

	if input.GivenName != "" || input.FamilyName != "" {
		p.Names = []*people.Name{
			{
				GivenName:  input.GivenName,
				FamilyName: input.FamilyName,
			},
		}
	}

	for _, email := range input.Emails {
		p.EmailAddresses = append(p.EmailAddresses, &people.EmailAddress{
			Value: email,
		})
	}

	for _, phone := range input.Phones {
		p.PhoneNumbers = append(p.PhoneNumbers, &people.PhoneNumber{
			Value: phone,
		})
	}

	if input.Organization != "" || input.JobTitle != "" {
		p.Organizations = []*people.Organization{
			{
				Name:  input.Organization,
				Title: input.JobTitle,
			},
		}
	}

	return p
}

// updateMask lists the person fields an input actually sets, for the
// updatePersonFields parameter
func updateMask(input ContactInput) string {
	var fields []string

	if input.GivenName != "" || input.FamilyName != "" {
		fields = append(fields, "names")
	}
	if len(input.Emails) > 0 {
		fields = append(fields, "emailAddresses")
	}
	if len(input.Phones) > 0 {
		fields = append(fields, "phoneNumbers")
	}
	if input.Organization != "" || input.JobTitle != "" {
		fields = append(fields, "organizations")
	}

	return strings.Join(fields, ",")
}
