package people

import people "google.golang.org/api/people/v1"

// Contact represents a person from the user's contacts or the domain
// directory
type Contact struct {
	// ResourceName is the person's resource name, format: people/{person}
	ResourceName string

	// DisplayName is the person's primary display name
	DisplayName string

	// Emails are the person's email addresses
	Emails []string

	// Phones are the person's phone numbers
	Phones []string

	// Organization is the person's primary organization, if any
	Organization string
}

// ContactInput represents input for creating or updating a contact
type ContactInput struct {
	GivenName    string
	FamilyName   string
	Email        string
	Phone        string
	Organization string
}

func toContact(p *people.Person) Contact {
	contact := Contact{
		ResourceName: p.ResourceName,
	}
	if len(p.Names) > 0 {
		contact.DisplayName = p.Names[0].DisplayName
	}
	for _, email := range p.EmailAddresses {
		contact.Emails = append(contact.Emails, email.Value)
	}
	for _, phone := range p.PhoneNumbers {
		contact.Phones = append(contact.Phones, phone.Value)
	}
	if len(p.Organizations) > 0 {
		contact.Organization = p.Organizations[0].Name
	}
	return contact
}

func fromContactInput(input ContactInput) *people.Person {
	person := &people.Person{
		Names: []*people.Name{
			{
				GivenName:  input.GivenName,
				FamilyName: input.FamilyName,
			},
		},
	}
	if input.Email != "" {
		person.EmailAddresses = []*people.EmailAddress{{Value: input.Email}}
	}
	if input.Phone != "" {
		person.PhoneNumbers = []*people.PhoneNumber{{Value: input.Phone}}
	}
	if input.Organization != "" {
		person.Organizations = []*people.Organization{{Name: input.Organization}}
	}
	return person
}
