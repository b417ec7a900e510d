// Package profile holds the sender identity used to populate contact forms.
// A profile is loaded once at engine start and never mutated for the duration
// of a run. Every field is optional; missing values degrade to deterministic
// defaults so a run never fails on profile input.
package profile

import (
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Default values applied when the corresponding profile field is absent.
const (
	DefaultCompany = "Business"
	DefaultEmail   = "contact@business.com"
	DefaultSubject = "Partnership Inquiry"
	DefaultMessage = "Hello, I am interested in your services. Please contact me."
)

// Profile is the sender identity and message content for one run.
type Profile struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
}

// Defaults returns the built-in fallback profile.
func Defaults() Profile {
	return Profile{
		CompanyName: DefaultCompany,
		Email:       DefaultEmail,
		Subject:     DefaultSubject,
		Message:     DefaultMessage,
	}
}

// Load builds a profile from the caller-supplied input: a serialized JSON
// object, or a path to one on disk. Empty, missing or unparseable input
// degrades to the defaults rather than failing the run.
func Load(input string) Profile {
	input = strings.TrimSpace(input)
	if input == "" {
		return Defaults()
	}

	raw := []byte(input)
	if !strings.HasPrefix(input, "{") {
		data, err := os.ReadFile(input)
		if err != nil {
			return Defaults()
		}
		raw = data
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Defaults()
	}
	return p.withDefaults()
}

// withDefaults fills the fields callers rely on unconditionally. Names, phone
// and country stay empty when unknown - the filler simply skips those roles.
func (p Profile) withDefaults() Profile {
	if strings.TrimSpace(p.CompanyName) == "" {
		p.CompanyName = DefaultCompany
	}
	if strings.TrimSpace(p.Email) == "" {
		p.Email = DefaultEmail
	}
	if strings.TrimSpace(p.Subject) == "" {
		p.Subject = DefaultSubject
	}
	if strings.TrimSpace(p.Message) == "" {
		p.Message = DefaultMessage
	}
	return p
}

// First returns the sender's first name: the explicit field when present,
// else the first token of the contact person.
func (p Profile) First() string {
	if p.FirstName != "" {
		return p.FirstName
	}
	tokens := strings.Fields(p.ContactPerson)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// Last returns the sender's last name: the explicit field when present, else
// everything after the first token of the contact person.
func (p Profile) Last() string {
	if p.LastName != "" {
		return p.LastName
	}
	tokens := strings.Fields(p.ContactPerson)
	if len(tokens) < 2 {
		return ""
	}
	return strings.Join(tokens[1:], " ")
}

// FullName returns the contact person, falling back to the explicit name
// parts when no combined value was supplied.
func (p Profile) FullName() string {
	if p.ContactPerson != "" {
		return p.ContactPerson
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
