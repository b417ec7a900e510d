// Package classify assigns semantic roles to form fields. It is a
// deterministic decision table over normalized field signatures: an ordered
// list of cheap substring predicates evaluated first-match-wins, with
// per-role already-filled guards. No browser state is touched here, which
// keeps the heuristics unit-testable in isolation.
package classify

import (
	"strings"

	"github.com/openreach/formpilot/internal/engine/page"
)

// Role is the semantic meaning assigned to a field. A field maps to at most
// one role.
type Role int

const (
	RoleUnclassified Role = iota
	RoleEmail
	RoleFirstName
	RoleLastName
	RoleFullName
	RoleCompany
	RolePhone
	RoleMessage
	RoleCountrySelect
	RoleCheckboxTopic
)

var roleNames = map[Role]string{
	RoleUnclassified:  "unclassified",
	RoleEmail:         "email",
	RoleFirstName:     "first_name",
	RoleLastName:      "last_name",
	RoleFullName:      "full_name",
	RoleCompany:       "company",
	RolePhone:         "phone",
	RoleMessage:       "message",
	RoleCountrySelect: "country_or_dial_select",
	RoleCheckboxTopic: "checkbox_topic",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unclassified"
}

// RoleSet tracks which roles have already been satisfied on the current form.
type RoleSet map[Role]bool

// Signature derives the normalized classifier input for a field: the
// lowercased concatenation of its name, id, placeholder and associated label
// text.
func Signature(m page.FieldMeta) string {
	return strings.ToLower(strings.Join([]string{m.Name, m.ID, m.Placeholder, m.Label}, " "))
}

// countryKeywords marks a select as a country/prefix selector by signature.
var countryKeywords = []string{"country", "nation", "prefix", "dial", "phone", "location"}

// IsCountrySelect reports whether a select element picks a country or dial
// prefix. Keyword-less selects still qualify when their options look like
// international dial codes ("+" followed by digits), because phone-prefix
// dropdowns are frequently unlabeled.
func IsCountrySelect(m page.FieldMeta) bool {
	if !strings.EqualFold(m.Tag, "select") {
		return false
	}
	sig := Signature(m)
	for _, kw := range countryKeywords {
		if strings.Contains(sig, kw) {
			return true
		}
	}
	for _, opt := range m.Options {
		if looksLikeDialCode(opt.Text) {
			return true
		}
	}
	return false
}

func looksLikeDialCode(text string) bool {
	idx := strings.IndexByte(text, '+')
	if idx < 0 || idx+1 >= len(text) {
		return false
	}
	c := text[idx+1]
	return c >= '0' && c <= '9'
}

// ResolveCountryOption picks the option a country/prefix select should be set
// to. Preference order: an option whose text contains the sender's country
// name (or vice versa), then an option whose text or value matches the dial
// code as "+<code>" or bare "<code>". The first qualifying option wins;
// (_, false) means the select is left untouched.
func ResolveCountryOption(opts []page.SelectOption, country, dialCode string) (page.SelectOption, bool) {
	country = strings.ToLower(strings.TrimSpace(country))
	if country != "" {
		for _, opt := range opts {
			text := strings.ToLower(strings.TrimSpace(opt.Text))
			if text == "" {
				continue
			}
			if strings.Contains(text, country) || strings.Contains(country, text) {
				return opt, true
			}
		}
	}
	if dialCode != "" {
		plus := "+" + dialCode
		for _, opt := range opts {
			text := strings.TrimSpace(opt.Text)
			value := strings.TrimSpace(opt.Value)
			if strings.Contains(text, plus) || text == dialCode || value == plus || value == dialCode {
				return opt, true
			}
		}
	}
	return page.SelectOption{}, false
}

// skippedTypes are input types the classifier never touches.
var skippedTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"image":  true,
	"reset":  true,
}

// Skip reports whether a field is out of scope for classification entirely.
func Skip(m page.FieldMeta) bool {
	return skippedTypes[strings.ToLower(m.Type)]
}

// IsCheckable reports whether a field belongs in a checkbox group rather
// than the generic classification pass.
func IsCheckable(m page.FieldMeta) bool {
	t := strings.ToLower(m.Type)
	return t == "checkbox" || t == "radio"
}

// Input classifies one non-select interactive element. The precedence order
// is fixed; the first matching rule wins and roles already present in filled
// are never assigned twice.
func Input(m page.FieldMeta, filled RoleSet) Role {
	sig := Signature(m)
	typ := strings.ToLower(m.Type)
	tag := strings.ToLower(m.Tag)

	switch {
	case !filled[RoleEmail] && (typ == "email" || strings.Contains(sig, "email")):
		return RoleEmail
	case !filled[RoleFirstName] && (strings.Contains(sig, "first") || strings.Contains(sig, "fname")):
		return RoleFirstName
	case !filled[RoleLastName] && (strings.Contains(sig, "last") || strings.Contains(sig, "lname")):
		return RoleLastName
	case !filled[RoleFullName] && strings.Contains(sig, "name") &&
		!strings.Contains(sig, "first") && !strings.Contains(sig, "last") &&
		!strings.Contains(sig, "company") && !strings.Contains(sig, "business"):
		return RoleFullName
	case !filled[RoleCompany] && (strings.Contains(sig, "company") || strings.Contains(sig, "business")):
		return RoleCompany
	case !filled[RolePhone] && (typ == "tel" || strings.Contains(sig, "phone")):
		return RolePhone
	case !filled[RoleMessage] && tag == "textarea" &&
		(strings.Contains(sig, "message") || strings.Contains(sig, "comment") || strings.Contains(sig, "enquiry")):
		return RoleMessage
	}
	return RoleUnclassified
}

// GroupKey buckets checkbox/radio elements into groups: by name, else id,
// else label text.
func GroupKey(m page.FieldMeta) string {
	if m.Name != "" {
		return m.Name
	}
	if m.ID != "" {
		return m.ID
	}
	return m.Label
}

// PickCheckbox selects at most one item from a checkbox group. The context
// string is the lowercased subject+message of the sender profile: the first
// item whose label appears in that context wins, else the first item whose
// label mentions "sales". Returns (-1, false) when nothing qualifies.
func PickCheckbox(labels []string, context string) (int, bool) {
	context = strings.ToLower(context)
	for i, label := range labels {
		l := strings.ToLower(strings.TrimSpace(label))
		if l != "" && strings.Contains(context, l) {
			return i, true
		}
	}
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), "sales") {
			return i, true
		}
	}
	return -1, false
}
