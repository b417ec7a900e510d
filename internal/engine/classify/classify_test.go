package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openreach/formpilot/internal/engine/page"
)

func meta(tag, typ, name, id, placeholder, label string) page.FieldMeta {
	return page.FieldMeta{Tag: tag, Type: typ, Name: name, ID: id, Placeholder: placeholder, Label: label}
}

func TestSignature(t *testing.T) {
	m := meta("input", "text", "Full_Name", "contactName", "Your Name", "Name")
	assert.Equal(t, "full_name contactname your name name", Signature(m))
}

func TestInputPrecedence(t *testing.T) {
	none := RoleSet{}
	tests := []struct {
		name string
		m    page.FieldMeta
		fill RoleSet
		want Role
	}{
		{"email by type", meta("input", "email", "x", "", "", ""), none, RoleEmail},
		{"email by signature", meta("input", "text", "", "", "Your e-mail address", ""), none, RoleEmail},
		{"email beats name keyword", meta("input", "text", "email_name", "", "", ""), none, RoleEmail},
		{"first name", meta("input", "text", "fname", "", "", ""), none, RoleFirstName},
		{"first via label", meta("input", "text", "", "", "", "First Name"), none, RoleFirstName},
		{"last name", meta("input", "text", "lname", "", "", ""), none, RoleLastName},
		{"full name", meta("input", "text", "name", "", "", ""), none, RoleFullName},
		{"full name guarded by company keyword", meta("input", "text", "company_name", "", "", ""), none, RoleCompany},
		{"business keyword", meta("input", "text", "business", "", "", ""), none, RoleCompany},
		{"phone by type", meta("input", "tel", "x", "", "", ""), none, RolePhone},
		{"phone by signature", meta("input", "text", "phone_number", "", "", ""), none, RolePhone},
		{"message textarea", meta("textarea", "", "message", "", "", ""), none, RoleMessage},
		{"enquiry textarea", meta("textarea", "", "", "", "Your enquiry", ""), none, RoleMessage},
		{"message input is not message role", meta("input", "text", "message", "", "", ""), none, RoleUnclassified},
		{"unknown", meta("input", "text", "xyz", "", "", ""), none, RoleUnclassified},
		{"email already filled", meta("input", "email", "", "", "", ""), RoleSet{RoleEmail: true}, RoleUnclassified},
		{"full name already filled", meta("input", "text", "name", "", "", ""), RoleSet{RoleFullName: true}, RoleUnclassified},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Input(tc.m, tc.fill))
		})
	}
}

func TestIsCountrySelect(t *testing.T) {
	assert.True(t, IsCountrySelect(meta("select", "", "country", "", "", "")))
	assert.True(t, IsCountrySelect(meta("select", "", "", "", "", "Phone prefix")))
	assert.True(t, IsCountrySelect(meta("SELECT", "", "", "user_location", "", "")))
	assert.False(t, IsCountrySelect(meta("select", "", "topic", "", "", "")))
	assert.False(t, IsCountrySelect(meta("input", "text", "country", "", "", "")))

	// Keyword-less select qualifies through dial-code-shaped options.
	withCodes := page.FieldMeta{Tag: "select", Name: "x", Options: []page.SelectOption{
		{Text: "UK (+44)", Value: "gb"},
		{Text: "DE (+49)", Value: "de"},
	}}
	assert.True(t, IsCountrySelect(withCodes))

	plain := page.FieldMeta{Tag: "select", Name: "x", Options: []page.SelectOption{
		{Text: "General", Value: "g"},
		{Text: "Support", Value: "s"},
	}}
	assert.False(t, IsCountrySelect(plain))
}

func TestResolveCountryOption(t *testing.T) {
	opts := []page.SelectOption{
		{Text: "-- please choose --", Value: ""},
		{Text: "Germany (+49)", Value: "de"},
		{Text: "United Kingdom (+44)", Value: "gb"},
	}

	opt, ok := ResolveCountryOption(opts, "united kingdom", "44")
	assert.True(t, ok)
	assert.Equal(t, "gb", opt.Value)

	// Country name absent: dial code as +<code> match.
	codes := []page.SelectOption{{Text: "+49", Value: "49"}, {Text: "+44", Value: "44"}}
	opt, ok = ResolveCountryOption(codes, "narnia", "44")
	assert.True(t, ok)
	assert.Equal(t, "44", opt.Value)

	// Bare code in the value attribute.
	opt, ok = ResolveCountryOption([]page.SelectOption{{Text: "UK", Value: "44"}}, "", "44")
	assert.True(t, ok)
	assert.Equal(t, "44", opt.Value)

	// First qualifying option wins.
	dup := []page.SelectOption{{Text: "UK (+44)", Value: "first"}, {Text: "GB +44", Value: "second"}}
	opt, ok = ResolveCountryOption(dup, "", "44")
	assert.True(t, ok)
	assert.Equal(t, "first", opt.Value)

	// No match leaves the select untouched.
	_, ok = ResolveCountryOption(opts, "narnia", "999")
	assert.False(t, ok)
}

func TestPickCheckbox(t *testing.T) {
	labels := []string{"Support", "Partnership", "Careers"}

	// Label found in the subject+message context.
	i, ok := PickCheckbox(labels, "partnership inquiry hello")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	// No context match falls back to a "sales" label.
	i, ok = PickCheckbox([]string{"Support", "Sales enquiries"}, "unrelated text")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	// Nothing qualifies.
	_, ok = PickCheckbox(labels, "unrelated text")
	assert.False(t, ok)

	// Empty labels never match an arbitrary context.
	_, ok = PickCheckbox([]string{"", "  "}, "anything")
	assert.False(t, ok)
}

func TestGroupKey(t *testing.T) {
	assert.Equal(t, "topics[]", GroupKey(meta("input", "checkbox", "topics[]", "t1", "", "Sales")))
	assert.Equal(t, "t1", GroupKey(meta("input", "checkbox", "", "t1", "", "Sales")))
	assert.Equal(t, "Sales", GroupKey(meta("input", "checkbox", "", "", "", "Sales")))
}

func TestSkipAndCheckable(t *testing.T) {
	assert.True(t, Skip(meta("input", "hidden", "csrf", "", "", "")))
	assert.True(t, Skip(meta("input", "Submit", "", "", "", "")))
	assert.False(t, Skip(meta("input", "text", "", "", "", "")))
	assert.True(t, IsCheckable(meta("input", "checkbox", "", "", "", "")))
	assert.True(t, IsCheckable(meta("input", "radio", "", "", "", "")))
	assert.False(t, IsCheckable(meta("input", "text", "", "", "", "")))
}
