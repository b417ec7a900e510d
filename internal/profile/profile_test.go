package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, input := range []string{"", "   ", "not json at all", "{broken"} {
		p := Load(input)
		assert.Equal(t, DefaultCompany, p.CompanyName, "input %q", input)
		assert.Equal(t, DefaultEmail, p.Email, "input %q", input)
		assert.Equal(t, DefaultSubject, p.Subject, "input %q", input)
		assert.Equal(t, DefaultMessage, p.Message, "input %q", input)
	}
}

func TestLoadLiteral(t *testing.T) {
	p := Load(`{"company_name":"Acme Ltd","contact_person":"Ada Lovelace","email":"ada@acme.test","country":"united kingdom"}`)
	assert.Equal(t, "Acme Ltd", p.CompanyName)
	assert.Equal(t, "ada@acme.test", p.Email)
	assert.Equal(t, "united kingdom", p.Country)
	// Unset fields still get defaults.
	assert.Equal(t, DefaultSubject, p.Subject)
	assert.Equal(t, DefaultMessage, p.Message)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sender.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"email":"ops@acme.test","message":"Hi"}`), 0o644))

	p := Load(path)
	assert.Equal(t, "ops@acme.test", p.Email)
	assert.Equal(t, "Hi", p.Message)
	assert.Equal(t, DefaultCompany, p.CompanyName)

	// Missing file degrades to defaults.
	p = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, DefaultEmail, p.Email)
}

func TestNameFallbacks(t *testing.T) {
	p := Profile{ContactPerson: "Grace Brewster Hopper"}
	assert.Equal(t, "Grace", p.First())
	assert.Equal(t, "Brewster Hopper", p.Last())
	assert.Equal(t, "Grace Brewster Hopper", p.FullName())

	p = Profile{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada", p.First())
	assert.Equal(t, "Lovelace", p.Last())
	assert.Equal(t, "Ada Lovelace", p.FullName())

	p = Profile{ContactPerson: "Cher"}
	assert.Equal(t, "Cher", p.First())
	assert.Equal(t, "", p.Last())

	p = Profile{}
	assert.Equal(t, "", p.First())
	assert.Equal(t, "", p.Last())
	assert.Equal(t, "", p.FullName())
}
