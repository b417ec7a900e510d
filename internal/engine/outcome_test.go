package engine

import (
	stdjson "encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeJSONShape(t *testing.T) {
	out := Outcome{
		Success:       true,
		Method:        MethodFormFilledReady,
		FieldsFilled:  3,
		ScreenshotURL: "/shots/ready.png",
	}

	data, err := out.JSON()
	require.NoError(t, err)

	var actual map[string]interface{}
	require.NoError(t, stdjson.Unmarshal(data, &actual))

	expected := map[string]interface{}{
		"success":        true,
		"method":         "form_filled_ready",
		"fields_filled":  float64(3),
		"screenshot_url": "/shots/ready.png",
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("JSON mismatch. Diff:\n%s", diff)
	}
}

func TestOutcomeJSONOmitsEmptyFields(t *testing.T) {
	out := Outcome{Success: false, Method: MethodNotFound}

	data, err := out.JSON()
	require.NoError(t, err)

	var actual map[string]interface{}
	require.NoError(t, stdjson.Unmarshal(data, &actual))

	expected := map[string]interface{}{
		"success": false,
		"method":  "not_found",
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("JSON mismatch. Diff:\n%s", diff)
	}
}

func TestOutcomeJSONContactInfo(t *testing.T) {
	out := Outcome{
		Success:     true,
		Method:      MethodEmailFound,
		ContactInfo: &ContactInfo{Emails: []string{"sales@acme.com"}},
	}

	data, err := out.JSON()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"success":true,"method":"email_found","contact_info":{"emails":["sales@acme.com"]}}`,
		string(data))
}

func TestErrorOutcome(t *testing.T) {
	out := ErrorOutcome(errors.New("net::ERR_NAME_NOT_RESOLVED"))

	assert.False(t, out.Success)
	assert.Equal(t, MethodError, out.Method)
	assert.Equal(t, "net::ERR_NAME_NOT_RESOLVED", out.Error)

	assert.Equal(t, "unknown error", ErrorOutcome(nil).Error)
}
