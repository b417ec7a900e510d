// Package engine defines the outcome record shared by the navigation
// controller and its callers. One engine invocation produces exactly one
// Outcome; the Method tag is the single source of truth for downstream
// branching.
package engine

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Method identifies how a run terminated.
type Method string

const (
	// MethodFormFilledReady: a form was filled completely (email + message
	// satisfied, no CAPTCHA) and is safe to submit.
	MethodFormFilledReady Method = "form_filled_ready"
	// MethodFormWithCaptcha: a candidate form carried a CAPTCHA marker and no
	// later candidate or fallback succeeded.
	MethodFormWithCaptcha Method = "form_with_captcha"
	// MethodIncompleteForm: fields were filled but the required roles were
	// never all satisfied anywhere in the fallback chain.
	MethodIncompleteForm Method = "incomplete_form"
	// MethodEmailFound: no fillable form, but at least one contact address was
	// harvested. Materially weaker than form_filled_ready - nothing was
	// submitted, only discovered.
	MethodEmailFound Method = "email_found"
	// MethodNotFound: no form, no contact page, no address anywhere.
	MethodNotFound Method = "not_found"
	// MethodError: navigation or interaction failed in a way the fallback
	// ladder could not absorb.
	MethodError Method = "error"
)

// ContactInfo carries passively harvested contact data.
type ContactInfo struct {
	Emails []string `json:"emails"`
}

// Outcome is the terminal record of one engine invocation.
type Outcome struct {
	Success       bool         `json:"success"`
	Method        Method       `json:"method"`
	FieldsFilled  int          `json:"fields_filled,omitempty"`
	ScreenshotURL string       `json:"screenshot_url,omitempty"`
	ContactInfo   *ContactInfo `json:"contact_info,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// JSON renders the outcome for the caller contract (stdout, job queues).
func (o Outcome) JSON() ([]byte, error) {
	return json.Marshal(o)
}

// ErrorOutcome wraps a terminal failure message.
func ErrorOutcome(err error) Outcome {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Outcome{Success: false, Method: MethodError, Error: msg}
}
