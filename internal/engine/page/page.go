// Package page defines the browser-facing abstraction the engine operates
// against. The chromedp implementation lives in internal/browser; tests inject
// fakes, keeping the fallback ladder and the classifier testable without a
// live browser.
package page

import (
	"context"
	"time"
)

// SelectOption is one <option> of a select element.
type SelectOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// FieldMeta is the raw material a field signature is derived from. All text
// is reported as found in the document; normalization happens in classify.
type FieldMeta struct {
	Tag         string         `json:"tag"`
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	ID          string         `json:"id"`
	Placeholder string         `json:"placeholder"`
	Label       string         `json:"label"`
	Options     []SelectOption `json:"options,omitempty"`
}

// Field is one interactive element inside a frame. Handles are owned by the
// browser session and valid only for the current page load.
type Field interface {
	Meta() FieldMeta
	// SetValue types/sets a text value and fires the input events client-side
	// scripts listen for.
	SetValue(ctx context.Context, value string) error
	// SelectValue picks the option with the given value attribute.
	SelectValue(ctx context.Context, value string) error
	// Check toggles a checkbox or radio on.
	Check(ctx context.Context) error
}

// Frame is one browsing frame: the main document or an embedded same-origin
// iframe. Cross-origin frames are never surfaced.
type Frame interface {
	// CountInteractive counts inputs (excluding type=hidden), textareas and
	// selects in the frame.
	CountInteractive(ctx context.Context) (int, error)
	// HasForm reports whether the frame document contains a <form> element.
	HasForm(ctx context.Context) (bool, error)
	// Fields enumerates the interactive elements of the frame's form root
	// (outermost <form> if present, else the document body).
	Fields(ctx context.Context) ([]Field, error)
	// Selects enumerates every <select> in the frame document, regardless of
	// the form root. Country/dial selects are handled before anything else.
	Selects(ctx context.Context) ([]Field, error)
	// Matches reports whether any element matches the CSS selector.
	Matches(ctx context.Context, selector string) (bool, error)
	// ClickVisible clicks the first selector match once it becomes visible
	// within the probe window. Returns false when nothing matched or nothing
	// became visible in time.
	ClickVisible(ctx context.Context, selector string, probe time.Duration) (bool, error)
	// ClickAccessible clicks the first control whose accessible name matches
	// the (case-insensitive) pattern and is visible within the probe window.
	ClickAccessible(ctx context.Context, namePattern string, probe time.Duration) (bool, error)
}

// Link is an anchor as seen on the current page.
type Link struct {
	Href    string `json:"href"`
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// Page is one driven browser page. Every method is a suspension point against
// the browser's event loop; timeouts ride on the context.
type Page interface {
	Navigate(ctx context.Context, url string) error
	// CurrentURL reports the page location after redirects.
	CurrentURL(ctx context.Context) (string, error)
	// Frames returns the main frame first, then embedded same-origin frames.
	// Recomputed on every call; never cached across navigations.
	Frames(ctx context.Context) ([]Frame, error)
	// HTML captures the serialized current document.
	HTML(ctx context.Context) (string, error)
	// Links enumerates anchors with their rendered state.
	Links(ctx context.Context) ([]Link, error)
	// Screenshot captures a full-page PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}
