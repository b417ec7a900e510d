// Package enginetest provides in-memory Page/Frame/Field fakes so the engine
// components and the navigation state machine can be exercised without a
// browser process.
package enginetest

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/openreach/formpilot/internal/engine/page"
)

// Field is a scriptable page.Field recording every mutation applied to it.
type Field struct {
	M page.FieldMeta

	Value    string
	Selected string
	Checked  bool
	SetErr   error
}

func (f *Field) Meta() page.FieldMeta { return f.M }

func (f *Field) SetValue(_ context.Context, v string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.Value = v
	return nil
}

func (f *Field) SelectValue(_ context.Context, v string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.Selected = v
	return nil
}

func (f *Field) Check(_ context.Context) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.Checked = true
	return nil
}

// Frame is a scriptable page.Frame.
type Frame struct {
	FormPresent bool
	FieldList   []*Field
	SelectList  []*Field
	// Selectors that Matches reports true for (substring match on the query).
	MatchSelectors []string
	// Accessible names and selectors that can be "clicked"; each hit is
	// consumed so repeated sweeps see a dismissed overlay.
	AccessibleNames []string
	VisibleTargets  []string
	Err             error

	Clicks []string
}

func (f *Frame) CountInteractive(context.Context) (int, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return len(f.FieldList), nil
}

func (f *Frame) HasForm(context.Context) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	return f.FormPresent, nil
}

func (f *Frame) Fields(context.Context) ([]page.Field, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]page.Field, len(f.FieldList))
	for i, fl := range f.FieldList {
		out[i] = fl
	}
	return out, nil
}

func (f *Frame) Selects(context.Context) ([]page.Field, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]page.Field, len(f.SelectList))
	for i, fl := range f.SelectList {
		out[i] = fl
	}
	return out, nil
}

func (f *Frame) Matches(_ context.Context, selector string) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	for _, m := range f.MatchSelectors {
		if strings.Contains(selector, m) {
			return true, nil
		}
	}
	return false, nil
}

func (f *Frame) ClickVisible(_ context.Context, selector string, _ time.Duration) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	for i, target := range f.VisibleTargets {
		if strings.Contains(selector, target) {
			f.Clicks = append(f.Clicks, selector)
			f.VisibleTargets = append(f.VisibleTargets[:i], f.VisibleTargets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *Frame) ClickAccessible(_ context.Context, namePattern string, _ time.Duration) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	re, err := regexp.Compile("(?i)" + namePattern)
	if err != nil {
		return false, err
	}
	for i, name := range f.AccessibleNames {
		if re.MatchString(name) {
			f.Clicks = append(f.Clicks, "a11y:"+name)
			f.AccessibleNames = append(f.AccessibleNames[:i], f.AccessibleNames[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// PageState is one navigable location served by a fake Page.
type PageState struct {
	Frames   []*Frame
	HTML     string
	LinkList []page.Link
	NavErr   error
	// Hang makes Navigate block until the caller's context expires,
	// simulating a page whose load event never fires.
	Hang bool
}

// Page is a scriptable page.Page routing navigations to PageStates by URL.
type Page struct {
	States map[string]*PageState
	// DefaultState serves URLs absent from States; nil means navigation fails.
	DefaultState *PageState

	Current     string
	Navigations []string
	Shots       int
}

var errNoRoute = errors.New("navigation failed: no route to host")

func (p *Page) Navigate(ctx context.Context, url string) error {
	p.Navigations = append(p.Navigations, url)
	st := p.stateFor(url)
	if st == nil {
		return errNoRoute
	}
	if st.Hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if st.NavErr != nil {
		return st.NavErr
	}
	p.Current = url
	return nil
}

func (p *Page) stateFor(url string) *PageState {
	if st, ok := p.States[url]; ok {
		return st
	}
	return p.DefaultState
}

func (p *Page) current() *PageState {
	if p.Current == "" {
		return nil
	}
	return p.stateFor(p.Current)
}

func (p *Page) CurrentURL(context.Context) (string, error) {
	return p.Current, nil
}

func (p *Page) Frames(context.Context) ([]page.Frame, error) {
	st := p.current()
	if st == nil {
		return nil, errors.New("no page loaded")
	}
	out := make([]page.Frame, len(st.Frames))
	for i, fr := range st.Frames {
		out[i] = fr
	}
	return out, nil
}

func (p *Page) HTML(context.Context) (string, error) {
	st := p.current()
	if st == nil {
		return "", errors.New("no page loaded")
	}
	return st.HTML, nil
}

func (p *Page) Links(context.Context) ([]page.Link, error) {
	st := p.current()
	if st == nil {
		return nil, errors.New("no page loaded")
	}
	return st.LinkList, nil
}

func (p *Page) Screenshot(context.Context) ([]byte, error) {
	p.Shots++
	return []byte("png"), nil
}
