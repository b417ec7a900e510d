package browser

import (
	"context"
	"time"

	"github.com/openreach/formpilot/internal/engine/page"
)

const clickPollInterval = 100 * time.Millisecond

// frame implements page.Frame against one document of the tab, addressed by
// a root expression evaluated fresh on every call.
type frame struct {
	s    *Session
	root string
}

func (f *frame) CountInteractive(ctx context.Context) (int, error) {
	var count int
	if err := f.s.eval(ctx, countInteractiveScript(f.root), &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (f *frame) HasForm(ctx context.Context) (bool, error) {
	var has bool
	if err := f.s.eval(ctx, hasFormScript(f.root), &has); err != nil {
		return false, err
	}
	return has, nil
}

// Fields snapshots the candidate's field set: the outermost form when the
// frame has one, else the whole body. The returned handles reference the
// registry built by this snapshot and go stale on the next snapshot or
// navigation, matching the candidate lifetime rules.
func (f *frame) Fields(ctx context.Context) ([]page.Field, error) {
	metas, err := f.snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	fields := make([]page.Field, len(metas))
	for i, m := range metas {
		fields[i] = &element{frame: f, index: i, meta: m}
	}
	return fields, nil
}

// Selects returns only the select elements of a fresh frame-wide snapshot,
// keeping their registry indices so actions address the right node. Country
// and prefix dropdowns often sit outside the form element, so this pass is
// deliberately not form-scoped.
func (f *frame) Selects(ctx context.Context) ([]page.Field, error) {
	metas, err := f.snapshot(ctx, false)
	if err != nil {
		return nil, err
	}
	var selects []page.Field
	for i, m := range metas {
		if m.Tag == "select" {
			selects = append(selects, &element{frame: f, index: i, meta: m})
		}
	}
	return selects, nil
}

func (f *frame) snapshot(ctx context.Context, formScoped bool) ([]page.FieldMeta, error) {
	var metas []page.FieldMeta
	if err := f.s.eval(ctx, snapshotScript(f.root, formScoped), &metas); err != nil {
		return nil, err
	}
	return metas, nil
}

func (f *frame) Matches(ctx context.Context, selector string) (bool, error) {
	var matched bool
	if err := f.s.eval(ctx, matchesScript(f.root, selector), &matched); err != nil {
		return false, err
	}
	return matched, nil
}

// ClickVisible clicks the first rendered element matching the selector,
// polling within the probe window for late-rendering overlays. An absent
// element returns immediately; a present-but-hidden one is re-polled.
func (f *frame) ClickVisible(ctx context.Context, selector string, probe time.Duration) (bool, error) {
	return f.pollClick(ctx, probe, func() string {
		return clickVisibleScript(f.root, selector)
	})
}

// ClickAccessible clicks the first rendered control whose accessible name
// matches the pattern, with the same polling rules as ClickVisible.
func (f *frame) ClickAccessible(ctx context.Context, namePattern string, probe time.Duration) (bool, error) {
	return f.pollClick(ctx, probe, func() string {
		return clickAccessibleScript(f.root, namePattern)
	})
}

func (f *frame) pollClick(ctx context.Context, probe time.Duration, script func() string) (bool, error) {
	deadline := time.Now().Add(probe)
	for {
		var result string
		if err := f.s.eval(ctx, script(), &result); err != nil {
			return false, err
		}
		switch result {
		case "clicked":
			return true, nil
		case "absent":
			return false, nil
		}
		if !time.Now().Before(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(clickPollInterval):
		}
	}
}
