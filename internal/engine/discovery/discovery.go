// Package discovery scans every frame of a loaded page for element clusters
// that look like a form and ranks the candidates. Candidates hold non-owning
// frame references valid only for the current page load; they are recomputed
// on every navigation and never cached.
package discovery

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/openreach/formpilot/internal/engine/page"
)

// Candidate is a frame that plausibly hosts a lead form.
type Candidate struct {
	Frame page.Frame
	// FieldCount is the number of interactive elements (inputs excluding
	// hidden, textareas, selects) in the frame.
	FieldCount int
	// HasForm reports whether an actual <form> element is present; when
	// false, the frame's document body serves as the form root, tolerating
	// JS-built forms without a form tag.
	HasForm bool
}

// Config tunes the retry policy and the viability threshold.
type Config struct {
	// MinFields is the minimum interactive-element count for a viable frame.
	MinFields int
	// Attempts is how often discovery re-scans when a pass yields nothing,
	// tolerating client-side rendering delays.
	Attempts int
	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration
}

// DefaultConfig returns the tuned discovery policy.
func DefaultConfig() Config {
	return Config{MinFields: 3, Attempts: 3, RetryDelay: 2 * time.Second}
}

// Embedded form builders render into recognizable containers. Spotting one
// explains in the logs why a frame qualified.
var embeddedContainers = []string{"div.hs-form", "iframe[src*='hsforms']"}

// Discoverer finds form candidates on a page.
type Discoverer struct {
	cfg Config
	log *zap.Logger
}

// New builds a Discoverer.
func New(cfg Config, logger *zap.Logger) *Discoverer {
	return &Discoverer{cfg: cfg, log: logger.Named("discovery")}
}

// Discover enumerates all frames and returns viable candidates ranked
// descending by interactive-element count: the richest-looking form is tried
// first since dense forms are more likely the genuine lead-capture form
// rather than a newsletter widget. When a pass yields nothing the scan is
// repeated up to cfg.Attempts times (+1 with extraRetry, used on contact
// pages) with a fixed delay in between. An empty result is not an error.
func (d *Discoverer) Discover(ctx context.Context, p page.Page, extraRetry bool) []Candidate {
	attempts := d.cfg.Attempts
	if extraRetry {
		attempts++
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		candidates := d.scan(ctx, p)
		if len(candidates) > 0 {
			d.log.Info("form candidates found",
				zap.Int("count", len(candidates)),
				zap.Int("attempt", attempt),
				zap.Int("top_fields", candidates[0].FieldCount))
			return candidates
		}
		if attempt == attempts {
			break
		}
		d.log.Debug("no candidates yet, retrying", zap.Int("attempt", attempt))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(d.cfg.RetryDelay):
		}
	}
	return nil
}

func (d *Discoverer) scan(ctx context.Context, p page.Page) []Candidate {
	frames, err := p.Frames(ctx)
	if err != nil {
		d.log.Debug("frame enumeration failed", zap.Error(err))
		return nil
	}

	var candidates []Candidate
	for _, fr := range frames {
		count, err := fr.CountInteractive(ctx)
		if err != nil || count < d.cfg.MinFields {
			continue
		}
		hasForm, err := fr.HasForm(ctx)
		if err != nil {
			continue
		}
		for _, sel := range embeddedContainers {
			if ok, _ := fr.Matches(ctx, sel); ok {
				d.log.Info("embedded form container present", zap.String("container", sel))
				break
			}
		}
		candidates = append(candidates, Candidate{Frame: fr, FieldCount: count, HasForm: hasForm})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FieldCount > candidates[j].FieldCount
	})
	return candidates
}
