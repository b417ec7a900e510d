// Package obstacle dismisses cookie/consent banners and chat-widget overlays
// that would otherwise intercept clicks or hide the form. The whole stage is
// best effort: every probe failure means "not present, move on" and nothing
// here ever propagates an error to the caller.
package obstacle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openreach/formpilot/internal/engine/page"
)

// vocabulary matches affirmative/dismissive accessible names; a site may use
// any of these on its consent or chat overlay controls.
const vocabulary = `accept|agree|close|dismiss`

// fallbackSelectors covers common cookie/accept/reject/close button patterns
// plus generic "close" class/attribute patterns. Walked in order; every match
// that becomes visible gets activated, because independent overlays coexist.
var fallbackSelectors = []string{
	"#onetrust-accept-btn-handler",
	"#hs-eu-confirmation-button",
	".cc-allow",
	".cc-dismiss",
	"button[id*='cookie'][id*='accept']",
	"button[class*='cookie'][class*='accept']",
	"[class*='cookie'] button[class*='accept']",
	"[class*='cookie'] button[class*='agree']",
	"[class*='consent'] button[class*='accept']",
	"button[class*='reject-all']",
	"button[aria-label='Close']",
	"button[class*='modal'][class*='close']",
	"[class*='popup'] [class*='close']",
	"[class*='chat'] [class*='close']",
	"[data-dismiss]",
}

// Config tunes the probe windows and the post-activation settle delay.
type Config struct {
	// AccessibleProbe bounds the visibility wait for the accessible-name
	// sweep (strategy 1).
	AccessibleProbe time.Duration
	// SelectorProbe bounds the per-selector visibility wait (strategies 2-3).
	SelectorProbe time.Duration
	// Settle is slept after each successful activation so layout and
	// animation can finish.
	Settle time.Duration
}

// DefaultConfig mirrors the probe windows the engine was tuned with: a site
// with no overlay must pay at most the short probe costs.
func DefaultConfig() Config {
	return Config{
		AccessibleProbe: 1500 * time.Millisecond,
		SelectorProbe:   500 * time.Millisecond,
		Settle:          400 * time.Millisecond,
	}
}

// Handler dismisses overlays on a page.
type Handler struct {
	cfg Config
	log *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(cfg Config, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, log: logger.Named("obstacle")}
}

// Dismiss runs all three strategies in order against the page and returns the
// number of overlays activated. It keeps going after a match since multiple
// independent overlays may be stacked. Never returns an error.
func (h *Handler) Dismiss(ctx context.Context, p page.Page) int {
	frames, err := p.Frames(ctx)
	if err != nil || len(frames) == 0 {
		h.log.Debug("no frames to sweep", zap.Error(err))
		return 0
	}
	main := frames[0]
	dismissed := 0

	// Strategy 1: accessible-name vocabulary on the main frame.
	if ok, err := main.ClickAccessible(ctx, vocabulary, h.cfg.AccessibleProbe); err != nil {
		h.log.Debug("accessible-name sweep failed", zap.Error(err))
	} else if ok {
		dismissed++
		h.settle(ctx)
	}

	// Strategy 2: ordered CSS fallback selectors.
	for _, sel := range fallbackSelectors {
		ok, err := main.ClickVisible(ctx, sel, h.cfg.SelectorProbe)
		if err != nil {
			h.log.Debug("fallback selector failed", zap.String("selector", sel), zap.Error(err))
			continue
		}
		if ok {
			h.log.Debug("dismissed overlay", zap.String("selector", sel))
			dismissed++
			h.settle(ctx)
		}
	}

	// Strategy 3: close controls inside embedded frames (chat widgets render
	// their close button in their own iframe).
	for _, fr := range frames[1:] {
		ok, err := fr.ClickAccessible(ctx, vocabulary, h.cfg.SelectorProbe)
		if err != nil {
			h.log.Debug("frame close sweep failed", zap.Error(err))
			continue
		}
		if ok {
			dismissed++
			h.settle(ctx)
		}
	}

	if dismissed > 0 {
		h.log.Info("dismissed page obstacles", zap.Int("count", dismissed))
	}
	return dismissed
}

func (h *Handler) settle(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(h.cfg.Settle):
	}
}
