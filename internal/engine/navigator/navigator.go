// Package navigator orchestrates one end-to-end run as an explicit state
// machine: landing page, homepage fallback, contact-page fallback, mailto
// extraction. A genuine lead form on the landing page is tried first since
// that is the cheapest and most common case; a dedicated contact page comes
// second; the public mailto link is the weakest but always-available signal.
package navigator

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openreach/formpilot/internal/engine"
	"github.com/openreach/formpilot/internal/engine/captcha"
	"github.com/openreach/formpilot/internal/engine/discovery"
	"github.com/openreach/formpilot/internal/engine/fill"
	"github.com/openreach/formpilot/internal/engine/obstacle"
	"github.com/openreach/formpilot/internal/engine/page"
	"github.com/openreach/formpilot/internal/harvest"
)

// ScreenshotSaver persists a capture and returns its path.
type ScreenshotSaver interface {
	Save(label string, png []byte) (string, error)
}

// Config tunes navigation timing and the fallback behavior.
type Config struct {
	// NavigationTimeout bounds the initial target navigation. Expiry is a
	// terminal error; slow sites that never settle are not worth chasing.
	NavigationTimeout time.Duration
	// Settle is the pause after each navigation, giving late JS (form
	// builders, consent managers) time to render.
	Settle time.Duration
	// ProbeContactPaths enables trying conventional contact paths when the
	// homepage carries no qualifying link.
	ProbeContactPaths bool
	// ContactPaths are the conventional paths probed, in order.
	ContactPaths []string
}

// DefaultConfig returns the tuned navigation policy.
func DefaultConfig() Config {
	return Config{
		NavigationTimeout: 60 * time.Second,
		Settle:            7 * time.Second,
		ProbeContactPaths: true,
		ContactPaths:      []string{"/contact", "/contact-us"},
	}
}

// Navigator drives the fallback ladder to exactly one Outcome.
type Navigator struct {
	cfg       Config
	page      page.Page
	obstacles *obstacle.Handler
	discover  *discovery.Discoverer
	captchas  *captcha.Detector
	filler    *fill.Filler
	shots     ScreenshotSaver
	log       *zap.Logger
}

// New wires the pipeline components together.
func New(cfg Config, p page.Page, obstacles *obstacle.Handler, discover *discovery.Discoverer,
	captchas *captcha.Detector, filler *fill.Filler, shots ScreenshotSaver, logger *zap.Logger) *Navigator {
	return &Navigator{
		cfg:       cfg,
		page:      p,
		obstacles: obstacles,
		discover:  discover,
		captchas:  captchas,
		filler:    filler,
		shots:     shots,
		log:       logger.Named("navigator"),
	}
}

type state int

const (
	stateTarget state = iota
	stateHomepage
	stateContact
	stateMailto
)

// runState accumulates what the ladder has seen so the terminal outcome can
// report the most informative failure.
type runState struct {
	captchaSeen bool
	fillTried   bool
	bestFill    int
	contactURL  string
}

// Run executes the full ladder for one target. It always returns exactly one
// Outcome and never panics out of the state loop; only the initial target
// navigation is terminal, later navigation failures degrade to the next
// fallback stage.
func (n *Navigator) Run(ctx context.Context, target string) engine.Outcome {
	out := n.run(ctx, target)
	n.log.Info("run finished",
		zap.String("target", target),
		zap.String("method", string(out.Method)),
		zap.Bool("success", out.Success))
	return out
}

func (n *Navigator) run(ctx context.Context, target string) engine.Outcome {
	var r runState
	st := stateTarget
	for {
		switch st {
		case stateTarget:
			navCtx, cancel := context.WithTimeout(ctx, n.cfg.NavigationTimeout)
			err := n.page.Navigate(navCtx, target)
			cancel()
			if err != nil {
				n.log.Warn("target navigation failed", zap.String("url", target), zap.Error(err))
				return engine.ErrorOutcome(fmt.Errorf("failed to navigate to %s: %w", target, err))
			}
			n.prepare(ctx)
			if out, done := n.tryFill(ctx, false, &r); done {
				return out
			}
			st = stateHomepage

		case stateHomepage:
			origin, err := originOf(target)
			if err != nil {
				st = stateMailto
				continue
			}
			if err := n.navigate(ctx, origin); err != nil {
				st = stateMailto
				continue
			}
			n.prepare(ctx)
			if link, ok := n.contactLink(ctx, origin); ok {
				r.contactURL = link
				st = stateContact
				continue
			}
			if n.cfg.ProbeContactPaths {
				if out, done := n.probeContactPaths(ctx, origin, &r); done {
					return out
				}
			}
			st = stateMailto

		case stateContact:
			n.log.Info("contact link found", zap.String("url", r.contactURL))
			if err := n.navigate(ctx, r.contactURL); err != nil {
				st = stateMailto
				continue
			}
			n.prepare(ctx)
			if out, done := n.tryFill(ctx, true, &r); done {
				return out
			}
			st = stateMailto

		case stateMailto:
			return n.extractMailto(ctx, &r)
		}
	}
}

// prepare runs the post-navigation ritual: dismiss overlays, then settle so
// late-rendering widgets finish before discovery scans the frames.
func (n *Navigator) prepare(ctx context.Context) {
	n.obstacles.Dismiss(ctx, n.page)
	select {
	case <-ctx.Done():
	case <-time.After(n.cfg.Settle):
	}
}

// navigate loads a URL under the configured navigation timeout. Fallback
// pages get the same hard bound as the target: a load event that never fires
// must degrade the ladder, not stall it.
func (n *Navigator) navigate(ctx context.Context, target string) error {
	navCtx, cancel := context.WithTimeout(ctx, n.cfg.NavigationTimeout)
	defer cancel()
	if err := n.page.Navigate(navCtx, target); err != nil {
		n.log.Warn("navigation failed, degrading", zap.String("url", target), zap.Error(err))
		return err
	}
	return nil
}

// tryFill walks the ranked candidates. A CAPTCHA hit disqualifies its
// candidate without filling anything; the hit is only reported later if no
// candidate or fallback succeeds. The first fill-complete candidate wins.
func (n *Navigator) tryFill(ctx context.Context, extraRetry bool, r *runState) (engine.Outcome, bool) {
	candidates := n.discover.Discover(ctx, n.page, extraRetry)
	for _, cand := range candidates {
		if n.captchas.Present(ctx, cand.Frame) {
			r.captchaSeen = true
			continue
		}
		res, err := n.filler.Fill(ctx, cand)
		if err != nil {
			n.log.Debug("candidate fill aborted", zap.Error(err))
			continue
		}
		if res.FieldsFilled > 0 {
			r.fillTried = true
		}
		if res.FieldsFilled > r.bestFill {
			r.bestFill = res.FieldsFilled
		}
		if res.Complete {
			return engine.Outcome{
				Success:       true,
				Method:        engine.MethodFormFilledReady,
				FieldsFilled:  res.FieldsFilled,
				ScreenshotURL: n.capture(ctx, "ready"),
			}, true
		}
	}
	return engine.Outcome{}, false
}

// probeContactPaths tries the conventional contact paths directly. A probe
// that lands on a form-less page navigates back to the origin so mailto
// extraction still sees the homepage.
func (n *Navigator) probeContactPaths(ctx context.Context, origin string, r *runState) (engine.Outcome, bool) {
	for _, path := range n.cfg.ContactPaths {
		probe := strings.TrimRight(origin, "/") + path
		n.log.Debug("probing contact path", zap.String("url", probe))
		if err := n.navigate(ctx, probe); err != nil {
			continue
		}
		n.prepare(ctx)
		if out, done := n.tryFill(ctx, true, r); done {
			return out, true
		}
		if err := n.navigate(ctx, origin); err != nil {
			break
		}
	}
	return engine.Outcome{}, false
}

// contactLink returns the first rendered anchor whose href or visible text
// looks contact-like, resolved against the page origin.
func (n *Navigator) contactLink(ctx context.Context, origin string) (string, bool) {
	links, err := n.page.Links(ctx)
	if err != nil {
		return "", false
	}
	base, err := url.Parse(origin)
	if err != nil {
		return "", false
	}
	for _, l := range links {
		if !l.Visible || !contactLike(l) {
			continue
		}
		ref, err := url.Parse(l.Href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		return resolved.String(), true
	}
	return "", false
}

func contactLike(l page.Link) bool {
	href := strings.ToLower(l.Href)
	text := strings.ToLower(l.Text)
	if strings.HasPrefix(href, "mailto:") {
		return false
	}
	return strings.Contains(href, "contact") ||
		strings.Contains(text, "contact") ||
		strings.Contains(text, "get in touch")
}

// extractMailto is the bottom of the ladder. When even that fails, the most
// informative failure seen along the way wins: a CAPTCHA block over an
// incomplete fill over a plain not-found.
func (n *Navigator) extractMailto(ctx context.Context, r *runState) engine.Outcome {
	if html, err := n.page.HTML(ctx); err == nil {
		if emails := harvest.Emails(html); len(emails) > 0 {
			n.log.Info("contact addresses harvested", zap.Int("count", len(emails)))
			return engine.Outcome{
				Success:     true,
				Method:      engine.MethodEmailFound,
				ContactInfo: &engine.ContactInfo{Emails: emails},
			}
		}
	}
	if r.captchaSeen {
		return engine.Outcome{Success: false, Method: engine.MethodFormWithCaptcha}
	}
	if r.fillTried {
		return engine.Outcome{
			Success:      false,
			Method:       engine.MethodIncompleteForm,
			FieldsFilled: r.bestFill,
		}
	}
	return engine.Outcome{
		Success:       false,
		Method:        engine.MethodNotFound,
		ScreenshotURL: n.capture(ctx, "not_found"),
	}
}

// capture is best effort; a failed screenshot never changes the outcome.
func (n *Navigator) capture(ctx context.Context, label string) string {
	png, err := n.page.Screenshot(ctx)
	if err != nil {
		n.log.Warn("screenshot capture failed", zap.Error(err))
		return ""
	}
	path, err := n.shots.Save(label, png)
	if err != nil {
		n.log.Warn("screenshot save failed", zap.Error(err))
		return ""
	}
	return path
}

// originOf reduces a target URL to scheme://host.
func originOf(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("target url %q has no origin", target)
	}
	return u.Scheme + "://" + u.Host, nil
}
