package browser

import (
	"context"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/openreach/formpilot/internal/engine/page"
)

// Session is one browser tab implementing page.Page. It is not safe for
// concurrent use; the engine drives it from a single goroutine.
type Session struct {
	// tab carries the chromedp target; all CDP traffic must run on contexts
	// derived from it.
	tab context.Context
	log *zap.Logger
}

func newSession(tab context.Context, logger *zap.Logger) *Session {
	return &Session{tab: tab, log: logger.Named("session")}
}

// run executes chromedp actions on the tab context while honoring the
// caller's deadline. The caller context cannot be used directly because it
// does not carry the chromedp target.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx := s.tab
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.tab, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (s *Session) eval(ctx context.Context, script string, out interface{}) error {
	return s.run(ctx, chromedp.Evaluate(script, out))
}

// Navigate loads the URL and waits for the body to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.log.Debug("navigating", zap.String("url", url))
	return s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// CurrentURL reports the tab's location after redirects.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

// Frames returns the main frame followed by every embedded iframe.
// Cross-origin frames stay in the list; their scripts see a null document
// and report themselves empty.
func (s *Session) Frames(ctx context.Context) ([]page.Frame, error) {
	var count int
	if err := s.eval(ctx, frameCountScript, &count); err != nil {
		return nil, err
	}
	frames := make([]page.Frame, 0, count+1)
	frames = append(frames, &frame{s: s, root: frameRootExpr(-1)})
	for i := 0; i < count; i++ {
		frames = append(frames, &frame{s: s, root: frameRootExpr(i)})
	}
	return frames, nil
}

// HTML returns the serialized main document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Links returns every anchor of the main document with its rendered state.
func (s *Session) Links(ctx context.Context) ([]page.Link, error) {
	var links []page.Link
	if err := s.eval(ctx, linksScript, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// Screenshot captures the full page as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return nil, err
	}
	return buf, nil
}
