package browser

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// The engine only reads DOM structure, so decorative payloads are pure cost.
var blockedResourceTypes = map[network.ResourceType]bool{
	network.ResourceTypeImage: true,
	network.ResourceTypeMedia: true,
	network.ResourceTypeFont:  true,
}

const pausedRequestTimeout = 2 * time.Second

// enableAssetBlocking turns on fetch-domain interception and resolves every
// paused request: blocked types fail, everything else continues untouched.
func (s *Session) enableAssetBlocking() error {
	chromedp.ListenTarget(s.tab, func(ev interface{}) {
		if event, ok := ev.(*fetch.EventRequestPaused); ok {
			// Resolve off the event goroutine; CDP commands from inside the
			// listener would deadlock.
			go s.resolvePausedRequest(event)
		}
	})
	return chromedp.Run(s.tab, fetch.Enable())
}

func (s *Session) resolvePausedRequest(event *fetch.EventRequestPaused) {
	cmdCtx, cancel := context.WithTimeout(s.tab, pausedRequestTimeout)
	defer cancel()
	c := chromedp.FromContext(cmdCtx)
	if c == nil || c.Target == nil {
		return
	}
	exec := cdp.WithExecutor(cmdCtx, c.Target)

	if blockedResourceTypes[event.ResourceType] {
		if err := fetch.FailRequest(event.RequestID, network.ErrorReasonBlockedByClient).Do(exec); err != nil {
			s.log.Debug("failed to block request",
				zap.String("url", event.Request.URL), zap.Error(err))
		}
		return
	}
	if err := fetch.ContinueRequest(event.RequestID).Do(exec); err != nil {
		// A request stuck in paused state hangs the load; failing it is the
		// lesser evil.
		_ = fetch.FailRequest(event.RequestID, network.ErrorReasonAborted).Do(exec)
	}
}
