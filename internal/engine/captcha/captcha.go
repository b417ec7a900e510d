// Package captcha inspects a form frame for known challenge markers. A hit is
// terminal for that candidate: the engine must not fill, must not submit and
// must not guess its way around the challenge.
package captcha

import (
	"context"

	"go.uber.org/zap"

	"github.com/openreach/formpilot/internal/engine/page"
)

// markerSelectors are scanned in order; any match means the form is guarded.
var markerSelectors = []string{
	".g-recaptcha",
	"#g-recaptcha",
	".grecaptcha-badge",
	"iframe[src*='recaptcha']",
	"iframe[src*='hcaptcha']",
	"[class*='captcha']",
	"[id*='captcha']",
}

// Detector scans frames for challenge markers.
type Detector struct {
	log *zap.Logger
}

// New builds a Detector.
func New(logger *zap.Logger) *Detector {
	return &Detector{log: logger.Named("captcha")}
}

// Present reports whether the frame carries any known challenge marker.
// Probe errors count as "no marker" - an unreadable frame is handled by the
// later fill stage, not mistaken for a challenge.
func (d *Detector) Present(ctx context.Context, fr page.Frame) bool {
	for _, sel := range markerSelectors {
		ok, err := fr.Matches(ctx, sel)
		if err != nil {
			d.log.Debug("marker probe failed", zap.String("selector", sel), zap.Error(err))
			continue
		}
		if ok {
			d.log.Info("captcha marker detected", zap.String("selector", sel))
			return true
		}
	}
	return false
}
