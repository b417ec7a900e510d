// Package browser implements the page abstraction on top of a headless
// Chrome instance driven over the DevTools protocol via chromedp.
package browser

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/openreach/formpilot/internal/config"
)

// Manager owns the browser process lifecycle. One Acquire per engine
// invocation; the returned release func tears down the tab and the browser
// process and is safe to call more than once.
type Manager struct {
	cfg config.BrowserConfig
	log *zap.Logger
}

// NewManager builds a Manager. The browser process is not started here;
// Acquire launches it so a failed launch surfaces on the invocation that
// needed it.
func NewManager(cfg config.BrowserConfig, logger *zap.Logger) *Manager {
	return &Manager{cfg: cfg, log: logger.Named("browser_manager")}
}

// Acquire launches the browser and opens one tab. Exactly one release per
// acquire; the release must run on every exit path.
func (m *Manager) Acquire(ctx context.Context) (*Session, func(), error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, m.buildAllocatorOptions()...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	var once sync.Once
	release := func() {
		once.Do(func() {
			tabCancel()
			allocCancel()
			m.log.Info("browser released")
		})
	}

	// Confirm the browser starts and responds before handing it out.
	startCtx, cancel := context.WithTimeout(tabCtx, m.cfg.StartupTimeout)
	defer cancel()
	if err := chromedp.Run(startCtx, chromedp.Navigate("about:blank")); err != nil {
		release()
		return nil, nil, fmt.Errorf("browser failed to start or respond: %w", err)
	}

	s := newSession(tabCtx, m.log)
	if m.cfg.BlockAssets {
		if err := s.enableAssetBlocking(); err != nil {
			m.log.Warn("asset blocking unavailable, continuing without", zap.Error(err))
		}
	}

	m.log.Info("browser acquired", zap.Bool("headless", m.cfg.Headless))
	return s, release, nil
}

func (m *Manager) buildAllocatorOptions() []chromedp.ExecAllocatorOption {
	// Start from the defaults, overriding the flag that advertises
	// automation.
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)

	opts = append(opts,
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("headless", m.cfg.Headless),
		chromedp.Flag("ignore-certificate-errors", m.cfg.IgnoreTLSErrors),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-gpu", m.cfg.Headless),
		chromedp.WindowSize(m.cfg.WindowWidth, m.cfg.WindowHeight),
		chromedp.UserAgent(m.cfg.UserAgent),
	)

	// Extra arguments from the config, "--flag" or "--flag=value" form.
	for _, arg := range m.cfg.Args {
		parts := strings.SplitN(arg, "=", 2)
		name := strings.TrimPrefix(parts[0], "--")
		if len(parts) == 2 {
			opts = append(opts, chromedp.Flag(name, parts[1]))
		} else {
			opts = append(opts, chromedp.Flag(name, true))
		}
	}

	// Flags required for running inside containers.
	if runtime.GOOS == "linux" {
		opts = append(opts,
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-setuid-sandbox", true),
		)
	}

	return opts
}
