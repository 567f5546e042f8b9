package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced with a fresh instance.
const DefaultMaxPages = 25

// BrowserManager owns a headless Chrome instance and replaces it after
// maxPages renders. Chrome's memory baseline grows with use and does not
// shrink when pages close.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount atomic.Int64
	maxPages  int64
	userAgent string
	closed    atomic.Bool
}

// NewBrowserManager launches a browser. Close must be called when the
// manager is no longer needed.
func NewBrowserManager(maxPages int64, userAgent string) (*BrowserManager, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	bm := &BrowserManager{maxPages: maxPages, userAgent: userAgent}
	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Browser returns the live browser, recycling it first when the page
// budget is spent. It returns nil after Close.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed.Load() {
		return nil
	}
	if bm.pageCount.Load() >= bm.maxPages {
		bm.recycle()
	}
	return bm.browser
}

// PageDone records one rendered page against the recycling budget.
func (bm *BrowserManager) PageDone() {
	bm.pageCount.Add(1)
}

// Close shuts the browser down. It is safe to call more than once.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.shutdown()
}

// LauncherPID returns the browser process ID, or 0 when none is running.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// launch must be called with mu held or before the manager is shared.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if bm.userAgent != "" {
		l = l.Set("user-agent", bm.userAgent)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// shutdown must be called with mu held.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle keeps the old browser if a replacement cannot be launched.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.launch(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}
	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.pageCount.Store(0)
}
