package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const defaultSnapshotTimeout = 20 * time.Second

var (
	headlessOnce sync.Once
	headlessErr  error
)

// EnsureHeadlessAvailable 检查本机是否可启动无头 Chrome，只探测一次。
func EnsureHeadlessAvailable(ctx context.Context) error {
	headlessOnce.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		parent, cancel := chromedp.NewContext(ctx)
		defer cancel()
		headlessErr = chromedp.Run(parent)
	})
	return headlessErr
}

// SnapshotPNG loads html in headless Chrome and returns a full-page
// screenshot. The chart scripts need network access to the echarts assets.
func SnapshotPNG(ctx context.Context, html []byte, width, height int, timeout time.Duration) ([]byte, error) {
	if len(html) == 0 {
		return nil, fmt.Errorf("snapshot requires html")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := EnsureHeadlessAvailable(ctx); err != nil {
		return nil, fmt.Errorf("headless chrome unavailable: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultSnapshotTimeout
	}
	parent, cancel := chromedp.NewContext(ctx)
	defer cancel()

	timeoutCtx, cancelTimeout := context.WithTimeout(parent, timeout)
	defer cancelTimeout()

	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)
	var screenshot []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(dataURI),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500 * time.Millisecond),
		chromedp.FullScreenshot(&screenshot, 100),
	}
	if err := chromedp.Run(timeoutCtx, tasks...); err != nil {
		return nil, fmt.Errorf("render chart snapshot failed: %w", err)
	}
	return screenshot, nil
}

// ChromeSnapshotter renders chart pages to PNG with headless Chrome.
type ChromeSnapshotter struct {
	WidthPx  int
	HeightPx int
	Timeout  time.Duration
}

func (s ChromeSnapshotter) Snapshot(ctx context.Context, html []byte) ([]byte, error) {
	return SnapshotPNG(ctx, html, s.WidthPx, s.HeightPx, s.Timeout)
}
