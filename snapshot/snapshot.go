// Package snapshot captures full-page screenshots of the running dashboard
// with headless Chrome.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/storage"
	"aceh-poverty-dashboard/utils"
)

// Target is one page to capture.
type Target struct {
	URL  string
	File string
}

// Shooter drives a shared headless browser over a bounded worker pool.
type Shooter struct {
	chromeBin string
	outDir    string
	settle    time.Duration
	logger    *utils.Logger
	pool      *utils.WorkerPool
	seen      *utils.NameSet
	retry     *utils.RetryConfig
}

// New creates a Shooter. An empty chromeBin is looked up on the system.
func New(chromeBin, outDir string, workers, maxRetries int, logger *utils.Logger) *Shooter {
	logger = logger.With("snapshot")
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &Shooter{
		chromeBin: chromeBin,
		outDir:    outDir,
		settle:    3 * time.Second,
		logger:    logger,
		pool:      utils.NewWorkerPool(workers, 250),
		seen:      utils.NewNameSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Targets builds one capture target per selection, dropping duplicates.
func (s *Shooter) Targets(baseURL string, sels []models.Selection) []Target {
	baseURL = strings.TrimRight(baseURL, "/")
	var out []Target
	for _, sel := range sels {
		u := baseURL + "/?" + sel.Encode()
		if s.seen.Contains(u) {
			continue
		}
		s.seen.Add(u)
		name := storage.FileName(fmt.Sprintf("%d_%s_%s", sel.Page, sel.Page.Slug(), sel.Chart))
		out = append(out, Target{URL: u, File: filepath.Join(s.outDir, name+".png")})
	}
	return out
}

// Capture screenshots every target and returns the files written.
func (s *Shooter) Capture(ctx context.Context, targets []Target) ([]string, error) {
	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create output dir: %w", err)
	}
	s.logger.Info("Using browser binary: %s", s.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if s.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(s.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// One browser for every tab; chromedp logs are silenced.
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("snapshot: start browser: %w", err)
	}

	var written []string
	done := make(chan string, len(targets))
	for _, t := range targets {
		t := t
		s.pool.Submit(func() error {
			if err := s.captureOne(browserCtx, t); err != nil {
				return fmt.Errorf("snapshot %s: %w", t.URL, err)
			}
			done <- t.File
			return nil
		})
	}
	errs := s.pool.Wait()
	close(done)
	for f := range done {
		written = append(written, f)
	}

	for _, err := range errs {
		s.logger.Error("%v", err)
	}
	s.logger.Info("Captured %d/%d pages", len(written), len(targets))
	if len(written) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}
	return written, nil
}

func (s *Shooter) captureOne(browserCtx context.Context, t Target) error {
	var buf []byte
	err := s.retry.Do(browserCtx, "screenshot", func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(ctx,
			chromedp.EmulateViewport(1440, 900),
			chromedp.Navigate(t.URL),
			chromedp.WaitVisible("main", chromedp.ByQuery),
			chromedp.Sleep(s.settle),
			chromedp.FullScreenshot(&buf, 90),
		)
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.File, buf, 0644); err != nil {
		return err
	}
	s.logger.Debug("Saved %s (%d bytes)", t.File, len(buf))
	return nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
