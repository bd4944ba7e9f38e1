/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: browser.go
Description: Browser-driven traffic capture. Launches Chrome through chromedp, watches
DevTools network events and records every request body that passes the filter. Browsing
happens interactively; the session ends when its context is cancelled or the browser
goes away.
*/

package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BrowserConfig configures a capture browser
type BrowserConfig struct {
	StartURL   string // page opened once the browser is up, optional
	Headless   bool
	ExecPath   string // Chrome binary, empty for chromedp's lookup
	UserAgent  string
	ExtraFlags map[string]interface{}
}

// BrowserSession records matching requests made by a chromedp browser
type BrowserSession struct {
	ID       string
	config   *BrowserConfig
	filter   *Filter
	recorder *Recorder
	logger   logrus.FieldLogger
}

// NewBrowserSession wires a filter and recorder to a browser configuration
func NewBrowserSession(config *BrowserConfig, filter *Filter, recorder *Recorder, logger logrus.FieldLogger) *BrowserSession {
	if config == nil {
		config = &BrowserConfig{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.New().String()
	return &BrowserSession{
		ID:       id,
		config:   config,
		filter:   filter,
		recorder: recorder,
		logger:   logger.WithField("session_id", id),
	}
}

// Run launches the browser and records until ctx is cancelled or the browser
// exits. Cancellation is the normal way to stop and is not an error.
func (s *BrowserSession) Run(ctx context.Context) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", s.config.Headless))
	if s.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(s.config.ExecPath))
	}
	if s.config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.config.UserAgent))
	}
	for name, value := range s.config.ExtraFlags {
		opts = append(opts, chromedp.Flag(name, value))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventRequestWillBeSent); ok {
			s.handleRequest(e.Request)
		}
	})

	actions := []chromedp.Action{network.Enable()}
	if s.config.StartURL != "" {
		actions = append(actions, chromedp.Navigate(s.config.StartURL))
	}
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to start capture browser: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"domain":       s.filter.Domain,
		"capture_file": s.recorder.Path(),
	}).Info("Capture browser started")

	select {
	case <-ctx.Done():
	case <-browserCtx.Done():
		s.logger.Warn("Capture browser closed")
	}

	s.logger.WithField("recorded", s.recorder.Count()).Info("Capture stopped")
	return nil
}

// handleRequest runs on chromedp's event goroutine and must not block on
// browser actions.
func (s *BrowserSession) handleRequest(req *network.Request) {
	if req == nil || !req.HasPostData {
		return
	}
	if !s.filter.MatchURL(req.URL) {
		return
	}

	body := postData(req)
	if len(body) == 0 {
		s.logger.WithField("url", req.URL).Debug("Request body not available from event")
		return
	}
	if !s.filter.MatchRequest(req.URL, headerValue(req.Headers, "Content-Type"), body) {
		return
	}

	if err := s.recorder.Record(body); err != nil {
		s.logger.WithError(err).Error("Failed to record request")
		return
	}
	s.logger.WithField("url", req.URL).Info("JSON request saved")
}

// postData joins the request's post data entries. Entry bytes arrive base64
// encoded.
func postData(req *network.Request) []byte {
	var body []byte
	for _, entry := range req.PostDataEntries {
		if entry == nil || entry.Bytes == "" {
			continue
		}
		chunk, err := base64.StdEncoding.DecodeString(entry.Bytes)
		if err != nil {
			chunk = []byte(entry.Bytes)
		}
		body = append(body, chunk...)
	}
	return body
}

// headerValue looks a header up case-insensitively
func headerValue(headers network.Headers, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
	}
	return ""
}
