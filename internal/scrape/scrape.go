// Package scrape drives a browser session against the social-media site and
// yields raw candidate snippets. The pipeline consumes it only through the
// collect.SnippetSource interface; everything here is replaceable in tests.
package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"blogsmith/internal/logger"
)

const (
	loginURL = "https://twitter.com/login"

	tweetSelector     = `article[data-testid="tweet"]`
	tweetTextSelector = `div[data-testid="tweetText"]`

	settleDelay = 2 * time.Second
)

// Session is a logged-in browser session positioned on a search result page.
type Session struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
}

// NewSession launches a browser and connects to it.
func NewSession(headless bool) (*Session, error) {
	l := launcher.New().Headless(headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Session{browser: browser, launcher: l}, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", "error", err.Error())
		}
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
}

// Login signs in with the given credentials. The flow mirrors the site's
// two-step form: username, next, password, log in.
func (s *Session) Login(username, password string) error {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: loginURL})
	if err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	s.page = page

	userField, err := page.Timeout(15 * time.Second).Element(`input[name="text"]`)
	if err != nil {
		return fmt.Errorf("username field not found: %w", err)
	}
	if err := userField.Input(username); err != nil {
		return fmt.Errorf("failed to enter username: %w", err)
	}
	if err := userField.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to submit username: %w", err)
	}

	passField, err := page.Timeout(15 * time.Second).Element(`input[name="password"]`)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}
	if err := passField.Input(password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}
	if err := passField.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to submit password: %w", err)
	}

	if err := page.Timeout(20 * time.Second).WaitStable(time.Second); err != nil {
		return fmt.Errorf("login did not settle: %w", err)
	}

	logger.Info("Logged in to scraping session")
	return nil
}

// SearchURL builds the live-search URL for the given terms, OR-joined and
// quoted.
func SearchURL(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, fmt.Sprintf("%q", t))
	}
	query := url.QueryEscape(strings.Join(quoted, " OR "))
	return fmt.Sprintf("https://twitter.com/search?q=%s&src=typed_query&f=live", query)
}

// Search navigates the session to the live search results for the terms.
func (s *Session) Search(terms []string) error {
	if s.page == nil {
		return fmt.Errorf("search requires a logged-in session")
	}
	if err := s.page.Navigate(SearchURL(terms)); err != nil {
		return fmt.Errorf("failed to open search: %w", err)
	}
	time.Sleep(5 * time.Second)
	return nil
}

// Candidates snapshots the current page and extracts the visible tweet
// texts.
func (s *Session) Candidates() ([]string, error) {
	if s.page == nil {
		return nil, fmt.Errorf("no active page")
	}

	html, err := s.page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}
	return ExtractTweetTexts(html)
}

// LoadMore scrolls the page to surface additional tweets.
func (s *Session) LoadMore() error {
	if s.page == nil {
		return fmt.Errorf("no active page")
	}
	if err := s.page.Keyboard.Press(input.PageDown); err != nil {
		return fmt.Errorf("failed to scroll: %w", err)
	}
	time.Sleep(settleDelay)
	return nil
}

// ExtractTweetTexts parses a page snapshot and returns the text of each
// tweet body, in document order.
func ExtractTweetTexts(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	var texts []string
	doc.Find(tweetSelector).Each(func(_ int, tweet *goquery.Selection) {
		text := strings.TrimSpace(tweet.Find(tweetTextSelector).Text())
		if text != "" {
			texts = append(texts, text)
		}
	})
	return texts, nil
}
