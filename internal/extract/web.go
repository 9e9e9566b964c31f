package extract

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html/charset"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Pages need enough text after stripping to be worth summarizing; shorter
// results usually mean a challenge page or a parse miss.
const minPageTextLen = 100

var robotPhrases = []string{
	"please confirm that you are not a robot",
	"we're sorry, but it looks like requests sent from your device are automated",
	"captcha",
	"verify you are human",
	"robot check",
	"automated request",
}

var errRobotChallenge = errors.New("robot verification required")

// IsRobotChallenge reports whether text looks like an anti-bot interstitial
// rather than article content.
func IsRobotChallenge(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range robotPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("could not access the website (status code %d)", e.code)
}

// webStrategy fetches the raw HTML of a page one particular way.
type webStrategy interface {
	name() string
	fetch(ctx context.Context, url string) (string, error)
}

// WebExtractor tries a headless browser first, then a crawler, then a plain
// GET with browser headers, and keeps the first strategy that yields enough
// real text.
type WebExtractor struct {
	strategies []webStrategy
	logger     *slog.Logger
}

// NewWebExtractor builds the default strategy chain.
func NewWebExtractor(logger *slog.Logger) *WebExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebExtractor{
		strategies: []webStrategy{
			&chromedpStrategy{timeout: 10 * time.Second},
			&collyStrategy{timeout: 30 * time.Second},
			&plainGetStrategy{client: &http.Client{
				Timeout: 30 * time.Second,
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
				},
			}},
		},
		logger: logger,
	}
}

// Extract fetches rawURL and reduces it to plain article text.
func (w *WebExtractor) Extract(ctx context.Context, rawURL string) Result {
	url := rawURL
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	var lastErr error
	for _, strat := range w.strategies {
		htmlSrc, err := strat.fetch(ctx, url)
		if err != nil {
			w.logger.Warn("web extraction attempt failed", "strategy", strat.name(), "url", url, "err", err)
			lastErr = err
			continue
		}
		text, err := pageText(htmlSrc)
		if err != nil {
			w.logger.Warn("web page parse failed", "strategy", strat.name(), "url", url, "err", err)
			lastErr = err
			continue
		}
		if IsRobotChallenge(text) {
			w.logger.Warn("robot challenge detected", "strategy", strat.name(), "url", url)
			lastErr = errRobotChallenge
			continue
		}
		if len(text) > minPageTextLen {
			return Success(text)
		}
		lastErr = fmt.Errorf("extracted only %d characters", len(text))
	}

	if lastErr == nil {
		lastErr = errors.New("no strategies configured")
	}
	if errors.Is(lastErr, errRobotChallenge) {
		return Failure(KindRobotChallenge, lastErr.Error())
	}
	var se *statusError
	if errors.As(lastErr, &se) {
		res := Failure(KindRemoteService, lastErr.Error())
		res.StatusCode = se.code
		return res
	}
	return Failure(KindRemoteService, fmt.Sprintf("could not extract content: %v", lastErr))
}

// pageText strips chrome elements, prefers the main content region, and
// collapses the remaining text to single spaces.
func pageText(htmlSrc string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, header, footer, nav, aside, ads, iframe").Remove()

	content := doc.Selection
	for _, sel := range []string{"main", "article", "div.content"} {
		if s := doc.Find(sel); s.Length() > 0 {
			content = s.First()
			break
		}
	}
	return strings.Join(strings.Fields(content.Text()), " "), nil
}

type chromedpStrategy struct {
	timeout time.Duration
}

func (s *chromedpStrategy) name() string { return "browser" }

func (s *chromedpStrategy) fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(browserUserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.timeout)
	defer cancelTimeout()

	var htmlSrc string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &htmlSrc),
	)
	if err != nil {
		return "", err
	}
	return htmlSrc, nil
}

type collyStrategy struct {
	timeout time.Duration
}

func (s *collyStrategy) name() string { return "crawler" }

func (s *collyStrategy) fetch(ctx context.Context, url string) (string, error) {
	c := colly.NewCollector(colly.UserAgent(browserUserAgent))
	c.SetRequestTimeout(s.timeout)

	var htmlSrc string
	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		htmlSrc = string(r.Body)
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})
	if err := c.Visit(url); err != nil {
		return "", err
	}
	c.Wait()
	if fetchErr != nil {
		return "", fetchErr
	}
	if htmlSrc == "" {
		return "", errors.New("no content found")
	}
	return htmlSrc, nil
}

type plainGetStrategy struct {
	client *http.Client
}

func (s *plainGetStrategy) name() string { return "plain" }

func (s *plainGetStrategy) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Cache-Control", "max-age=0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode}
	}

	// Some pages still declare legacy charsets; decode before parsing.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
