// Package extract provides article fetching and HTML-to-text reduction
// for the generation pipeline.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the HTTP request timeout for article fetches.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; AetheriumBot/1.0)"

// Article holds the text reduction of one fetched source document. It is
// transient: it exists only for the duration of a single pipeline run.
type Article struct {
	URL string
	// Text is the newline-joined text of heading, paragraph, and
	// list-item elements in document order.
	Text string
	// FirstHeading is the text of the first top-level heading, used to
	// seed the trend probe. May be empty.
	FirstHeading string
}

// Error represents an article fetch or parse failure.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Extractor fetches source documents and reduces them to flat text.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
	// useBrowser enables a headless-browser retry for pages whose plain
	// HTTP fetch yields too little text.
	useBrowser bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBrowserFallback enables headless-browser rendering for JS-heavy pages.
func WithBrowserFallback() Option {
	return func(e *Extractor) { e.useBrowser = true }
}

// WithHTTPClient overrides the HTTP client, primarily for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) { e.httpClient = c }
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches the URL and reduces the document to an Article. Any
// fetch failure or non-success status fails the caller's pipeline: there
// is no fallback text source.
func (e *Extractor) Extract(ctx context.Context, urlStr string) (*Article, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, err := e.fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	article, err := Reduce(urlStr, html)
	if err != nil {
		return nil, err
	}

	if e.useBrowser && ShouldUseBrowser(article.Text) {
		rendered, berr := fetchWithBrowser(ctx, urlStr)
		if berr != nil {
			// Keep the plain-HTTP result when the browser path fails.
			return article, nil
		}
		if renderedArticle, rerr := Reduce(urlStr, rendered); rerr == nil && len(renderedArticle.Text) > len(article.Text) {
			return renderedArticle, nil
		}
	}

	return article, nil
}

// fetch retrieves raw HTML with a single attempt, no retry.
func (e *Extractor) fetch(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return string(body), nil
}

// Reduce parses HTML and concatenates the text of heading, paragraph,
// and list-item nodes, in document order, separated by newlines.
func Reduce(urlStr, html string) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}

	var sb strings.Builder
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		sb.WriteString(sel.Text())
		sb.WriteString("\n")
	})

	return &Article{
		URL:          urlStr,
		Text:         sb.String(),
		FirstHeading: strings.TrimSpace(doc.Find("h1").First().Text()),
	}, nil
}
