package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"

	"tudman/internal/domain"
	"tudman/internal/logger"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

// maxDocumentBytes caps how much of a fetched page is read.
const maxDocumentBytes = 10 * 1024 * 1024

// Article is what the readability pass recovered from a page
type Article struct {
	Title       string
	TextContent string
}

// ReadabilityExtractor fetches web pages and extracts their readable text.
type ReadabilityExtractor struct {
	httpClient *http.Client
	userAgent  string
}

// NewReadabilityExtractor creates an extractor. A nil client falls back to
// http.DefaultClient, which follows redirects.
func NewReadabilityExtractor(httpClient *http.Client, userAgent string) *ReadabilityExtractor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ReadabilityExtractor{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Fetch downloads the document at pageURL. Any non-2xx status is a FETCH_ERROR.
func (e *ReadabilityExtractor) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", domain.NewFetchError(pageURL, err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", domain.NewFetchError(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domain.NewFetchError(pageURL, fmt.Errorf("Fetch failed %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", domain.NewFetchError(pageURL, err)
	}
	return string(body), nil
}

// Extract runs the readability pass over html.
func (e *ReadabilityExtractor) Extract(html, pageURL string) (Article, error) {
	parsedURL, err := nurl.Parse(pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		return Article{}, fmt.Errorf("readability extraction failed: %w", err)
	}
	return Article{
		Title:       strings.TrimSpace(article.Title),
		TextContent: strings.TrimSpace(article.TextContent),
	}, nil
}

// BodyText returns the text content of the document body.
func (e *ReadabilityExtractor) BodyText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return strings.TrimSpace(doc.Find("body").Text()), nil
}

// ExtractReadableText fetches pageURL and returns "title\n\ntext" from the
// readability pass, the plain body text when readability finds nothing, or ""
// when the page has no text at all.
func (e *ReadabilityExtractor) ExtractReadableText(ctx context.Context, pageURL string) (string, error) {
	html, err := e.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	l := logger.Get()
	article, err := e.Extract(html, pageURL)
	if err != nil {
		// a page readability cannot handle still has a body
		l.Warn("Readability extraction failed, falling back to body text", zap.String("url", pageURL), zap.Error(err))
	}

	parts := make([]string, 0, 2)
	for _, part := range []string{article.Title, article.TextContent} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if text := strings.Join(parts, "\n\n"); text != "" {
		return text, nil
	}

	body, err := e.BodyText(html)
	if err != nil {
		l.Warn("Failed to read body text", zap.String("url", pageURL), zap.Error(err))
		return "", nil
	}
	return body, nil
}
