// Package webfetch downloads web pages and simplifies their HTML into
// markdown so the assistant can read job postings and similar content
// without drowning in markup.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"

	"github.com/puchtools/puchcal/internal/fault"
)

const (
	// DefaultMaxLength is the default window size for paged content.
	DefaultMaxLength = 8000

	// MaxLengthLimit caps the window size a caller may request.
	MaxLengthLimit = 1000000

	defaultUserAgent = "puchcal/1.0 (MCP fetch tool)"
	maxBodyBytes     = 10 << 20
)

// Page is a fetched document. Prefix carries a note for the caller when
// the body is returned raw instead of simplified.
type Page struct {
	Content string
	Prefix  string
}

// Client fetches pages over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient returns a Client with a 30 second request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  defaultUserAgent,
	}
}

// Fetch downloads target and, unless raw is set, simplifies HTML bodies
// into markdown. Non-HTML bodies come back unchanged with an
// explanatory prefix.
func (c *Client) Fetch(ctx context.Context, target string, raw bool) (*Page, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, fault.Wrap(fault.KindValidation, err, "invalid url %q", target)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fault.New(fault.KindValidation, "url must be an absolute http(s) URL, got %q", target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fault.Wrap(fault.KindValidation, err, "building request for %s", target)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.KindRemote, err, "fetching %s", target)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &fault.Error{
			Kind:    fault.KindRemote,
			Message: fmt.Sprintf("fetching %s: status code %d", target, resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fault.Wrap(fault.KindRemote, err, "reading response from %s", target)
	}

	contentType := resp.Header.Get("Content-Type")
	head := string(body)
	if len(head) > 100 {
		head = head[:100]
	}
	isHTML := strings.Contains(head, "<html") ||
		strings.Contains(contentType, "text/html") ||
		contentType == ""

	if isHTML && !raw {
		return &Page{Content: simplifyHTML(string(body), parsed)}, nil
	}
	if isHTML {
		return &Page{Content: string(body)}, nil
	}
	return &Page{
		Content: string(body),
		Prefix:  fmt.Sprintf("Content type %s cannot be simplified to markdown, but here is the raw content:\n", contentType),
	}, nil
}

// simplifyHTML extracts the readable article from an HTML document and
// converts it to markdown. Pages with no extractable article yield an
// inline error marker, matching the paging markers callers already
// handle.
func simplifyHTML(html string, pageURL *url.URL) string {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return "<error>Page failed to be simplified from HTML</error>"
	}

	markdown, err := md.NewConverter("", true, nil).ConvertString(article.Content)
	if err != nil || strings.TrimSpace(markdown) == "" {
		return "<error>Page failed to be simplified from HTML</error>"
	}
	return markdown
}

// Slice returns the window of content starting at startIndex, at most
// maxLength characters long. When content remains past the window, a
// marker tells the caller which start_index fetches the next chunk.
func Slice(content string, startIndex, maxLength int) string {
	total := len(content)
	if startIndex >= total {
		return "<error>No more content available.</error>"
	}

	end := startIndex + maxLength
	if end > total {
		end = total
	}
	window := content[startIndex:end]
	if window == "" {
		return "<error>No more content available.</error>"
	}

	if len(window) == maxLength && end < total {
		window += fmt.Sprintf("\n\n<error>Content truncated. Call the fetch_url tool with a start_index of %d to get more content.</error>", end)
	}
	return window
}
