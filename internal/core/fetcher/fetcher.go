// Package fetcher retrieves best-effort plain text from a brand's website.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	perPageCap     = 3000
	totalCap       = 8000
	defaultTimeout = 10 * time.Second

	// Page bodies beyond this are junk for profile extraction anyway.
	maxBodyBytes = 2 << 20
)

// candidatePaths are tried in order against the domain root.
var candidatePaths = []string{"", "/about", "/pages/about"}

var (
	scriptRe = regexp.MustCompile(`(?is)<script.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Fetcher downloads and sanitizes candidate pages of a domain. A single
// unreachable page is skipped, never fatal; the result may be empty.
type Fetcher struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New returns a fetcher with default timeout.
func New() *Fetcher {
	return &Fetcher{Timeout: defaultTimeout}
}

// Fetch returns sanitized text from the domain's candidate pages,
// concatenated and capped. The domain may be bare ("acme.com") or carry a
// scheme already.
func (f *Fetcher) Fetch(ctx context.Context, domain string) string {
	base := normalizeBase(domain)
	if base == "" {
		return ""
	}

	var parts []string
	total := 0
	for _, path := range candidatePaths {
		text, err := f.fetchPage(ctx, base+path)
		if err != nil || text == "" {
			continue
		}
		if len(text) > perPageCap {
			text = text[:perPageCap]
		}
		parts = append(parts, text)
		total += len(text)
		if total >= totalCap {
			break
		}
	}

	combined := strings.Join(parts, " ")
	if len(combined) > totalCap {
		combined = combined[:totalCap]
	}
	return combined
}

func (f *Fetcher) fetchPage(ctx context.Context, url string) (string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "luminos/1.0 (+https://luminos.dev)")

	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) // nolint:errcheck
		return "", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return Sanitize(string(body)), nil
}

// Sanitize strips script/style blocks and all markup, then collapses
// whitespace.
func Sanitize(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func normalizeBase(domain string) string {
	d := strings.TrimSpace(domain)
	if d == "" {
		return ""
	}
	if !strings.Contains(d, "://") {
		d = "https://" + d
	}
	return strings.TrimRight(d, "/")
}
