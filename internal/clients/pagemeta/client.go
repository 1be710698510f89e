// Package pagemeta reads Open Graph metadata from a public page.
package pagemeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"outreach-server/internal/observability"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNoMetadata        = errors.New("page has no open graph metadata")
	ErrUnsupportedScheme = errors.New("only http and https pages can be fetched")
	ErrBlockedAddress    = errors.New("page resolves to a non-public address")
)

const (
	userAgent = "Mozilla/5.0 (compatible; MinimindOutreach/1.0)"
	// og tags live in <head>; anything past this is never parsed
	maxBodyBytes = 2 << 20
)

type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type Client struct {
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient only connects to public addresses, including after redirects.
func NewClient(timeout time.Duration, logger *observability.Logger) *Client {
	return newClient(timeout, logger, publicOnly)
}

func newClient(timeout time.Duration, logger *observability.Logger, control func(network, address string, conn syscall.RawConn) error) *Client {
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: control,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		logger:     logger,
	}
}

// publicOnly runs after DNS resolution, so address is always an IP.
func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast())
}

// Fetch downloads pageURL and extracts og:title, og:description and og:image.
// It returns ErrNoMetadata when none of the tags are present.
func (c *Client) Fetch(ctx context.Context, pageURL string) (Metadata, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "page_url", Value: pageURL})

	u, err := url.Parse(pageURL)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to parse page url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Metadata{}, ErrUnsupportedScheme
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, fmt.Sprintf("failed to fetch page: %v", err))
		return Metadata{}, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(ctx, fmt.Sprintf("unexpected status fetching page: %d", resp.StatusCode))
		return Metadata{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return parse(doc)
}

func parse(doc *goquery.Document) (Metadata, error) {
	meta := Metadata{
		Title:       ogContent(doc, "og:title"),
		Description: ogContent(doc, "og:description"),
		ImageURL:    ogContent(doc, "og:image"),
	}
	if meta.Title == "" && meta.Description == "" && meta.ImageURL == "" {
		return Metadata{}, ErrNoMetadata
	}
	return meta, nil
}

func ogContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf("meta[property='%s']", property)).First().Attr("content")
	return strings.TrimSpace(content)
}
