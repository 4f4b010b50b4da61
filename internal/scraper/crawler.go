package scraper

import (
	"context"
	"crypto/tls"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/time/rate"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/model"
)

// maxBodySize caps how much of a page the crawler reads.
const maxBodySize = 4 << 20

// Crawler fetches site pages politely: one shared rate limiter, bounded
// concurrency, and a capped read per page.
type Crawler struct {
	client        *http.Client
	limiter       *rate.Limiter
	userAgent     string
	maxConcurrent int
}

// NewCrawler builds a Crawler from the scrape configuration. The utility
// site serves a broken certificate chain, so verification is skippable
// via config.
func NewCrawler(cfg config.ScrapeConfig) *Crawler {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: maxConcurrent,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
	}

	return &Crawler{
		client:        &http.Client{Timeout: timeout, Transport: transport},
		limiter:       rate.NewLimiter(rate.Limit(rps), 1),
		userAgent:     cfg.UserAgent,
		maxConcurrent: maxConcurrent,
	}
}

// FetchPage downloads and extracts a single page.
func (c *Crawler) FetchPage(ctx context.Context, pageURL string) (*model.ScrapedPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "scraper: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: create request %s", pageURL)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: fetch %s", pageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("scraper: fetch %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: read %s", pageURL)
	}

	body, err = decodeCharset(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	page, err := Extract(pageURL, body)
	if err != nil {
		return nil, err
	}
	page.StatusCode = resp.StatusCode
	return page, nil
}

// CrawlPages fetches a list of URLs with bounded concurrency. Pages that
// fail are logged and skipped; the crawl only errors when the context dies.
func (c *Crawler) CrawlPages(ctx context.Context, urls []string) ([]model.ScrapedPage, error) {
	results := make([]*model.ScrapedPage, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)
	for i, u := range urls {
		g.Go(func() error {
			page, err := c.FetchPage(gctx, u)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				zap.L().Warn("page skipped",
					zap.String("url", u),
					zap.Error(err),
				)
				return nil
			}
			results[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "scraper: crawl pages")
	}

	pages := make([]model.ScrapedPage, 0, len(urls))
	for _, p := range results {
		if p != nil {
			pages = append(pages, *p)
		}
	}
	return pages, nil
}

// decodeCharset converts a response body to UTF-8 based on the charset
// parameter of its Content-Type. Unknown or missing charsets pass through.
func decodeCharset(body []byte, contentType string) ([]byte, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	name := strings.ToLower(params["charset"])
	if name == "" || name == "utf-8" || name == "utf8" {
		return body, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		zap.L().Debug("unknown charset, assuming utf-8", zap.String("charset", name))
		return body, nil
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: decode charset %s", name)
	}
	return decoded, nil
}
