package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/model"
)

func testScrapeConfig(baseURL string) config.ScrapeConfig {
	return config.ScrapeConfig{
		BaseURL:           baseURL,
		TimeoutSecs:       5,
		MaxPagesPerLang:   3,
		RequestsPerSecond: 100,
		MaxConcurrent:     4,
		UserAgent:         "test-agent",
	}
}

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>FAQ</title></head><body><p>Pay online or at any JEPCO office.</p></body></html>`))
	}))
	defer srv.Close()

	c := NewCrawler(testScrapeConfig(srv.URL))
	page, err := c.FetchPage(context.Background(), srv.URL+"/en/Home/FAQ")
	require.NoError(t, err)
	assert.Equal(t, "FAQ", page.Title)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	require.Len(t, page.Paragraphs, 1)
}

func TestFetchPageNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewCrawler(testScrapeConfig(srv.URL))
	_, err := c.FetchPage(context.Background(), srv.URL+"/en/Home/Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestCrawlPagesSkipsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "Broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Page</title></head><body><p>Some content long enough to keep.</p></body></html>`))
	}))
	defer srv.Close()

	c := NewCrawler(testScrapeConfig(srv.URL))
	pages, err := c.CrawlPages(context.Background(), []string{
		srv.URL + "/en/Home",
		srv.URL + "/en/Home/Broken",
		srv.URL + "/en/Home/FAQ",
	})
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestDecodeCharsetPassthrough(t *testing.T) {
	body := []byte("<html><body>hi</body></html>")

	got, err := decodeCharset(body, "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, body, got)

	got, err = decodeCharset(body, "")
	require.NoError(t, err)
	assert.Equal(t, body, got)

	// Unknown charsets pass through instead of failing the page.
	got, err = decodeCharset(body, "text/html; charset=x-unknown")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestDecodeCharsetWindows1256(t *testing.T) {
	// "مرحبا" in windows-1256.
	encoded := []byte{0xE3, 0xD1, 0xCD, 0xC8, 0xC7}

	got, err := decodeCharset(encoded, "text/html; charset=windows-1256")
	require.NoError(t, err)
	assert.Equal(t, "مرحبا", string(got))
}

func TestBuildSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if strings.HasPrefix(r.URL.Path, "/ar/") {
			_, _ = w.Write([]byte(`<html><head><title>جيبكو</title></head><body><h1>الرئيسية</h1><p>للطوارئ اتصل على الرقم 116 على مدار الساعة.</p></body></html>`))
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>JEPCO</title></head><body><h1>Home</h1><p>For emergencies call 116 around the clock.</p></body></html>`))
	}))
	defer srv.Close()

	b := NewBuilder(testScrapeConfig(srv.URL))
	snap, err := b.BuildSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "live", snap.Meta.Source)
	assert.Len(t, snap.Meta.PagesScraped, 6) // 3 pages per bucket
	assert.Greater(t, snap.Meta.SectionCount, 0)

	en := snap.Bucket("english")
	require.NotNil(t, en)
	// Identical template text across pages collapses to one section per category.
	for _, sections := range en {
		texts := make(map[string]int)
		for _, s := range sections {
			texts[strings.ToLower(s.Text)]++
		}
		for text, n := range texts {
			assert.Equal(t, 1, n, "duplicate section %q", text)
		}
	}

	ar := snap.Bucket("arabic")
	require.NotNil(t, ar)
	assert.NotEmpty(t, ar[model.CategoryContactInfo], "116 must be promoted into contact_info")
}

func TestBuildSnapshotAllPagesDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := NewBuilder(testScrapeConfig(srv.URL))
	_, err := b.BuildSnapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content extracted")
}

func TestFallbackSnapshot(t *testing.T) {
	snap, err := FallbackSnapshot()
	require.NoError(t, err)

	assert.Equal(t, "fallback", snap.Meta.Source)
	assert.Greater(t, snap.Meta.SectionCount, 10)

	en := snap.Bucket("english")
	require.NotNil(t, en)
	require.NotEmpty(t, en[model.CategoryContactInfo])
	assert.Contains(t, en[model.CategoryContactInfo][0].Text, "116")

	ar := snap.Bucket("arabic")
	require.NotNil(t, ar)
	require.NotEmpty(t, ar[model.CategoryBilling])
}
