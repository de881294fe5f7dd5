// Package crawler fetches web pages and extracts phone links from them.
//
// # Components
//
//   - Fetcher: Retrieves a single page over HTTP and decodes it to UTF-8
//   - Extractor: Finds tel: anchors in page markup, in document order
//
// # Failure handling
//
// Fetch returns an error for network failures, timeouts and non-2xx
// responses. Callers treat any fetch error as "zero links" rather than a
// fatal condition. Extract never fails on malformed markup; it yields fewer
// links instead.
//
// # Usage
//
//	fetcher := crawler.NewFetcher(crawler.WithTimeout(10 * time.Second))
//	page, err := fetcher.Fetch(ctx, "https://example.com")
//	links, err := crawler.NewExtractor().Extract(page.Body)
package crawler
