// Package discover extracts referenced resources from fetched documents.
package discover

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

// HTML discovers anchor references in HTML bodies. Links leading off the
// document's host are classified as root resources (new crawl entry points);
// links within the host are children.
type HTML struct{}

// NewHTML constructs an HTML discoverer.
func NewHTML() *HTML {
	return &HTML{}
}

// Discover parses the document body and returns the referenced resources,
// deduplicated and resolved against the document URL.
func (d *HTML) Discover(doc crawler.Document) ([]crawler.Resource, error) {
	base, err := url.Parse(doc.URL)
	if err != nil {
		return nil, fmt.Errorf("parse document url: %w", err)
	}

	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seen := make(map[string]struct{})
	var resources []crawler.Resource

	parsed.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		resolved.Fragment = ""

		target := resolved.String()
		if target == doc.URL {
			return
		}
		if _, dup := seen[target]; dup {
			return
		}
		seen[target] = struct{}{}

		kind := crawler.ResourceKindChild
		if resolved.Host != base.Host {
			kind = crawler.ResourceKindRoot
		}
		resources = append(resources, crawler.Resource{URL: target, Kind: kind})
	})

	return resources, nil
}
