package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoCSVLink is returned when an HTML landing page links to no CSV file
var ErrNoCSVLink = errors.New("landing page has no CSV link")

// FindCSVLink returns the first anchor in an HTML document whose path ends
// in .csv, resolved against base
func FindCSVLink(body []byte, base string) (string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse landing page: %w", err)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}

	var found string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if link := csvLink(baseURL, strings.TrimSpace(attr.Val)); link != "" {
					found = link
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)

	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrNoCSVLink, base)
	}
	return found, nil
}

func csvLink(base *url.URL, href string) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if !strings.EqualFold(path.Ext(resolved.Path), ".csv") {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
