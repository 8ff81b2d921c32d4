package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScriptFinder lists the JavaScript bundles a page loads
type ScriptFinder struct {
	// SameHostOnly drops scripts served from other hosts (CDNs, analytics)
	SameHostOnly bool
}

func NewScriptFinder() *ScriptFinder {
	return &ScriptFinder{}
}

// FindScripts returns the absolute URLs of script sources referenced by
// html, deduplicated in document order. Relative sources are resolved
// against base.
func (sf *ScriptFinder) FindScripts(html string, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	// <base href> overrides the page URL for relative references
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if u, err := base.Parse(href); err == nil {
			base = u
		}
	}

	var scripts []string
	seen := make(map[string]bool)

	add := func(src string) {
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		u, err := base.Parse(src)
		if err != nil {
			return
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		if sf.SameHostOnly && u.Host != base.Host {
			return
		}
		u.Fragment = ""
		abs := u.String()
		if !seen[abs] {
			seen[abs] = true
			scripts = append(scripts, abs)
		}
	}

	// one pass over every element keeps scripts and preloads in document order
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "script":
			if src, ok := s.Attr("src"); ok {
				add(src)
			}
		case "link":
			if href, ok := s.Attr("href"); ok && isScriptLink(s) {
				add(href)
			}
		}
	})

	return scripts, nil
}

func isScriptLink(s *goquery.Selection) bool {
	rel := strings.ToLower(s.AttrOr("rel", ""))
	for _, r := range strings.Fields(rel) {
		switch r {
		case "modulepreload":
			return true
		case "preload", "prefetch":
			return strings.EqualFold(s.AttrOr("as", ""), "script")
		}
	}
	return false
}
