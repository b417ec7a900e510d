// Package harvest extracts contact email addresses from captured page HTML.
// Mailto anchors are the primary signal; a regex sweep over the rendered text
// picks up addresses published as plain text.
package harvest

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Extensions that show up in srcset/asset paths and match the address regex,
// e.g. "logo@2x.png".
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".css", ".js"}

// Emails returns every address found in the document, mailto anchors first,
// then plain-text matches, deduplicated case-insensitively in discovery order.
func Emails(html string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		key := strings.ToLower(addr)
		if addr == "" || seen[key] || isAsset(key) {
			return
		}
		seen[key] = true
		out = append(out, addr)
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			for _, addr := range splitMailto(href) {
				if emailPattern.MatchString(addr) {
					add(emailPattern.FindString(addr))
				}
			}
		})
		// Plain-text sweep over the visible text only, so attribute noise
		// (tracking URLs, data blobs) stays out.
		for _, addr := range emailPattern.FindAllString(doc.Text(), -1) {
			add(addr)
		}
	}
	return out
}

// splitMailto handles "mailto:a@x.com,b@y.com?subject=hi" forms.
func splitMailto(href string) []string {
	rest := strings.TrimPrefix(href, "mailto:")
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}
	if unescaped, err := url.QueryUnescape(rest); err == nil {
		rest = unescaped
	}
	return strings.Split(rest, ",")
}

func isAsset(addr string) bool {
	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(addr, suffix) {
			return true
		}
	}
	return false
}
