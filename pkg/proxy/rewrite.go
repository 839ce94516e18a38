// Package proxy prepares a third-party page for display inside an embedding
// frame: root-relative references are pointed back at the page's origin and
// a small messaging bridge is injected so the parent can locate text.
package proxy

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// src="/x", href='/x'; protocol-relative //host is left alone.
	attrRef = regexp.MustCompile(`(src|href)=(["'])/([^/])`)
	// url(/x), url("/x"), url('/x')
	cssRef = regexp.MustCompile(`url\((["']?)/([^/])`)

	headClose = regexp.MustCompile(`(?i)</head>`)
	bodyClose = regexp.MustCompile(`(?i)</body>`)
)

// Origin returns scheme://host for rawURL.
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("not an absolute URL: %q", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Rewrite makes root-relative src, href and url() references absolute
// against origin.
func Rewrite(html, origin string) string {
	origin = strings.TrimRight(origin, "/")
	// Escape $ so the origin is never read as a group reference.
	o := strings.ReplaceAll(origin, "$", "$$")
	html = attrRef.ReplaceAllString(html, "${1}=${2}"+o+"/${3}")
	html = cssRef.ReplaceAllString(html, "url(${1}"+o+"/${2}")
	return html
}

// InjectBridge inserts the bridge script before the first </head>, else
// before the first </body>, else appends it.
func InjectBridge(html string) string {
	tag := "<script>" + BridgeScript + "</script>"
	for _, re := range []*regexp.Regexp{headClose, bodyClose} {
		if loc := re.FindStringIndex(html); loc != nil {
			return html[:loc[0]] + tag + html[loc[0]:]
		}
	}
	return html + tag
}

// Prepare rewrites html fetched from pageURL and injects the bridge.
func Prepare(html, pageURL string) (string, error) {
	origin, err := Origin(pageURL)
	if err != nil {
		return "", err
	}
	return InjectBridge(Rewrite(html, origin)), nil
}
