/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: filter.go
Description: Request filter for traffic capture. A request body is recorded only when the
destination host ends with the target domain, the content type is JSON and the body is
not empty.
*/

package capture

import (
	"net"
	"net/url"
	"strings"
)

const jsonContentType = "application/json"

// Filter decides which intercepted requests are recorded
type Filter struct {
	Domain string // host suffix, e.g. "example.com"
}

// NewFilter creates a filter for the given target domain
func NewFilter(domain string) *Filter {
	return &Filter{Domain: strings.ToLower(strings.TrimSpace(domain))}
}

// Match reports whether a request should be recorded
func (f *Filter) Match(host, contentType string, body []byte) bool {
	if len(body) == 0 {
		return false
	}
	if !strings.Contains(strings.ToLower(contentType), jsonContentType) {
		return false
	}
	return f.MatchHost(host)
}

// MatchHost applies the suffix rule to a host, ignoring case and port
func (f *Filter) MatchHost(host string) bool {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.HasSuffix(host, f.Domain)
}

// MatchRequest applies Match to a request addressed by URL
func (f *Filter) MatchRequest(rawURL, contentType string, body []byte) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return f.Match(u.Host, contentType, body)
}

// MatchURL applies the host rule to a full request URL
func (f *Filter) MatchURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return f.MatchHost(u.Host)
}
