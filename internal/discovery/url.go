package discovery

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL reduces a URL to its identity form: lower-cased scheme,
// host and path, default ports removed, query and fragment stripped.
// Two hits with the same normalized URL are the same candidate.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Path = strings.ToLower(strings.TrimSuffix(u.Path, "/"))
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil

	return u.String(), nil
}

// RegistrableDomain derives the host to use for directory lookups from
// a page URL, trimming a leading www label.
func RegistrableDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return strings.TrimPrefix(host, "www."), nil
}
