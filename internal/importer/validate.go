package importer

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

var blockedHosts = map[string]struct{}{
	"localhost":       {},
	"127.0.0.1":       {},
	"0.0.0.0":         {},
	"169.254.169.254": {}, // cloud metadata endpoint
}

// ValidateURL rejects URLs that are unsafe for the server to fetch: schemes
// other than http/https, blocklisted hosts, and literal private, loopback or
// link-local IP addresses. It runs before any network access.
//
// Plain DNS names pass even though they could resolve to a private address
// at fetch time (DNS rebinding); only hostname literals are checked.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: only http and https URLs are allowed", ErrInvalidURL)
	}

	host := strings.ToLower(parsed.Hostname())
	if _, blocked := blockedHosts[host]; blocked {
		return fmt.Errorf("%w: URL host is not allowed", ErrInvalidURL)
	}

	if isPrivateIP(host) {
		return fmt.Errorf("%w: private IP addresses are not allowed", ErrInvalidURL)
	}

	return nil
}

// isPrivateIP reports whether host is an IP literal in a private, loopback
// or link-local range. Non-IP hostnames return false.
func isPrivateIP(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast()
}
