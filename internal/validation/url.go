package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// BaseURLValidator checks the backend base URL before any request is built.
type BaseURLValidator struct {
	// AllowLocalhost permits loopback hosts; the backend usually runs locally.
	AllowLocalhost bool
	// AllowPrivateIPs permits RFC 1918 and link-local addresses.
	AllowPrivateIPs bool
	MaxLength       int
}

// NewBaseURLValidator returns a validator that accepts local and LAN backends.
func NewBaseURLValidator() *BaseURLValidator {
	return &BaseURLValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: true,
		MaxLength:       2048,
	}
}

// NewStrictBaseURLValidator rejects loopback and private addresses.
func NewStrictBaseURLValidator() *BaseURLValidator {
	return &BaseURLValidator{
		MaxLength: 2048,
	}
}

// ValidateAndNormalize returns input as an absolute http(s) URL with no
// trailing slash, query or fragment, ready to have endpoint paths appended.
func (v *BaseURLValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("base URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("base URL too long (max %d characters)", v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'` ") {
		return "", fmt.Errorf("base URL contains invalid characters")
	}

	// Bare host:port means a local dev server.
	if !strings.Contains(input, "://") {
		input = "http://" + input
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL must have a hostname")
	}
	if u.User != nil {
		return "", fmt.Errorf("base URL must not embed credentials")
	}
	if strings.Contains(u.Path, "..") {
		return "", fmt.Errorf("directory traversal patterns not allowed in base URL")
	}
	if err := v.validateHost(u.Host); err != nil {
		return "", err
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), nil
}

func (v *BaseURLValidator) validateHost(host string) error {
	hostname := host
	if strings.Contains(host, ":") {
		var err error
		hostname, _, err = net.SplitHostPort(host)
		if err != nil {
			return fmt.Errorf("invalid host format: %w", err)
		}
	}

	if !v.AllowLocalhost && isLocalhost(hostname) {
		return fmt.Errorf("localhost backends are not permitted")
	}

	if ip := net.ParseIP(hostname); ip != nil {
		if ip.IsUnspecified() {
			return fmt.Errorf("unspecified address %s is not a valid backend", hostname)
		}
		if !v.AllowPrivateIPs && !ip.IsLoopback() && isPrivateIP(ip) {
			return fmt.Errorf("private IP addresses are not permitted")
		}
	}

	return nil
}

func isLocalhost(hostname string) bool {
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
