package shortener

import (
	"net/url"
	"strings"
)

// Validator checks destination URLs. It runs at shorten time on input and
// again at resolve time: validity established at write time is not trusted
// forever, a host added to the block list later turns its records into 404s.
type Validator struct {
	blocked []string
}

// NewValidator creates a validator with the given blocked hosts. Matching is
// case-insensitive, exact or by subdomain.
func NewValidator(blockedDomains []string) *Validator {
	blocked := make([]string, 0, len(blockedDomains))

	for _, domain := range blockedDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			blocked = append(blocked, domain)
		}
	}

	return &Validator{blocked: blocked}
}

// IsValid reports whether raw is an absolute http(s) URL with a host that is
// not blocked, within the length bound.
func (v *Validator) IsValid(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > MaxURLLength {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	return !v.isBlocked(host)
}

func (v *Validator) isBlocked(host string) bool {
	for _, blocked := range v.blocked {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return true
		}
	}

	return false
}
