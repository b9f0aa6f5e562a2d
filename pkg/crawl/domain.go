package crawl

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RegistrableDomain returns the eTLD+1 of rawURL's host
// ("https://blog.example.co.uk/x" → "example.co.uk").
//
// Hosts that have no registrable part (IP addresses, "localhost", bare
// public suffixes) are returned as-is. Unparseable URLs yield "".
func RegistrableDomain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// FillDomains sets Domain on every node that lacks one, derived from its URL.
func FillDomains(nodes []Node) {
	for i := range nodes {
		if nodes[i].Domain == "" {
			nodes[i].Domain = RegistrableDomain(nodes[i].URL)
		}
	}
}
