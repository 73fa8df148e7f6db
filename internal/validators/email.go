// Package validators holds request checks that need more than a gin
// binding tag. Both registration paths (admin and client) run these
// before an account row is created.
package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the address's domain can receive
// mail: it must publish MX records, or at least resolve to a host.
// Syntax is already covered by the `email` binding tag upstream.
func IsEmailDomainValid(email string) bool {
	domain, ok := splitDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}

func splitDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}
