package validate

import (
	"net/netip"
	"strings"

	"github.com/driftdns/resolver-dns/pkg/model"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Error carries the full list of validation messages for a rejected payload.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Resolver checks a submitted payload and returns the normalized (trimmed)
// fields together with every applicable error message. An error on one field
// does not suppress checks on the others.
func Resolver(in model.ResolverPayload, mode Mode) (model.ResolverPayload, []string) {
	var out model.ResolverPayload
	var errs []string

	if in.Provider != nil {
		v := strings.TrimSpace(*in.Provider)
		if v == "" {
			errs = append(errs, "provider cannot be empty")
		} else {
			out.Provider = &v
		}
	} else if mode == ModeCreate {
		errs = append(errs, "provider is required")
	}

	if in.Hostname != nil {
		v := strings.TrimSpace(*in.Hostname)
		if v == "" {
			errs = append(errs, "hostname cannot be empty")
		} else {
			out.Hostname = &v
		}
	} else if mode == ModeCreate {
		errs = append(errs, "hostname is required")
	}

	if in.Alias != nil {
		v := strings.TrimSpace(*in.Alias)
		out.Alias = &v
	}

	if in.IPv4 != nil {
		v := strings.TrimSpace(*in.IPv4)
		if v == "" || IsIPv4(v) {
			out.IPv4 = &v
		} else {
			errs = append(errs, "ipv4 must be a valid IPv4 address")
		}
	}

	if mode == ModeUpdate && in.Provider == nil && in.Hostname == nil && in.Alias == nil && in.IPv4 == nil {
		errs = append(errs, "At least one updatable field (provider, hostname, alias, ipv4) is required")
	}

	return out, errs
}

// IsIPv4 reports whether s is a strict dotted-quad IPv4 address. netip
// rejects leading zeros, short forms and anything IPv6.
func IsIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}
