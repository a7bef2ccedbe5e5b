package dns

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Reconciler ensures the external A-record for a hostname carries the given
// IPv4 address. Implementations are synchronous; a failed reconcile is
// reported to the caller, never queued or retried.
type Reconciler interface {
	Reconcile(ctx context.Context, hostname, ipv4 string) error
}

type disabled struct{}

// NewDisabled returns a reconciler used when no provider credentials are
// configured. Sync is best-effort and optionally enabled, so skipping only
// warrants a warning.
func NewDisabled() Reconciler {
	return disabled{}
}

func (disabled) Reconcile(_ context.Context, hostname, ipv4 string) error {
	if ipv4 == "" {
		return nil
	}
	logrus.Warnf("dns sync is not configured, skipping A-record sync for %s -> %s", hostname, ipv4)
	return nil
}
