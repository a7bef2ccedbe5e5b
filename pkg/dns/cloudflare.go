package dns

import (
	"context"
	"fmt"

	"github.com/cloudflare/cloudflare-go"
	"github.com/sirupsen/logrus"
)

// Cloudflare's sentinel for "automatic" TTL.
const ttlAutomatic = 1

type cloudflareReconciler struct {
	api  *cloudflare.API
	zone *cloudflare.ResourceContainer
}

// NewCloudflare returns a Reconciler that keeps A-records in a single
// Cloudflare zone in sync.
func NewCloudflare(apiToken, zoneID string, opts ...cloudflare.Option) (Reconciler, error) {
	api, err := cloudflare.NewWithAPIToken(apiToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating cloudflare api client: %w", err)
	}

	return &cloudflareReconciler{
		api:  api,
		zone: cloudflare.ZoneIdentifier(zoneID),
	}, nil
}

func (c *cloudflareReconciler) Reconcile(ctx context.Context, hostname, ipv4 string) error {
	if ipv4 == "" {
		return nil
	}

	records, _, err := c.api.ListDNSRecords(ctx, c.zone, cloudflare.ListDNSRecordsParams{
		Type: "A",
		Name: hostname,
	})
	if err != nil {
		return fmt.Errorf("listing A records for %s: %w", hostname, err)
	}

	var existing *cloudflare.DNSRecord
	for i := range records {
		if records[i].Name == hostname {
			existing = &records[i]
			break
		}
	}

	if existing == nil {
		proxied := false
		_, err := c.api.CreateDNSRecord(ctx, c.zone, cloudflare.CreateDNSRecordParams{
			Type:    "A",
			Name:    hostname,
			Content: ipv4,
			TTL:     ttlAutomatic,
			Proxied: &proxied,
		})
		if err != nil {
			return fmt.Errorf("creating A record for %s: %w", hostname, err)
		}
		logrus.Infof("created A record %s -> %s", hostname, ipv4)
		return nil
	}

	if existing.Content == ipv4 {
		logrus.Debugf("A record %s already points at %s", hostname, ipv4)
		return nil
	}

	// Keep whatever TTL and proxy setting the record already carries.
	_, err = c.api.UpdateDNSRecord(ctx, c.zone, cloudflare.UpdateDNSRecordParams{
		ID:      existing.ID,
		Type:    "A",
		Name:    hostname,
		Content: ipv4,
		TTL:     existing.TTL,
		Proxied: existing.Proxied,
	})
	if err != nil {
		return fmt.Errorf("updating A record for %s: %w", hostname, err)
	}
	logrus.Infof("updated A record %s: %s -> %s", hostname, existing.Content, ipv4)
	return nil
}
