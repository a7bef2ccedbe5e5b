package model

import (
	"github.com/driftdns/resolver-dns/pkg/db"
)

// ResolverPayload is the closed set of fields a caller may submit when
// creating or updating a resolver. Pointer fields distinguish "absent" from
// "present but empty"; unknown JSON keys are dropped during decoding.
type ResolverPayload struct {
	Provider *string `json:"provider"`
	Hostname *string `json:"hostname"`
	Alias    *string `json:"alias"`
	IPv4     *string `json:"ipv4"`
}

type ListResponse struct {
	Items  []db.Resolver `json:"items"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Count  int           `json:"count"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}
