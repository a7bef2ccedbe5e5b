package validate

import (
	"reflect"
	"testing"

	"github.com/driftdns/resolver-dns/pkg/model"
)

func strPtr(s string) *string {
	return &s
}

func TestResolverCreate(t *testing.T) {
	tests := []struct {
		name     string
		payload  model.ResolverPayload
		wantErrs []string
	}{
		{
			name:     "empty payload",
			payload:  model.ResolverPayload{},
			wantErrs: []string{"provider is required", "hostname is required"},
		},
		{
			name: "valid full payload",
			payload: model.ResolverPayload{
				Provider: strPtr("cf"),
				Hostname: strPtr("a.example.com"),
				Alias:    strPtr("edge"),
				IPv4:     strPtr("192.168.1.1"),
			},
		},
		{
			name: "whitespace-only provider",
			payload: model.ResolverPayload{
				Provider: strPtr("   "),
				Hostname: strPtr("a.example.com"),
			},
			wantErrs: []string{"provider cannot be empty"},
		},
		{
			name: "errors accumulate across fields",
			payload: model.ResolverPayload{
				Provider: strPtr(""),
				Hostname: strPtr(" "),
				IPv4:     strPtr("abc"),
			},
			wantErrs: []string{
				"provider cannot be empty",
				"hostname cannot be empty",
				"ipv4 must be a valid IPv4 address",
			},
		},
		{
			name: "empty ipv4 means unset",
			payload: model.ResolverPayload{
				Provider: strPtr("cf"),
				Hostname: strPtr("a.example.com"),
				IPv4:     strPtr(""),
			},
		},
		{
			name: "empty alias allowed",
			payload: model.ResolverPayload{
				Provider: strPtr("cf"),
				Hostname: strPtr("a.example.com"),
				Alias:    strPtr(""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Resolver(tt.payload, ModeCreate)
			if !reflect.DeepEqual(errs, tt.wantErrs) {
				t.Fatalf("Resolver() errs = %v, want %v", errs, tt.wantErrs)
			}
		})
	}
}

func TestResolverUpdate(t *testing.T) {
	_, errs := Resolver(model.ResolverPayload{}, ModeUpdate)
	want := []string{"At least one updatable field (provider, hostname, alias, ipv4) is required"}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("Resolver() errs = %v, want %v", errs, want)
	}

	// Any single recognized field satisfies the update-mode requirement.
	out, errs := Resolver(model.ResolverPayload{Alias: strPtr("  edge  ")}, ModeUpdate)
	if len(errs) != 0 {
		t.Fatalf("unexpected errs: %v", errs)
	}
	if out.Alias == nil || *out.Alias != "edge" {
		t.Fatalf("alias not trimmed: %+v", out.Alias)
	}
	if out.Provider != nil || out.Hostname != nil || out.IPv4 != nil {
		t.Fatalf("absent fields must stay absent: %+v", out)
	}
}

func TestResolverNormalizesFields(t *testing.T) {
	out, errs := Resolver(model.ResolverPayload{
		Provider: strPtr("  cf  "),
		Hostname: strPtr(" a.example.com "),
		IPv4:     strPtr(" 1.2.3.4 "),
	}, ModeCreate)
	if len(errs) != 0 {
		t.Fatalf("unexpected errs: %v", errs)
	}
	if *out.Provider != "cf" || *out.Hostname != "a.example.com" || *out.IPv4 != "1.2.3.4" {
		t.Fatalf("fields not trimmed: %+v", out)
	}
}

func TestIsIPv4(t *testing.T) {
	invalid := []string{"256.1.1.1", "1.2.3", "1.2.3.4.5", "abc", "::1", "1.2.3.04"}
	for _, s := range invalid {
		if IsIPv4(s) {
			t.Errorf("IsIPv4(%q) = true, want false", s)
		}
	}

	valid := []string{"0.0.0.0", "255.255.255.255", "192.168.1.1"}
	for _, s := range valid {
		if !IsIPv4(s) {
			t.Errorf("IsIPv4(%q) = false, want true", s)
		}
	}
}
