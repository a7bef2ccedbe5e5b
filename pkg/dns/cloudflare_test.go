package dns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudflare/cloudflare-go"
)

const testZoneID = "023e105f4ecef8ad9ca31a8372d0c353"

type fakeRecord struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied *bool  `json:"proxied"`
}

// fakeCloudflare is a minimal in-memory stand-in for the provider's
// dns_records endpoints, counting every write issued against it.
type fakeCloudflare struct {
	records  []fakeRecord
	requests int
	creates  int
	updates  int
	failWith string
}

func (f *fakeCloudflare) handler(t *testing.T) http.Handler {
	recordsPath := fmt.Sprintf("/zones/%s/dns_records", testZoneID)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		w.Header().Set("Content-Type", "application/json")

		if f.failWith != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"success":false,"errors":[{"code":1004,"message":%q}],"messages":[],"result":null}`, f.failWith)
			return
		}

		switch {
		case r.URL.Path == recordsPath && r.Method == http.MethodGet:
			name := r.URL.Query().Get("name")
			rType := r.URL.Query().Get("type")
			matches := []fakeRecord{}
			for _, rec := range f.records {
				if (name == "" || rec.Name == name) && (rType == "" || rec.Type == rType) {
					matches = append(matches, rec)
				}
			}
			writeResult(w, matches, len(matches))
		case r.URL.Path == recordsPath && r.Method == http.MethodPost:
			var rec fakeRecord
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				t.Errorf("bad create body: %v", err)
			}
			rec.ID = fmt.Sprintf("rec%d", len(f.records)+1)
			f.records = append(f.records, rec)
			f.creates++
			writeResult(w, rec, 1)
		case strings.HasPrefix(r.URL.Path, recordsPath+"/") && (r.Method == http.MethodPut || r.Method == http.MethodPatch):
			id := strings.TrimPrefix(r.URL.Path, recordsPath+"/")
			var in fakeRecord
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Errorf("bad update body: %v", err)
			}
			f.updates++
			for i := range f.records {
				if f.records[i].ID == id {
					in.ID = id
					f.records[i] = in
					writeResult(w, in, 1)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"errors":[{"code":81044,"message":"Record does not exist."}],"messages":[],"result":null}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func writeResult(w http.ResponseWriter, result interface{}, count int) {
	body, _ := json.Marshal(result)
	fmt.Fprintf(w, `{"success":true,"errors":[],"messages":[],"result":%s,"result_info":{"page":1,"per_page":100,"count":%d,"total_count":%d,"total_pages":1}}`, body, count, count)
}

func newTestReconciler(t *testing.T, fake *fakeCloudflare) Reconciler {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	rec, err := NewCloudflare("test-token", testZoneID, cloudflare.BaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewCloudflare: %v", err)
	}
	return rec
}

func TestReconcileCreatesMissingRecord(t *testing.T) {
	fake := &fakeCloudflare{}
	rec := newTestReconciler(t, fake)

	if err := rec.Reconcile(context.Background(), "a.example.com", "1.2.3.4"); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if fake.creates != 1 || fake.updates != 0 {
		t.Fatalf("expected exactly one create, got creates=%d updates=%d", fake.creates, fake.updates)
	}

	got := fake.records[0]
	if got.Type != "A" || got.Name != "a.example.com" || got.Content != "1.2.3.4" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.TTL != ttlAutomatic {
		t.Fatalf("fresh record should use the automatic TTL, got %d", got.TTL)
	}
	if got.Proxied == nil || *got.Proxied {
		t.Fatalf("fresh record should not be proxied, got %+v", got.Proxied)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	fake := &fakeCloudflare{}
	rec := newTestReconciler(t, fake)

	for i := 0; i < 2; i++ {
		if err := rec.Reconcile(context.Background(), "a.example.com", "1.2.3.4"); err != nil {
			t.Fatalf("Reconcile #%d: %v", i+1, err)
		}
	}
	if fake.creates+fake.updates != 1 {
		t.Fatalf("expected at most one write, got creates=%d updates=%d", fake.creates, fake.updates)
	}
}

func TestReconcileUpdatesPreservingTTLAndProxy(t *testing.T) {
	proxied := true
	fake := &fakeCloudflare{records: []fakeRecord{
		{ID: "rec1", Type: "A", Name: "a.example.com", Content: "1.2.3.4", TTL: 300, Proxied: &proxied},
	}}
	rec := newTestReconciler(t, fake)

	if err := rec.Reconcile(context.Background(), "a.example.com", "1.2.3.5"); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if fake.updates != 1 || fake.creates != 0 {
		t.Fatalf("expected exactly one update, got creates=%d updates=%d", fake.creates, fake.updates)
	}

	got := fake.records[0]
	if got.Content != "1.2.3.5" {
		t.Fatalf("content not updated: %+v", got)
	}
	if got.TTL != 300 || got.Proxied == nil || !*got.Proxied {
		t.Fatalf("ttl/proxied not preserved: %+v", got)
	}
}

func TestReconcileEmptyIPv4IsNoop(t *testing.T) {
	fake := &fakeCloudflare{}
	rec := newTestReconciler(t, fake)

	if err := rec.Reconcile(context.Background(), "a.example.com", ""); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if fake.requests != 0 {
		t.Fatalf("expected no provider traffic, got %d requests", fake.requests)
	}
}

func TestReconcileSurfacesProviderErrors(t *testing.T) {
	fake := &fakeCloudflare{failWith: "Invalid DNS record identifier"}
	rec := newTestReconciler(t, fake)

	err := rec.Reconcile(context.Background(), "a.example.com", "1.2.3.4")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Invalid DNS record identifier") {
		t.Fatalf("provider message missing from error: %v", err)
	}
}

func TestDisabledReconcilerSkips(t *testing.T) {
	rec := NewDisabled()
	if err := rec.Reconcile(context.Background(), "a.example.com", "1.2.3.4"); err != nil {
		t.Fatalf("disabled reconciler must not fail: %v", err)
	}
}
