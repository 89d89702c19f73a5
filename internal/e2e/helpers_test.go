package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"vramfit/internal/catalog"
	"vramfit/internal/httpapi"
	"vramfit/internal/service"
)

const catalogDoc = `{
  "generated_at": "2025-06-01T12:00:00Z",
  "workflows": [{"slug": "coding-agent", "name": "Coding agent"}],
  "toolchains": [{"slug": "ollama", "display_name": "Ollama"}],
  "tags": [{"slug": "coding", "name": "Coding", "category": "use_case"}],
  "family_tags": [{"family_id": "f-qwen", "tag_slug": "coding"}],
  "constraint_profiles": [
    {"slug": "rtx-4090", "display_name": "RTX 4090", "vram_gib": 24},
    {"slug": "laptop", "display_name": "Laptop", "vram_gib": 8}
  ],
  "families": [
    {"id": "f-qwen", "slug": "qwen2.5-coder", "display_name": "Qwen 2.5 Coder"},
    {"id": "f-llama", "slug": "llama3.1", "display_name": "Llama 3.1"}
  ],
  "variants": [
    {"id": "v13", "family_id": "f-qwen", "family_slug": "qwen2.5-coder", "tag": "qwen2.5-coder:14b", "tag_short": "14b"},
    {"id": "v7", "family_id": "f-llama", "family_slug": "llama3.1", "tag": "llama3.1:8b", "tag_short": "8b"},
    {"id": "vnone", "family_id": "f-llama", "family_slug": "llama3.1", "tag": "llama3.1:70b", "tag_short": "70b"}
  ],
  "variant_components": [
    {"variant_id": "v13", "weights_vram_gib": 13, "runtime_overhead_gib": 1, "kv_bytes_per_token_opt": 200000, "kv_bytes_per_token_cons": 256000},
    {"variant_id": "v7", "weights_vram_gib": 7, "runtime_overhead_gib": 0.8, "kv_bytes_per_token_opt": 120000, "kv_bytes_per_token_cons": 160000}
  ],
  "workflow_run_agg": [
    {"variant_id": "v13", "workflow_slug": "coding-agent", "toolchain_slug": "ollama", "run_count_trusted": 20, "p50_tps": 30, "avg_quality": 4.5}
  ],
  "best_templates": []
}`

func writeCatalog(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return p
}

// newServer wires a store over path into the service and HTTP API. The
// catalog is loaded only when load is true.
func newServer(t *testing.T, path string, defaults service.Defaults, load bool) (*httptest.Server, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore(catalog.StoreOptions{Path: path})
	if load {
		if _, err := store.Load(); err != nil {
			t.Fatalf("load catalog: %v", err)
		}
	}
	svc := service.New(service.Options{Store: store, Defaults: defaults})
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, store
}

func defaultDefaults() service.Defaults {
	return service.Defaults{BudgetGiB: 24, ContextLength: 16384, KVMode: "fp16", PreferQuality: true}
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json: %v body=%s", err, string(body))
	}
	return v
}
