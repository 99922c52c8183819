package wikidata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		Endpoint:          server.URL,
		RequestsPerSecond: 1000,
		MaxRetries:        3,
		BackoffBase:       time.Millisecond,
		HTTPClient:        server.Client(),
	})
}

func sparqlJSON(rows ...string) string {
	return fmt.Sprintf(`{"results":{"bindings":[%s]}}`, strings.Join(rows, ","))
}

func TestQueryParsesBindings(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/sparql-results+json" {
			t.Errorf("Accept header = %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		fmt.Fprint(w, sparqlJSON(
			`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q1"},"label":{"type":"literal","value":"universe","xml:lang":"en"}}`,
		))
	})

	rows, err := client.Query(context.Background(), "SELECT ?item ?label WHERE {}")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0].QID("item"); got != "Q1" {
		t.Errorf("QID = %q, want Q1", got)
	}
	if got := rows[0].Value("label"); got != "universe" {
		t.Errorf("label = %q, want universe", got)
	}
	if got := rows[0].Lang("label"); got != "en" {
		t.Errorf("lang = %q, want en", got)
	}
}

func TestQueryRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, sparqlJSON())
	})

	if _, err := client.Query(context.Background(), "SELECT * WHERE {}"); err != nil {
		t.Fatalf("Query failed after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestQueryDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Query(context.Background(), "malformed")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected StatusError 400, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestEntityReturnsFactsAndTypes(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		switch {
		case strings.Contains(query, "STRSTARTS"):
			fmt.Fprint(w, sparqlJSON(
				`{"prop":{"type":"literal","value":"P31"},"value":{"type":"uri","value":"http://www.wikidata.org/entity/Q5"}}`,
				`{"prop":{"type":"literal","value":"P180"},"value":{"type":"uri","value":"http://www.wikidata.org/entity/Q42"}}`,
			))
		case strings.Contains(query, "P279"):
			fmt.Fprint(w, sparqlJSON(
				`{"class":{"type":"uri","value":"http://www.wikidata.org/entity/Q5"}}`,
				`{"class":{"type":"uri","value":"http://www.wikidata.org/entity/Q215627"}}`,
			))
		default:
			fmt.Fprint(w, sparqlJSON(
				`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q7243"},"label":{"type":"literal","value":"Leo Tolstoy","xml:lang":"en"}}`,
			))
		}
	})

	facts, err := client.Entity(context.Background(), "Q7243")
	if err != nil {
		t.Fatalf("Entity failed: %v", err)
	}
	if facts.Label != "Leo Tolstoy" {
		t.Errorf("label = %q", facts.Label)
	}
	if !facts.Has("P180") {
		t.Error("expected P180 in properties")
	}
	if got := facts.Values("P31"); len(got) != 1 || got[0] != "Q5" {
		t.Errorf("P31 values = %v", got)
	}
	if len(facts.Types) != 2 {
		t.Errorf("types = %v, want 2 entries", facts.Types)
	}
}

func TestEntityNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sparqlJSON())
	})

	_, err := client.Entity(context.Background(), "Q999999999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLabelPrefersConfiguredLanguageOrder(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sparqlJSON(
			`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q1"},"label":{"type":"literal","value":"Universum","xml:lang":"de"}}`,
			`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q1"},"label":{"type":"literal","value":"universe","xml:lang":"en"}}`,
		))
	})

	label, err := client.Label(context.Background(), "Q1")
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	if label != "universe" {
		t.Errorf("label = %q, want the English label", label)
	}
}

func TestLabelFallsBackToQID(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, sparqlJSON())
	})

	label, err := client.Label(context.Background(), "Q314")
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	if label != "Q314" {
		t.Errorf("label = %q, want Q314", label)
	}

	// The fallback is cached too.
	if _, err := client.Label(context.Background(), "Q314"); err != nil {
		t.Fatalf("second Label failed: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 endpoint call, got %d", got)
	}
}

func TestPrefetchLabelsWarmsCache(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, sparqlJSON(
			`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q1"},"label":{"type":"literal","value":"universe","xml:lang":"en"}}`,
			`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/Q2"},"label":{"type":"literal","value":"Earth","xml:lang":"en"}}`,
		))
	})

	if err := client.PrefetchLabels(context.Background(), []string{"Q1", "Q2", "Q1"}); err != nil {
		t.Fatalf("PrefetchLabels failed: %v", err)
	}
	prefetchCalls := calls.Load()
	if prefetchCalls != 1 {
		t.Errorf("expected 1 batched call, got %d", prefetchCalls)
	}

	label, err := client.Label(context.Background(), "Q2")
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	if label != "Earth" {
		t.Errorf("label = %q, want Earth", label)
	}
	if got := calls.Load(); got != prefetchCalls {
		t.Error("Label after prefetch should not hit the endpoint")
	}
}

func TestBatchSplitsPreservingOrder(t *testing.T) {
	qids := []string{"Q1", "Q2", "Q3", "Q4", "Q5"}
	batches := Batch(qids, 2)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if batches[2][0] != "Q5" {
		t.Errorf("last batch = %v", batches[2])
	}
}

func TestValuesClause(t *testing.T) {
	got := ValuesClause([]string{"Q1", "Q42"})
	if got != "wd:Q1 wd:Q42" {
		t.Errorf("ValuesClause = %q", got)
	}
}
