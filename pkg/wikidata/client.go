// Package wikidata implements the fetch collaborator: a rate-limited,
// retrying SPARQL client for the Wikidata Query Service, returning
// property->value facts and labels per entity identifier.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sappho-digital/wiki2crm/internal/util"
)

// DefaultEndpoint is the public Wikidata Query Service SPARQL endpoint.
const DefaultEndpoint = "https://query.wikidata.org/sparql"

// DefaultUserAgent identifies this tool per the WDQS etiquette policy.
const DefaultUserAgent = "wiki2crm/1.0 (https://github.com/sappho-digital/wiki2crm)"

// Config holds configuration for a Client.
type Config struct {
	// Endpoint is the SPARQL endpoint URL. Default: DefaultEndpoint.
	Endpoint string

	// UserAgent is sent with every request. Default: DefaultUserAgent.
	UserAgent string

	// RequestsPerSecond caps the query rate. Default: 1.
	RequestsPerSecond float64

	// MaxRetries bounds attempts per query for transient failures.
	// Default: 5.
	MaxRetries int

	// BackoffBase is the linear backoff unit between retries.
	// Default: 5 seconds (the n-th retry waits n*BackoffBase).
	BackoffBase time.Duration

	// Languages is the label language preference order. Default: en, de.
	Languages []string

	// HTTPClient is the underlying HTTP client. Default: a client with a
	// 120 second timeout.
	HTTPClient *http.Client
}

// Client is a SPARQL client for one endpoint. All queries pass through a
// shared rate limiter; transient failures are retried with linear backoff.
type Client struct {
	endpoint    string
	userAgent   string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	backoffBase time.Duration
	languages   []string
	labels      *labelCache
}

// NewClient creates a Client from the given configuration, filling in
// defaults for zero values.
func NewClient(config Config) *Client {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}
	backoffBase := config.BackoffBase
	if backoffBase <= 0 {
		backoffBase = 5 * time.Second
	}
	languages := config.Languages
	if len(languages) == 0 {
		languages = []string{"en", "de"}
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	return &Client{
		endpoint:    endpoint,
		userAgent:   userAgent,
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		languages:   languages,
		labels:      newLabelCache(),
	}
}

// Query executes a SPARQL SELECT/ASK query and returns the result rows.
// Transient failures (network errors, HTTP 429 and 5xx) are retried with
// linear backoff until ctx is done or the retry budget is exhausted.
func (c *Client) Query(ctx context.Context, query string) ([]Binding, error) {
	response, err := util.RetryWithBackoff(ctx, c.maxRetries, c.backoffBase,
		func(ctx context.Context) (*sparqlResponse, error) {
			return c.queryOnce(ctx, query)
		})
	if err != nil {
		return nil, err
	}
	return response.Results.Bindings, nil
}

func (c *Client) queryOnce(ctx context.Context, query string) (*sparqlResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	requestURL := c.endpoint + "?query=" + url.QueryEscape(query)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sparql request: %w", err)
	}
	request.Header.Set("Accept", "application/sparql-results+json")
	request.Header.Set("User-Agent", c.userAgent)

	httpResponse, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("sparql request failed: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		// Drain so the connection can be reused across retries.
		_, _ = io.Copy(io.Discard, httpResponse.Body)
		statusErr := &StatusError{StatusCode: httpResponse.StatusCode}
		if transientStatus(httpResponse.StatusCode) {
			return nil, statusErr
		}
		return nil, util.Permanent(statusErr)
	}

	var parsed sparqlResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode sparql response: %w", err)
	}
	return &parsed, nil
}

// EntityFacts is the property->value(s) mapping for one entity, plus its
// display label and the instance-of type closure the classifier consumes.
type EntityFacts struct {
	QID        string
	Label      string
	Types      []string            // P31/P279* closure, as QIDs
	Properties map[string][]string // direct property PID -> value QIDs/strings
}

// Has reports whether the entity carries the given direct property.
func (f *EntityFacts) Has(pid string) bool {
	return len(f.Properties[pid]) > 0
}

// Values returns the values of a direct property (possibly empty).
func (f *EntityFacts) Values(pid string) []string {
	return f.Properties[pid]
}

// Entity fetches the direct claims and the instance-of closure for one
// QID. Returns ErrNotFound when the identifier resolves to nothing.
func (c *Client) Entity(ctx context.Context, qid string) (*EntityFacts, error) {
	claimsQuery := fmt.Sprintf(`
SELECT ?prop ?value WHERE {
  wd:%s ?p ?value .
  FILTER(STRSTARTS(STR(?p), "http://www.wikidata.org/prop/direct/"))
  BIND(STRAFTER(STR(?p), "direct/") AS ?prop)
}`, qid)

	rows, err := c.Query(ctx, claimsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch claims for %s: %w", qid, err)
	}

	facts := &EntityFacts{
		QID:        qid,
		Properties: make(map[string][]string),
	}
	for _, row := range rows {
		prop := row.Value("prop")
		if prop == "" {
			continue
		}
		value := row.Value("value")
		if strings.HasPrefix(value, "http://www.wikidata.org/entity/") {
			value = row.QID("value")
		}
		facts.Properties[prop] = append(facts.Properties[prop], value)
	}

	if len(facts.Properties) == 0 {
		return nil, fmt.Errorf("%s: %w", qid, ErrNotFound)
	}

	facts.Types, err = c.Types(ctx, qid)
	if err != nil {
		return nil, err
	}

	facts.Label, err = c.Label(ctx, qid)
	if err != nil {
		return nil, err
	}

	return facts, nil
}

// Types fetches the P31/P279* instance-of closure for a QID. An entity
// without any declared type yields an empty slice, not an error.
func (c *Client) Types(ctx context.Context, qid string) ([]string, error) {
	query := fmt.Sprintf(`
SELECT DISTINCT ?class WHERE {
  wd:%s wdt:P31/wdt:P279* ?class .
}`, qid)

	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch type closure for %s: %w", qid, err)
	}
	var types []string
	for _, row := range rows {
		if class := row.QID("class"); class != "" {
			types = append(types, class)
		}
	}
	return types, nil
}
