package intertext

import (
	"context"

	"github.com/sappho-digital/wiki2crm/pkg/wikidata"
)

// Fetcher is the external fact-retrieval collaborator. Implementations
// must signal a permanently missing identifier with an error matching
// wikidata.ErrNotFound; transient failures are expected to be retried
// internally before surfacing. *wikidata.Client satisfies this
// interface.
type Fetcher interface {
	// Entity returns the property->value(s) facts for one identifier,
	// including its display label and instance-of type closure.
	Entity(ctx context.Context, qid string) (*wikidata.EntityFacts, error)

	// Types returns the instance-of type closure for one identifier.
	Types(ctx context.Context, qid string) ([]string, error)

	// Label returns a display label for one identifier.
	Label(ctx context.Context, qid string) (string, error)
}

// LabelPrefetcher is an optional Fetcher capability: implementations
// that can resolve many labels in one go warm their cache up front so
// later Label calls do not hit the endpoint one identifier at a time.
type LabelPrefetcher interface {
	PrefetchLabels(ctx context.Context, qids []string) error
}

var (
	_ Fetcher         = (*wikidata.Client)(nil)
	_ LabelPrefetcher = (*wikidata.Client)(nil)
)
