package align

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sappho-digital/wiki2crm/pkg/logger"
	"github.com/sappho-digital/wiki2crm/pkg/store"
	"github.com/sappho-digital/wiki2crm/pkg/wikidata"
)

// Client is the subset of the SPARQL client enrichment needs.
// *wikidata.Client satisfies it.
type Client interface {
	Query(ctx context.Context, sparql string) ([]wikidata.Binding, error)
}

// identifierSystems are the external authorities that get typed E42
// identifier nodes in addition to the owl:sameAs link.
var identifierSystems = []struct {
	variable string
	slug     string
	label    string
	uriFor   func(id string) string
}{
	{"gnd", "gnd", "GND ID", func(id string) string { return "http://d-nb.info/gnd/" + id }},
	{"viaf", "viaf", "VIAF ID", func(id string) string { return "http://viaf.org/viaf/" + id }},
	{"geonames", "geonames", "GeoNames ID", func(id string) string { return "http://sws.geonames.org/" + id + "/" }},
}

// enrichmentQuery looks up external identifiers for a batch of entities:
// GND (P227), VIAF (P214), GeoNames (P1566), Goodreads work (P8383) and
// exact-match URIs (P2888/P1709) restricted to schema.org and DBpedia.
func enrichmentQuery(qids []string) string {
	return fmt.Sprintf(`
SELECT ?item ?gnd ?viaf ?geonames ?goodreads ?exact WHERE {
  VALUES ?item { %s }
  OPTIONAL { ?item wdt:P227 ?gnd . }
  OPTIONAL { ?item wdt:P214 ?viaf . }
  OPTIONAL { ?item wdt:P1566 ?geonames . }
  OPTIONAL { ?item wdt:P8383 ?goodreads . }
  OPTIONAL {
    ?item wdt:P2888|wdt:P1709 ?exact .
    FILTER(STRSTARTS(STR(?exact), "http://schema.org/") || CONTAINS(STR(?exact), "dbpedia.org"))
  }
}`, wikidata.ValuesClause(qids))
}

// Enrich scans the store for subjects linked to Wikidata entities via
// owl:sameAs, looks up their external identifiers in batches, and adds
// further owl:sameAs links to GND, VIAF, GeoNames, Goodreads, schema.org
// and DBpedia. GND, VIAF and GeoNames identifiers additionally get typed
// E42 identifier nodes. It returns the number of sameAs links added. A failed batch is
// logged and skipped; only context cancellation aborts the run.
func Enrich(ctx context.Context, client Client, ts *store.TripleStore) (int, error) {
	subjectsByQID := wikidataSubjects(ts)
	if len(subjectsByQID) == 0 {
		return 0, nil
	}

	qids := make([]string, 0, len(subjectsByQID))
	for qid := range subjectsByQID {
		qids = append(qids, qid)
	}
	sort.Strings(qids)

	emitter := store.NewEmitter(ts)
	added := 0
	for _, batch := range wikidata.Batch(qids, 0) {
		rows, err := client.Query(ctx, enrichmentQuery(batch))
		if err != nil {
			if ctx.Err() != nil {
				return added, ctx.Err()
			}
			logger.Warn("failed to fetch enrichment batch, skipping", "size", len(batch), "error", err)
			continue
		}
		for _, row := range rows {
			added += applyRow(ts, emitter, subjectsByQID, row)
		}
	}

	if err := emitter.Err(); err != nil {
		return added, fmt.Errorf("failed to emit enrichment triples: %w", err)
	}
	logger.Info("identifier enrichment complete", "entities", len(qids), "links", added)
	return added, nil
}

// wikidataSubjects maps each referenced Wikidata QID to the subjects
// that carry an owl:sameAs link to it.
func wikidataSubjects(ts *store.TripleStore) map[string][]string {
	subjects := make(map[string][]string)
	for _, triple := range ts.Find("", store.OWLSameAs, "") {
		qid, ok := strings.CutPrefix(triple.Object, store.NamespaceWD)
		if !ok || !wikidata.IsQID(qid) {
			continue
		}
		subjects[qid] = append(subjects[qid], triple.Subject)
	}
	return subjects
}

func applyRow(ts *store.TripleStore, e *store.Emitter, subjectsByQID map[string][]string, row wikidata.Binding) int {
	qid := row.QID("item")
	subjects := subjectsByQID[qid]
	if len(subjects) == 0 {
		return 0
	}

	var uris []string
	for _, system := range identifierSystems {
		if !row.Has(system.variable) {
			continue
		}
		id := row.Value(system.variable)
		uris = append(uris, system.uriFor(id))
		for _, subject := range subjects {
			emitIdentifier(e, subject, system.slug, system.label, id)
		}
	}
	if row.Has("goodreads") {
		uris = append(uris, "https://www.goodreads.com/work/"+row.Value("goodreads"))
	}
	if row.Has("exact") {
		uris = append(uris, row.Value("exact"))
	}

	added := 0
	for _, subject := range subjects {
		for _, uri := range uris {
			if ts.Exists(subject, store.OWLSameAs, uri) {
				continue
			}
			e.Add(subject, store.OWLSameAs, uri)
			added++
		}
	}
	return added
}

// emitIdentifier attaches a typed E42 identifier node for an external
// authority to a subject.
func emitIdentifier(e *store.Emitter, subject, slug, typeLabel, id string) {
	idType := store.Sappho("id_type", slug)
	e.Add(idType, store.RDFType, store.ECRMType)
	e.Add(idType, store.RDFSLabel, store.LangLiteral(typeLabel, "en"))

	identifier := store.Sappho("identifier", slug, id)
	e.Add(identifier, store.RDFType, store.ECRMIdentifier)
	e.Add(identifier, store.RDFSLabel, store.PlainLiteral(id))
	e.AddPair(subject, store.ECRMIsIdentifiedBy, identifier, store.ECRMIdentifies)
	e.AddPair(identifier, store.ECRMHasType, idType, store.ECRMIsTypeOf)
}
