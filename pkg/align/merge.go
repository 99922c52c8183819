package align

import (
	"sort"

	"github.com/sappho-digital/wiki2crm/pkg/logger"
	"github.com/sappho-digital/wiki2crm/pkg/store"
)

// Merge combines the per-stage graphs into a single store. Each stage
// carries its own ontology header; those headers are dropped and replaced
// with a combined one. Subjects that accumulated conflicting rdfs:label
// values across stages keep a single label, preferring a language-tagged
// one.
func Merge(sources ...*store.TripleStore) *store.TripleStore {
	merged := store.NewTripleStore()
	emitMergedHeader(merged)

	ontologySubjects := make(map[string]bool)
	for _, source := range sources {
		for _, triple := range source.Find("", store.RDFType, store.OWLOntology) {
			ontologySubjects[triple.Subject] = true
		}
	}

	labels := make(map[string][]string)
	var rest []store.Triple
	for _, source := range sources {
		for _, triple := range source.All() {
			if ontologySubjects[triple.Subject] {
				continue
			}
			if triple.Predicate == store.RDFSLabel {
				labels[triple.Subject] = append(labels[triple.Subject], triple.Object)
				continue
			}
			rest = append(rest, triple)
		}
	}
	merged.BulkAdd(rest)

	e := store.NewEmitter(merged)
	dropped := 0
	for subject, values := range labels {
		chosen, extra := chooseLabel(values)
		dropped += extra
		e.Add(subject, store.RDFSLabel, chosen)
	}
	if dropped > 0 {
		logger.Debug("dropped duplicate labels during merge", "count", dropped)
	}

	logger.Info("graphs merged", "sources", len(sources), "triples", merged.Count())
	return merged
}

// chooseLabel picks one label out of the values a subject carries and
// returns how many distinct values were discarded. Language-tagged
// labels win over untagged ones; ties break lexicographically so merges
// are deterministic regardless of source order.
func chooseLabel(values []string) (string, int) {
	distinct := make(map[string]bool, len(values))
	for _, value := range values {
		distinct[value] = true
	}
	unique := make([]string, 0, len(distinct))
	for value := range distinct {
		unique = append(unique, value)
	}
	sort.Strings(unique)

	for _, value := range unique {
		if store.LiteralLang(value) != "" {
			return value, len(unique) - 1
		}
	}
	return unique[0], len(unique) - 1
}

func emitMergedHeader(ts *store.TripleStore) {
	e := store.NewEmitter(ts)
	ontology := store.NamespaceSappho + "ontology/all"
	e.Add(ontology, store.RDFType, store.OWLOntology)
	for _, imported := range []string{
		store.NamespaceECRM,
		store.NamespaceLRMoo,
		store.NamespaceINTRO,
		store.NamespaceProv,
	} {
		e.Add(ontology, store.OWLImports, imported)
	}
}
