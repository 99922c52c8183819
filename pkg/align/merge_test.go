package align

import (
	"testing"

	"github.com/sappho-digital/wiki2crm/pkg/store"
)

func TestMergeReplacesOntologyHeaders(t *testing.T) {
	relations := store.NewTripleStore()
	_ = relations.Add(store.Sappho("ontology", "relations"), store.RDFType, store.OWLOntology)
	_ = relations.Add(store.Sappho("ontology", "relations"), store.OWLImports, store.NamespaceINTRO)
	_ = relations.Add(store.Sappho("relation", "Q1_Q2"), store.RDFType, store.INTRORelation)

	works := store.NewTripleStore()
	_ = works.Add(store.Sappho("ontology", "works"), store.RDFType, store.OWLOntology)
	_ = works.Add(store.Sappho("expression", "Q1"), store.RDFType, store.LRMooExpression)

	merged := Merge(relations, works)

	if merged.HasSubject(store.Sappho("ontology", "relations")) {
		t.Error("Per-stage ontology header should be dropped")
	}
	if merged.HasSubject(store.Sappho("ontology", "works")) {
		t.Error("Per-stage ontology header should be dropped")
	}
	if !merged.Exists(store.Sappho("ontology", "all"), store.RDFType, store.OWLOntology) {
		t.Error("Combined ontology header missing")
	}
	if !merged.Exists(store.Sappho("ontology", "all"), store.OWLImports, store.NamespaceINTRO) {
		t.Error("Combined header should import INTRO")
	}
	if !merged.Exists(store.Sappho("relation", "Q1_Q2"), store.RDFType, store.INTRORelation) {
		t.Error("Relation triples should survive the merge")
	}
	if !merged.Exists(store.Sappho("expression", "Q1"), store.RDFType, store.LRMooExpression) {
		t.Error("Expression triples should survive the merge")
	}
}

func TestMergeKeepsOneLabelPerSubject(t *testing.T) {
	person := store.Sappho("person", "Q1")

	first := store.NewTripleStore()
	_ = first.Add(person, store.RDFSLabel, store.PlainLiteral("Sappho"))

	second := store.NewTripleStore()
	_ = second.Add(person, store.RDFSLabel, store.LangLiteral("Sappho", "en"))

	merged := Merge(first, second)

	labels := merged.Find(person, store.RDFSLabel, "")
	if len(labels) != 1 {
		t.Fatalf("Expected 1 label after merge, got %d", len(labels))
	}
	if labels[0].Object != store.LangLiteral("Sappho", "en") {
		t.Errorf("Language-tagged label should win, got %s", labels[0].Object)
	}
}

func TestMergeLabelChoiceIsDeterministic(t *testing.T) {
	person := store.Sappho("person", "Q1")

	build := func(order []string) *store.TripleStore {
		ts := store.NewTripleStore()
		for _, label := range order {
			_ = ts.Add(person, store.RDFSLabel, store.LangLiteral(label, "en"))
		}
		return ts
	}

	forward := Merge(build([]string{"Alpha", "Beta"}))
	reverse := Merge(build([]string{"Beta", "Alpha"}))

	forwardLabel := forward.GetOne(person, store.RDFSLabel)
	reverseLabel := reverse.GetOne(person, store.RDFSLabel)
	if forwardLabel != reverseLabel {
		t.Errorf("Label choice depends on insertion order: %s vs %s", forwardLabel, reverseLabel)
	}
}

func TestMergeSingleLabelUntouched(t *testing.T) {
	ts := store.NewTripleStore()
	place := store.Sappho("place", "Q1741")
	_ = ts.Add(place, store.RDFSLabel, store.LangLiteral("Vienna", "en"))
	_ = ts.Add(place, store.RDFType, store.ECRMPlace)

	merged := Merge(ts)

	if !merged.Exists(place, store.RDFSLabel, store.LangLiteral("Vienna", "en")) {
		t.Error("Sole label should be kept as is")
	}
}
