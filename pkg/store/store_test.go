package store

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewTripleStore(t *testing.T) {
	ts := NewTripleStore()

	if ts == nil {
		t.Fatal("NewTripleStore returned nil")
	}
	if ts.Count() != 0 {
		t.Errorf("New store should have 0 triples, got %d", ts.Count())
	}
}

func TestTripleStore_Add(t *testing.T) {
	ts := NewTripleStore()

	err := ts.Add("https://sappho-digital.com/expression/Q1", RDFType, LRMooExpression)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if ts.Count() != 1 {
		t.Errorf("Expected 1 triple, got %d", ts.Count())
	}

	// Idempotent re-add
	err = ts.Add("https://sappho-digital.com/expression/Q1", RDFType, LRMooExpression)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if ts.Count() != 1 {
		t.Errorf("Expected 1 triple after duplicate add, got %d", ts.Count())
	}

	err = ts.Add("https://sappho-digital.com/expression/Q1", RDFSLabel, LangLiteral("Expression of Medea", "en"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if ts.Count() != 2 {
		t.Errorf("Expected 2 triples, got %d", ts.Count())
	}
}

func TestTripleStore_Add_InvalidTriple(t *testing.T) {
	ts := NewTripleStore()

	if err := ts.Add("", RDFType, LRMooExpression); err == nil {
		t.Error("Expected error for empty subject")
	}
	if err := ts.Add("s", "", LRMooExpression); err == nil {
		t.Error("Expected error for empty predicate")
	}
	if err := ts.Add("s", RDFType, ""); err == nil {
		t.Error("Expected error for empty object")
	}
	if ts.Count() != 0 {
		t.Errorf("Store should be empty after invalid adds, got %d", ts.Count())
	}
}

func TestTripleStore_AddPair(t *testing.T) {
	ts := NewTripleStore()

	feature := Sappho("feature", "motif", "Q123")
	actualization := Sappho("actualization", "motif", "Q123_Q1")

	err := ts.AddPair(actualization, INTROActualizesFeature, feature, INTROFeatureIsActualizedIn)
	if err != nil {
		t.Fatalf("AddPair failed: %v", err)
	}

	if !ts.Exists(actualization, INTROActualizesFeature, feature) {
		t.Error("Direct triple missing after AddPair")
	}
	if !ts.Exists(feature, INTROFeatureIsActualizedIn, actualization) {
		t.Error("Inverse triple missing after AddPair")
	}
	if ts.Count() != 2 {
		t.Errorf("Expected 2 triples, got %d", ts.Count())
	}
}

func TestTripleStore_BulkAdd_SkipsInvalid(t *testing.T) {
	ts := NewTripleStore()

	triples := []Triple{
		NewTriple("s1", RDFType, LRMooWork),
		NewTriple("", RDFType, LRMooWork),   // invalid, skipped
		NewTriple("s1", RDFType, LRMooWork), // duplicate
		NewTriple("s2", RDFType, LRMooWork),
	}
	ts.BulkAdd(triples)

	if ts.Count() != 2 {
		t.Errorf("Expected 2 triples, got %d", ts.Count())
	}
}

func TestTripleStore_MergeFrom(t *testing.T) {
	first := NewTripleStore()
	_ = first.Add("s1", RDFType, LRMooWork)
	_ = first.Add("s1", RDFSLabel, LangLiteral("Work of Medea", "en"))

	second := NewTripleStore()
	_ = second.Add("s1", RDFType, LRMooWork) // shared with first
	_ = second.Add("s2", RDFType, ECRMPerson)

	added := first.MergeFrom(second)

	if added != 1 {
		t.Errorf("Expected 1 new triple from merge, got %d", added)
	}
	if first.Count() != 3 {
		t.Errorf("Expected 3 triples total, got %d", first.Count())
	}
}

func TestTripleStore_Find(t *testing.T) {
	ts := NewTripleStore()
	_ = ts.Add("s1", RDFType, LRMooExpression)
	_ = ts.Add("s1", OWLSameAs, WD("Q1"))
	_ = ts.Add("s2", RDFType, LRMooExpression)
	_ = ts.Add("s3", RDFType, ECRMPerson)

	// Wildcard all
	if got := len(ts.Find("", "", "")); got != 4 {
		t.Errorf("Expected 4 triples, got %d", got)
	}

	// Subject bound
	if got := len(ts.Find("s1", "", "")); got != 2 {
		t.Errorf("Expected 2 triples for s1, got %d", got)
	}

	// Predicate + object bound
	results := ts.Find("", RDFType, LRMooExpression)
	if len(results) != 2 {
		t.Fatalf("Expected 2 expressions, got %d", len(results))
	}
	for _, triple := range results {
		if triple.Object != LRMooExpression {
			t.Errorf("Unexpected object: %s", triple.Object)
		}
	}

	// Object bound
	if got := len(ts.Find("", "", ECRMPerson)); got != 1 {
		t.Errorf("Expected 1 person, got %d", got)
	}

	// No match
	if got := len(ts.Find("missing", "", "")); got != 0 {
		t.Errorf("Expected no triples for unknown subject, got %d", got)
	}
}

func TestTripleStore_GetAndGetOne(t *testing.T) {
	ts := NewTripleStore()
	subject := Sappho("person", "Q469571")
	_ = ts.Add(subject, RDFType, ECRMPerson)
	_ = ts.Add(subject, RDFSLabel, LangLiteral("Grillparzer", "en"))

	properties := ts.Get(subject)
	if len(properties) != 2 {
		t.Errorf("Expected 2 predicates, got %d", len(properties))
	}
	if got := ts.GetOne(subject, RDFType); got != ECRMPerson {
		t.Errorf("Expected %s, got %s", ECRMPerson, got)
	}
	if got := ts.GetOne(subject, "missing"); got != "" {
		t.Errorf("Expected empty string for unknown predicate, got %s", got)
	}
}

func TestTripleStore_HasSubject(t *testing.T) {
	ts := NewTripleStore()
	_ = ts.Add("s1", RDFType, LRMooWork)

	if !ts.HasSubject("s1") {
		t.Error("Expected HasSubject true for existing subject")
	}
	if ts.HasSubject("s2") {
		t.Error("Expected HasSubject false for unknown subject")
	}
}

func TestTripleStore_SubjectsAndPredicates(t *testing.T) {
	ts := NewTripleStore()
	_ = ts.Add("s1", RDFType, LRMooWork)
	_ = ts.Add("s2", RDFSLabel, LangLiteral("x", "en"))

	if got := len(ts.Subjects()); got != 2 {
		t.Errorf("Expected 2 subjects, got %d", got)
	}
	if got := len(ts.Predicates()); got != 2 {
		t.Errorf("Expected 2 predicates, got %d", got)
	}
}

func TestTripleStore_ConcurrentAdd(t *testing.T) {
	ts := NewTripleStore()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				subject := fmt.Sprintf("https://sappho-digital.com/expression/Q%d", i)
				_ = ts.Add(subject, RDFType, LRMooExpression)
				_ = ts.Add(subject, RDFSLabel, PlainLiteral(fmt.Sprintf("expression %d", i)))
			}
		}(worker)
	}
	wg.Wait()

	if ts.Count() != 200 {
		t.Errorf("Expected 200 triples after concurrent adds, got %d", ts.Count())
	}
}
