package works

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sappho-digital/wiki2crm/pkg/store"
	"github.com/sappho-digital/wiki2crm/pkg/wikidata"
)

type fakeClient struct {
	rows    []wikidata.Binding
	labels  map[string]string
	fail    bool
	queries int
}

func (f *fakeClient) Query(ctx context.Context, sparql string) ([]wikidata.Binding, error) {
	f.queries++
	if f.fail {
		return nil, errors.New("endpoint unavailable")
	}
	if !strings.Contains(sparql, "VALUES ?work") {
		return nil, errors.New("unexpected query shape")
	}
	return f.rows, nil
}

func (f *fakeClient) Label(ctx context.Context, qid string) (string, error) {
	if label, ok := f.labels[qid]; ok {
		return label, nil
	}
	return qid, nil
}

func entity(qid string) wikidata.Term {
	return wikidata.Term{Type: "uri", Value: "http://www.wikidata.org/entity/" + qid}
}

func literal(value string) wikidata.Term {
	return wikidata.Term{Type: "literal", Value: value}
}

func TestGenerateEmitsLRMooChain(t *testing.T) {
	client := &fakeClient{
		rows: []wikidata.Binding{{
			"work":          entity("Q1"),
			"workLabel":     literal("Medea"),
			"title_de":      wikidata.Term{Type: "literal", Value: "Medea", Lang: "de"},
			"author":        entity("Q100"),
			"authorLabel":   literal("Euripides"),
			"genre":         entity("Q25372"),
			"genreLabel":    literal("tragedy"),
			"creation_date": literal("1599-01-01T00:00:00Z"),
		}},
	}

	ts, err := NewGenerator(client).Generate(context.Background(), []string{"Q1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	work := store.Sappho("work", "Q1")
	expression := store.Sappho("expression", "Q1")
	manifestation := store.Sappho("manifestation", "Q1")
	item := store.Sappho("item", "Q1")

	if !ts.Exists(work, store.RDFType, store.LRMooWork) {
		t.Error("Missing F1 work node")
	}
	if !ts.Exists(work, store.LRMooIsRealisedIn, expression) {
		t.Error("Work should be realised in expression")
	}
	if !ts.Exists(expression, store.RDFType, store.LRMooExpression) {
		t.Error("Missing F2 expression node")
	}
	if !ts.Exists(expression, store.OWLSameAs, store.WD("Q1")) {
		t.Error("Expression should link to Wikidata entity")
	}
	if !ts.Exists(manifestation, store.LRMooEmbodies, expression) {
		t.Error("Manifestation should embody expression")
	}
	if !ts.Exists(item, store.LRMooExemplifies, manifestation) {
		t.Error("Item should exemplify manifestation")
	}
	if !ts.Exists(store.Sappho("item_production", "Q1"), store.LRMooProduced, item) {
		t.Error("Item production should produce item")
	}
}

func TestGenerateEmitsCreationEvents(t *testing.T) {
	client := &fakeClient{
		rows: []wikidata.Binding{{
			"work":        entity("Q1"),
			"workLabel":   literal("Medea"),
			"author":      entity("Q100"),
			"authorLabel": literal("Euripides"),
			"pub_date":    literal("1787-01-01T00:00:00Z"),
		}},
	}

	ts, err := NewGenerator(client).Generate(context.Background(), []string{"Q1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	author := store.Sappho("person", "Q100")
	workCreation := store.Sappho("work_creation", "Q1")
	expressionCreation := store.Sappho("expression_creation", "Q1")
	manifestationCreation := store.Sappho("manifestation_creation", "Q1")

	if !ts.Exists(workCreation, store.LRMooInitiated, store.Sappho("work", "Q1")) {
		t.Error("Work creation should initiate work")
	}
	for _, event := range []string{workCreation, expressionCreation, manifestationCreation} {
		if !ts.Exists(event, store.ECRMCarriedOutBy, author) {
			t.Errorf("Event %s should be carried out by the author", event)
		}
		if !ts.Exists(event, store.ProvWasDerivedFrom, store.WD("Q1")) {
			t.Errorf("Event %s should carry provenance", event)
		}
	}

	timespan := store.Sappho("timespan", "1787")
	if !ts.Exists(manifestationCreation, store.ECRMHasTimeSpan, timespan) {
		t.Error("Manifestation creation should have a publication time-span")
	}
	if !ts.Exists(timespan, store.RDFSLabel, store.TypedLiteral("1787", store.XSDGYear)) {
		t.Error("Time-span label should be a gYear literal")
	}
}

func TestGenerateTitleFallsBackToLabel(t *testing.T) {
	client := &fakeClient{
		rows: []wikidata.Binding{{
			"work":      entity("Q1"),
			"workLabel": literal("Sappho"),
		}},
	}

	ts, err := NewGenerator(client).Generate(context.Background(), []string{"Q1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	titleString := store.Sappho("title_string", "expression", "Q1")
	if !ts.Exists(titleString, store.RDFSLabel, store.LangLiteral("Sappho", "de")) {
		t.Error("Entity label fallback should be tagged de")
	}
}

func TestGenerateManifestationTitleFromContainer(t *testing.T) {
	client := &fakeClient{
		rows: []wikidata.Binding{{
			"work":        entity("Q1"),
			"workLabel":   literal("Ode to Aphrodite"),
			"publishedIn": entity("Q200"),
		}},
		labels: map[string]string{"Q200": "Collected Poems"},
	}

	ts, err := NewGenerator(client).Generate(context.Background(), []string{"Q1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	titleString := store.Sappho("title_string", "manifestation", "Q1")
	if !ts.Exists(titleString, store.RDFSLabel, store.LangLiteral("Collected Poems", "en")) {
		t.Error("Manifestation title should come from the containing publication")
	}

	// The expression keeps its own title.
	expressionTitle := store.Sappho("title_string", "expression", "Q1")
	if !ts.Exists(expressionTitle, store.RDFSLabel, store.LangLiteral("Ode to Aphrodite", "de")) {
		t.Error("Expression title should be unaffected by the container")
	}
}

func TestGenerateSkipsFailedBatch(t *testing.T) {
	client := &fakeClient{fail: true}

	ts, err := NewGenerator(client).Generate(context.Background(), []string{"Q1"})
	if err != nil {
		t.Fatalf("Generate should skip failed batches, got %v", err)
	}

	// Header and alignment triples remain, but no work nodes.
	if ts.HasSubject(store.Sappho("work", "Q1")) {
		t.Error("No work nodes expected when every batch fails")
	}
	if !ts.Exists(store.NamespaceSappho+"ontology/works", store.RDFType, store.OWLOntology) {
		t.Error("Ontology header should be present regardless of fetch failures")
	}
}

func TestGenerateHeaderAndAlignment(t *testing.T) {
	client := &fakeClient{}

	ts, err := NewGenerator(client).Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !ts.Exists(idTypeURI, store.RDFSLabel, store.LangLiteral("Wikidata ID", "en")) {
		t.Error("Missing id_type node")
	}
	if !ts.Exists(genreTypeURI, store.RDFType, store.ECRMType) {
		t.Error("Missing genre_type node")
	}
	if !ts.Exists("ecrm:E21_Person", store.OWLEquivalentClass, "crm:E21_Person") {
		t.Error("Missing eCRM alignment")
	}
	if !ts.Exists("lrmoo:F3_Manifestation", store.OWLEquivalentClass, "frbroo:F3_Manifestation_Product_Type") {
		t.Error("Missing LRMoo alignment")
	}
}
