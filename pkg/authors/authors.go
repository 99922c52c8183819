// Package authors generates the person subgraph for a list of author
// QIDs: E21 persons with appellations, identifiers, birth and death
// events, gender types and images.
package authors

import (
	"context"
	"fmt"
	"strings"

	"github.com/sappho-digital/wiki2crm/pkg/align"
	"github.com/sappho-digital/wiki2crm/pkg/logger"
	"github.com/sappho-digital/wiki2crm/pkg/store"
	"github.com/sappho-digital/wiki2crm/pkg/wikidata"
)

// Client is the subset of the SPARQL client the generator needs.
// *wikidata.Client satisfies it.
type Client interface {
	Query(ctx context.Context, sparql string) ([]wikidata.Binding, error)
}

// Generator builds the authors graph batch by batch.
type Generator struct {
	client Client
}

// NewGenerator creates a Generator using the given SPARQL client.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

const (
	idTypeURI     = store.NamespaceSappho + "id_type/wikidata"
	genderTypeURI = store.NamespaceSappho + "gender_type/wikidata"
)

// Generate fetches person facts for the given QIDs in batches and
// returns the assembled triple store. A failed batch is logged and
// skipped; only context cancellation aborts the run.
func (generator *Generator) Generate(ctx context.Context, qids []string) (*store.TripleStore, error) {
	tripleStore := store.NewTripleStore()
	emitter := store.NewEmitter(tripleStore)
	emitHeader(emitter)
	align.EmitECRMAlignment(tripleStore)

	for _, batch := range wikidata.Batch(qids, 0) {
		rows, err := generator.client.Query(ctx, authorsQuery(batch))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("failed to fetch authors batch, skipping", "size", len(batch), "error", err)
			continue
		}
		// A person with several images or places yields several rows;
		// the idempotent store collapses the shared triples.
		for _, row := range rows {
			emitRow(emitter, row)
		}
	}

	if err := emitter.Err(); err != nil {
		return nil, fmt.Errorf("failed to emit authors graph: %w", err)
	}
	logger.Info("authors graph generated", "authors", len(qids), "triples", tripleStore.Count())
	return tripleStore, nil
}

func emitHeader(e *store.Emitter) {
	ontology := store.NamespaceSappho + "ontology/authors"
	e.Add(ontology, store.RDFType, store.OWLOntology)
	for _, imported := range []string{
		store.NamespaceCRM,
		store.NamespaceECRM,
		store.NamespaceProv,
	} {
		e.Add(ontology, store.OWLImports, imported)
	}

	e.Add(idTypeURI, store.RDFType, store.ECRMType)
	e.Add(idTypeURI, store.RDFSLabel, store.LangLiteral("Wikidata ID", "en"))
	e.Add(idTypeURI, store.OWLSameAs, store.WD("Q43649390"))

	e.Add(genderTypeURI, store.RDFType, store.ECRMType)
	e.Add(genderTypeURI, store.RDFSLabel, store.LangLiteral("Wikidata Gender", "en"))
}

func authorsQuery(qids []string) string {
	return fmt.Sprintf(`
SELECT ?item ?itemLabel ?gender ?genderLabel ?birthPlace ?birthPlaceLabel ?birthDate
       ?deathPlace ?deathPlaceLabel ?deathDate ?image WHERE {
  VALUES ?item { %s }
  OPTIONAL { ?item wdt:P21 ?gender . }
  OPTIONAL { ?item wdt:P569 ?birthDate . }
  OPTIONAL { ?item wdt:P19 ?birthPlace . }
  OPTIONAL { ?item wdt:P570 ?deathDate . }
  OPTIONAL { ?item wdt:P20 ?deathPlace . }
  OPTIONAL { ?item wdt:P18 ?image . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en" . }
}`, wikidata.ValuesClause(qids))
}

func emitRow(e *store.Emitter, row wikidata.Binding) {
	qid := row.QID("item")
	if qid == "" {
		return
	}
	label := strings.TrimSpace(row.Value("itemLabel"))
	if label == "" || label == qid {
		label = "Unknown (" + qid + ")"
	}

	personURI := store.Sappho("person", qid)
	appellationURI := store.Sappho("appellation", qid)
	identifierURI := store.Sappho("identifier", qid)

	e.Add(personURI, store.RDFType, store.ECRMPerson)
	e.Add(personURI, store.RDFSLabel, store.LangLiteral(label, "en"))
	e.Add(personURI, store.OWLSameAs, store.WD(qid))

	e.AddPair(personURI, store.ECRMActorIdentifiedBy, appellationURI, store.ECRMActorIdentifies)
	e.Add(appellationURI, store.RDFType, store.ECRMActorAppellation)
	e.Add(appellationURI, store.RDFSLabel, store.LangLiteral(label, "en"))
	e.Add(appellationURI, store.ProvWasDerivedFrom, store.WD(qid))

	e.AddPair(personURI, store.ECRMIsIdentifiedBy, identifierURI, store.ECRMIdentifies)
	e.Add(identifierURI, store.RDFType, store.ECRMIdentifier)
	e.Add(identifierURI, store.RDFSLabel, store.PlainLiteral(qid))
	e.AddPair(identifierURI, store.ECRMHasType, idTypeURI, store.ECRMIsTypeOf)

	emitLifeEvent(e, row, lifeEvent{
		kind:       "birth",
		dateVar:    "birthDate",
		placeVar:   "birthPlace",
		class:      store.ECRMBirth,
		fromPerson: store.ECRMWasBorn,
		toPerson:   store.ECRMBroughtIntoLife,
		label:      "Birth of " + label,
		personURI:  personURI,
		personQID:  qid,
	})
	emitLifeEvent(e, row, lifeEvent{
		kind:       "death",
		dateVar:    "deathDate",
		placeVar:   "deathPlace",
		class:      store.ECRMDeath,
		fromPerson: store.ECRMDiedIn,
		toPerson:   store.ECRMWasDeathOf,
		label:      "Death of " + label,
		personURI:  personURI,
		personQID:  qid,
	})

	if row.Has("gender") && row.Has("genderLabel") {
		genderURI := store.Sappho("gender", row.QID("gender"))
		e.Add(genderURI, store.RDFType, store.ECRMType)
		e.Add(genderURI, store.RDFSLabel, store.LangLiteral(row.Value("genderLabel"), "en"))
		e.Add(genderURI, store.OWLSameAs, store.WD(row.QID("gender")))
		e.AddPair(genderURI, store.ECRMHasType, genderTypeURI, store.ECRMIsTypeOf)
		e.AddPair(personURI, store.ECRMHasType, genderURI, store.ECRMIsTypeOf)
	}

	if row.Has("image") {
		imageURI := store.Sappho("image", qid)
		visualItemURI := store.Sappho("visual_item", qid)
		e.Add(visualItemURI, store.RDFType, store.ECRMVisualItem)
		e.Add(visualItemURI, store.RDFSLabel, store.LangLiteral("Visual representation of "+label, "en"))
		e.AddPair(visualItemURI, store.ECRMRepresents, personURI, store.ECRMHasRepresentation)
		e.Add(imageURI, store.RDFType, store.ECRMImage)
		e.AddPair(imageURI, store.ECRMShowsVisualItem, visualItemURI, store.ECRMIsShownBy)
		e.Add(imageURI, store.RDFSSeeAlso, row.Value("image"))
		e.Add(imageURI, store.ProvWasDerivedFrom, store.WD(qid))
	}
}

type lifeEvent struct {
	kind       string
	dateVar    string
	placeVar   string
	class      string
	fromPerson string
	toPerson   string
	label      string
	personURI  string
	personQID  string
}

// emitLifeEvent emits a birth or death event when a date or place is
// known, with an E52 time-span shared by date across all persons.
func emitLifeEvent(e *store.Emitter, row wikidata.Binding, event lifeEvent) {
	hasDate := row.Has(event.dateVar)
	hasPlace := row.Has(event.placeVar)
	if !hasDate && !hasPlace {
		return
	}

	eventURI := store.Sappho(event.kind, event.personQID)
	e.AddPair(event.personURI, event.fromPerson, eventURI, event.toPerson)
	e.Add(eventURI, store.RDFType, event.class)
	e.Add(eventURI, store.RDFSLabel, store.LangLiteral(event.label, "en"))
	e.Add(eventURI, store.ProvWasDerivedFrom, store.WD(event.personQID))

	if hasDate {
		date := formatDate(row.Value(event.dateVar))
		timespanURI := store.Sappho("timespan", strings.ReplaceAll(date, "-", ""))
		e.Add(timespanURI, store.RDFType, store.ECRMTimeSpan)
		e.Add(timespanURI, store.RDFSLabel, store.TypedLiteral(date, store.XSDDate))
		e.AddPair(eventURI, store.ECRMHasTimeSpan, timespanURI, store.ECRMIsTimeSpanOf)
	}
	if hasPlace {
		placeQID := row.QID(event.placeVar)
		placeURI := store.Sappho("place", placeQID)
		e.AddPair(eventURI, store.ECRMTookPlaceAt, placeURI, store.ECRMWitnessed)
		e.Add(placeURI, store.RDFType, store.ECRMPlace)
		e.Add(placeURI, store.OWLSameAs, store.WD(placeQID))
		if row.Has(event.placeVar + "Label") {
			e.Add(placeURI, store.RDFSLabel, store.LangLiteral(row.Value(event.placeVar+"Label"), "en"))
		}
	}
}

// formatDate trims an ISO timestamp to its date part.
func formatDate(iso string) string {
	if idx := strings.IndexByte(iso, 'T'); idx != -1 {
		return iso[:idx]
	}
	return iso
}
