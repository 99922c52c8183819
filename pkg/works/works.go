// Package works generates the bibliographic subgraph for a list of
// literary works: LRMoo work/expression/manifestation/item chains with
// their creation events, titles, genres, publishers, places, time-spans
// and digital copies.
package works

import (
	"context"
	"fmt"

	"github.com/sappho-digital/wiki2crm/pkg/align"
	"github.com/sappho-digital/wiki2crm/pkg/logger"
	"github.com/sappho-digital/wiki2crm/pkg/store"
	"github.com/sappho-digital/wiki2crm/pkg/wikidata"
)

// Client is the subset of the SPARQL client the generator needs.
// *wikidata.Client satisfies it.
type Client interface {
	Query(ctx context.Context, sparql string) ([]wikidata.Binding, error)
	Label(ctx context.Context, qid string) (string, error)
}

// Generator builds the works graph batch by batch.
type Generator struct {
	client Client
}

// NewGenerator creates a Generator using the given SPARQL client.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

const idTypeURI = store.NamespaceSappho + "id_type/wikidata"
const genreTypeURI = store.NamespaceSappho + "genre_type/wikidata"

// Generate fetches bibliographic facts for the given work QIDs in
// batches and returns the assembled triple store. A failed batch is
// logged and skipped; only context cancellation aborts the run.
func (generator *Generator) Generate(ctx context.Context, qids []string) (*store.TripleStore, error) {
	tripleStore := store.NewTripleStore()
	emitter := store.NewEmitter(tripleStore)
	emitHeader(emitter)
	align.EmitECRMAlignment(tripleStore)
	align.EmitLRMooAlignment(tripleStore)

	for _, batch := range wikidata.Batch(qids, 0) {
		rows, err := generator.client.Query(ctx, worksQuery(batch))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("failed to fetch works batch, skipping", "size", len(batch), "error", err)
			continue
		}
		for _, row := range rows {
			generator.emitRow(ctx, emitter, row)
		}
	}

	if err := emitter.Err(); err != nil {
		return nil, fmt.Errorf("failed to emit works graph: %w", err)
	}
	logger.Info("works graph generated", "works", len(qids), "triples", tripleStore.Count())
	return tripleStore, nil
}

func emitHeader(e *store.Emitter) {
	ontology := store.NamespaceSappho + "ontology/works"
	e.Add(ontology, store.RDFType, store.OWLOntology)
	for _, imported := range []string{
		store.NamespaceCRM,
		store.NamespaceECRM,
		store.NamespaceLRMoo,
		store.NamespaceFRBRoo,
		store.NamespaceEFRBRoo,
		store.NamespaceProv,
	} {
		e.Add(ontology, store.OWLImports, imported)
	}

	e.Add(idTypeURI, store.RDFType, store.ECRMType)
	e.Add(idTypeURI, store.RDFSLabel, store.LangLiteral("Wikidata ID", "en"))
	e.Add(idTypeURI, store.OWLSameAs, store.WD("Q43649390"))

	e.Add(genreTypeURI, store.RDFType, store.ECRMType)
	e.Add(genreTypeURI, store.RDFSLabel, store.LangLiteral("Wikidata Genre", "en"))
}

func worksQuery(qids []string) string {
	return fmt.Sprintf(`
SELECT ?work ?workLabel ?title_de ?title_en ?genre ?genreLabel ?author ?authorLabel
       ?creation_date (MIN(?raw_pub_date) AS ?pub_date) ?pub_place ?pub_placeLabel
       ?publisher ?publisherLabel ?digitalCopy ?editor ?editorLabel ?publishedIn ?partOf WHERE {
  VALUES ?work { %s }
  OPTIONAL { ?work wdt:P1476 ?title_de . FILTER(LANG(?title_de) = 'de') }
  OPTIONAL { ?work wdt:P1476 ?title_en . FILTER(LANG(?title_en) = 'en') }
  OPTIONAL { ?work wdt:P136 ?genre . }
  OPTIONAL { ?work wdt:P50 ?author . }
  OPTIONAL { ?work wdt:P577 ?raw_pub_date . }
  OPTIONAL { ?work wdt:P291 ?pub_place . }
  OPTIONAL { ?work wdt:P123 ?publisher . }
  OPTIONAL { ?work wdt:P953 ?digitalCopy . }
  OPTIONAL { ?work wdt:P98 ?editor . }
  OPTIONAL { ?work wdt:P1433 ?publishedIn . }
  OPTIONAL { ?work wdt:P361 ?partOf . }
  OPTIONAL { { ?work wdt:P571 ?creation_date . } UNION { ?work wdt:P2754 ?creation_date . } }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en,de" }
}
GROUP BY ?work ?workLabel ?title_de ?title_en ?genre ?genreLabel ?author ?authorLabel
         ?creation_date ?pub_place ?pub_placeLabel ?publisher ?publisherLabel
         ?digitalCopy ?editor ?editorLabel ?publishedIn ?partOf`,
		wikidata.ValuesClause(qids))
}

// titleFor picks the expression title: German title, then English title,
// then the entity label, then a placeholder.
func titleFor(row wikidata.Binding) (string, string) {
	if row.Has("title_de") {
		return row.Value("title_de"), "de"
	}
	if row.Has("title_en") {
		return row.Value("title_en"), "en"
	}
	if row.Has("workLabel") {
		return row.Value("workLabel"), "de"
	}
	return "Untitled", "en"
}

func (generator *Generator) emitRow(ctx context.Context, e *store.Emitter, row wikidata.Binding) {
	qid := row.QID("work")
	if qid == "" {
		return
	}
	label, lang := titleFor(row)

	workURI := store.Sappho("work", qid)
	expressionURI := store.Sappho("expression", qid)

	e.Add(workURI, store.RDFType, store.LRMooWork)
	e.Add(workURI, store.RDFSLabel, store.LangLiteral("Work of "+label, "en"))
	e.Add(workURI, store.LRMooIsRealisedIn, expressionURI)

	workCreationURI := store.Sappho("work_creation", qid)
	e.Add(workCreationURI, store.RDFType, store.LRMooWorkCreation)
	e.Add(workCreationURI, store.RDFSLabel, store.LangLiteral("Work creation of "+label, "en"))
	e.Add(workCreationURI, store.LRMooInitiated, workURI)
	e.Add(workCreationURI, store.ProvWasDerivedFrom, store.WD(qid))

	var authorURI string
	if row.Has("author") {
		authorQID := row.QID("author")
		authorURI = store.Sappho("person", authorQID)
		e.Add(workCreationURI, store.ECRMCarriedOutBy, authorURI)
		e.Add(workURI, store.ECRMCarriedOutBy, authorURI)
		e.Add(authorURI, store.RDFType, store.ECRMPerson)
		e.Add(authorURI, store.RDFSLabel, store.PlainLiteral(labelOr(row, "authorLabel")))
		e.Add(authorURI, store.OWLSameAs, store.WD(authorQID))
	}

	// Expression with identifier and title.
	e.Add(expressionURI, store.RDFType, store.LRMooExpression)
	e.Add(expressionURI, store.RDFSLabel, store.LangLiteral("Expression of "+label, "en"))
	e.Add(expressionURI, store.OWLSameAs, store.WD(qid))
	e.Add(expressionURI, store.ProvWasDerivedFrom, store.WD(qid))
	emitIdentifier(e, expressionURI, qid)

	titleURI := store.Sappho("title", "expression", qid)
	titleStringURI := store.Sappho("title_string", "expression", qid)
	e.Add(expressionURI, store.ECRMHasTitle, titleURI)
	e.Add(titleURI, store.RDFType, store.ECRMTitle)
	e.Add(titleURI, store.ECRMHasSymbolicContent, titleStringURI)
	e.Add(titleStringURI, store.RDFType, store.ECRMString)
	e.Add(titleStringURI, store.RDFSLabel, store.LangLiteral(label, lang))

	if row.Has("genre") {
		genreQID := row.QID("genre")
		genreURI := store.Sappho("genre", genreQID)
		e.Add(genreURI, store.RDFType, store.ECRMType)
		e.Add(genreURI, store.RDFSLabel, store.LangLiteral(labelOr(row, "genreLabel"), "en"))
		e.Add(genreURI, store.OWLSameAs, store.WD(genreQID))
		e.Add(genreURI, store.ECRMHasType, genreTypeURI)
		e.Add(expressionURI, store.ECRMHasType, genreURI)
	}

	// Expression creation.
	expressionCreationURI := store.Sappho("expression_creation", qid)
	e.Add(expressionCreationURI, store.RDFType, store.LRMooExpressionCreation)
	e.Add(expressionCreationURI, store.RDFSLabel, store.LangLiteral("Expression creation of "+label, "en"))
	e.Add(expressionCreationURI, store.LRMooCreatedExpression, expressionURI)
	e.Add(expressionCreationURI, store.LRMooCreatedRealisationOf, workURI)
	e.Add(expressionCreationURI, store.ProvWasDerivedFrom, store.WD(qid))
	if authorURI != "" {
		e.Add(expressionCreationURI, store.ECRMCarriedOutBy, authorURI)
	}
	if year := yearOf(row, "creation_date"); year != "" {
		e.Add(expressionCreationURI, store.ECRMHasTimeSpan, emitTimeSpan(e, year))
	}

	// Manifestation with a title taken from the containing publication
	// when there is one.
	manifestationURI := store.Sappho("manifestation", qid)
	e.Add(manifestationURI, store.RDFType, store.LRMooManifestation)
	e.Add(manifestationURI, store.RDFSLabel, store.LangLiteral("Manifestation of "+label, "en"))
	e.Add(manifestationURI, store.LRMooEmbodies, expressionURI)

	manifestationLabel, manifestationLang := label, lang
	for _, parent := range []string{"publishedIn", "partOf"} {
		if !row.Has(parent) {
			continue
		}
		parentLabel, err := generator.client.Label(ctx, row.QID(parent))
		if err != nil {
			logger.Warn("failed to fetch container label", "qid", row.QID(parent), "error", err)
			break
		}
		manifestationLabel, manifestationLang = parentLabel, "en"
		break
	}

	manifestationTitleURI := store.Sappho("title", "manifestation", qid)
	manifestationTitleStringURI := store.Sappho("title_string", "manifestation", qid)
	e.Add(manifestationURI, store.ECRMHasTitle, manifestationTitleURI)
	e.Add(manifestationTitleURI, store.RDFType, store.ECRMTitle)
	e.Add(manifestationTitleURI, store.ECRMHasSymbolicContent, manifestationTitleStringURI)
	e.Add(manifestationTitleStringURI, store.RDFType, store.ECRMString)
	e.Add(manifestationTitleStringURI, store.RDFSLabel, store.LangLiteral(manifestationLabel, manifestationLang))

	// Manifestation creation with publisher, place, date and editor.
	manifestationCreationURI := store.Sappho("manifestation_creation", qid)
	e.Add(manifestationCreationURI, store.RDFType, store.LRMooManifestationCreation)
	e.Add(manifestationCreationURI, store.RDFSLabel, store.LangLiteral("Manifestation creation of "+label, "en"))
	e.Add(manifestationCreationURI, store.LRMooCreatedManifestation, manifestationURI)
	e.Add(manifestationCreationURI, store.ProvWasDerivedFrom, store.WD(qid))
	if authorURI != "" {
		e.Add(manifestationCreationURI, store.ECRMCarriedOutBy, authorURI)
	}

	if row.Has("publisher") {
		publisherQID := row.QID("publisher")
		publisherURI := store.Sappho("publisher", publisherQID)
		e.Add(publisherURI, store.RDFType, store.ECRMLegalBody)
		e.Add(publisherURI, store.RDFSLabel, store.LangLiteral(labelOr(row, "publisherLabel"), "en"))
		e.Add(publisherURI, store.OWLSameAs, store.WD(publisherQID))
		e.Add(manifestationCreationURI, store.ECRMCarriedOutBy, publisherURI)
	}
	if year := yearOf(row, "pub_date"); year != "" {
		e.Add(manifestationCreationURI, store.ECRMHasTimeSpan, emitTimeSpan(e, year))
	}
	if row.Has("pub_place") {
		placeQID := row.QID("pub_place")
		placeURI := store.Sappho("place", placeQID)
		e.Add(placeURI, store.RDFType, store.ECRMPlace)
		e.Add(placeURI, store.RDFSLabel, store.LangLiteral(labelOr(row, "pub_placeLabel"), "en"))
		e.Add(placeURI, store.OWLSameAs, store.WD(placeQID))
		e.Add(manifestationCreationURI, store.ECRMTookPlaceAt, placeURI)
	}
	if row.Has("editor") {
		editorQID := row.QID("editor")
		editorURI := store.Sappho("editor", editorQID)
		editorLabel := labelOr(row, "editorLabel")
		e.Add(editorURI, store.RDFType, store.ECRMPerson)
		e.Add(editorURI, store.RDFSLabel, store.PlainLiteral(editorLabel))
		e.Add(editorURI, store.OWLSameAs, store.WD(editorQID))

		appellationURI := store.Sappho("appellation", editorQID)
		e.Add(editorURI, store.ECRMActorIdentifiedBy, appellationURI)
		e.Add(appellationURI, store.RDFType, store.ECRMActorAppellation)
		e.Add(appellationURI, store.RDFSLabel, store.PlainLiteral(editorLabel))
		e.Add(appellationURI, store.ProvWasDerivedFrom, store.WD(editorQID))

		emitIdentifier(e, editorURI, editorQID)
		e.Add(manifestationCreationURI, store.ECRMCarriedOutBy, editorURI)
	}

	// Item production.
	itemProductionURI := store.Sappho("item_production", qid)
	itemURI := store.Sappho("item", qid)
	e.Add(itemProductionURI, store.RDFType, store.LRMooItemProductionEvent)
	e.Add(itemProductionURI, store.RDFSLabel, store.LangLiteral("Item production event of "+label, "en"))
	e.Add(itemProductionURI, store.LRMooMaterialized, manifestationURI)
	e.Add(itemProductionURI, store.LRMooProduced, itemURI)
	e.Add(itemURI, store.RDFType, store.LRMooItem)
	e.Add(itemURI, store.RDFSLabel, store.LangLiteral("Item of "+label, "en"))
	e.Add(itemURI, store.LRMooExemplifies, manifestationURI)

	if row.Has("digitalCopy") {
		digitalURI := store.Sappho("digital", qid)
		e.Add(digitalURI, store.RDFType, store.ECRMInformationObj)
		e.Add(digitalURI, store.RDFSLabel, store.LangLiteral("Digital copy of "+label, "en"))
		e.Add(digitalURI, store.ECRMRepresents, expressionURI)
		e.Add(digitalURI, store.RDFSSeeAlso, row.Value("digitalCopy"))
	}
}

func emitIdentifier(e *store.Emitter, entityURI, qid string) {
	identifierURI := store.Sappho("identifier", qid)
	e.Add(entityURI, store.ECRMIsIdentifiedBy, identifierURI)
	e.Add(identifierURI, store.RDFType, store.ECRMIdentifier)
	e.Add(identifierURI, store.RDFSLabel, store.PlainLiteral(qid))
	e.Add(identifierURI, store.ECRMHasType, idTypeURI)
}

// emitTimeSpan mints the shared E52 node for a year and returns its URI.
// Time-spans are shared across works; the store's idempotent Add does
// the deduplication.
func emitTimeSpan(e *store.Emitter, year string) string {
	timespanURI := store.Sappho("timespan", year)
	e.Add(timespanURI, store.RDFType, store.ECRMTimeSpan)
	e.Add(timespanURI, store.RDFSLabel, store.TypedLiteral(year, store.XSDGYear))
	return timespanURI
}

func labelOr(row wikidata.Binding, name string) string {
	if row.Has(name) {
		return row.Value(name)
	}
	return "Unknown"
}

// yearOf extracts the four-digit year from a date-valued variable.
func yearOf(row wikidata.Binding, name string) string {
	value := row.Value(name)
	if len(value) < 4 {
		return ""
	}
	return value[:4]
}
