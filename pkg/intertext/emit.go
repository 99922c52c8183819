package intertext

import (
	"fmt"

	"github.com/sappho-digital/wiki2crm/pkg/store"
)

// wikidataIDType is the shared E55 type node all identifier nodes point
// at; Q43649390 is the Wikidata property "Wikidata ID".
const wikidataIDType = store.NamespaceSappho + "id_type/wikidata"

// uri converts a node key into its full URI under the project namespace.
func uri(key string) string {
	return store.NamespaceSappho + key
}

// EmitTriples converts an assembled graph into the triple patterns of
// the published relation graphs: F2 expressions, INTRO feature and
// actualization nodes with their interpretation wrappers, INT31
// relations and INT21 text passages, E42 identifiers and
// prov:wasDerivedFrom back-links to Wikidata on every derived node.
func EmitTriples(graph *Graph, tripleStore *store.TripleStore) error {
	e := store.NewEmitter(tripleStore)

	emitOntologyHeader(e)
	emitIDType(e)

	for _, work := range graph.Works {
		emitWork(e, work)
	}
	for _, feature := range graph.Features {
		emitFeature(e, feature)
	}
	for _, actualization := range graph.Actualizations {
		emitActualization(e, actualization)
	}
	for _, interpretation := range graph.Interpretations {
		emitInterpretation(e, interpretation)
	}
	for _, relation := range graph.Relations {
		emitRelation(e, relation)
	}
	for _, passage := range graph.Passages {
		emitPassage(e, passage)
	}

	if err := e.Err(); err != nil {
		return fmt.Errorf("failed to emit relation graph: %w", err)
	}
	return nil
}

// emitOntologyHeader declares the output graph as an ontology importing
// every vocabulary it uses.
func emitOntologyHeader(e *store.Emitter) {
	ontology := store.NamespaceSappho + "ontology/relations"
	e.Add(ontology, store.RDFType, store.OWLOntology)
	for _, imported := range []string{
		store.NamespaceCRM,
		store.NamespaceECRM,
		store.NamespaceFRBRoo,
		store.NamespaceLRMoo,
		store.NamespaceINTRO,
		store.NamespaceProv,
	} {
		e.Add(ontology, store.OWLImports, imported)
	}
}

func emitIDType(e *store.Emitter) {
	e.Add(wikidataIDType, store.RDFType, store.ECRMType)
	e.Add(wikidataIDType, store.RDFSLabel, store.LangLiteral("Wikidata ID", "en"))
	e.Add(wikidataIDType, store.OWLSameAs, store.WD("Q43649390"))
}

// emitIdentifier mints the E42 identifier node for an entity and links
// it both ways, with provenance back to the Wikidata entity.
func emitIdentifier(e *store.Emitter, entityURI, qid string) {
	identifier := store.Sappho("identifier", qid)
	e.Add(identifier, store.RDFType, store.ECRMIdentifier)
	e.Add(identifier, store.RDFSLabel, store.LangLiteral(qid, "en"))
	e.AddPair(identifier, store.ECRMHasType, wikidataIDType, store.ECRMIsTypeOf)
	e.Add(identifier, store.ProvWasDerivedFrom, store.WD(qid))
	e.AddPair(entityURI, store.ECRMIsIdentifiedBy, identifier, store.ECRMIdentifies)
}

func emitWork(e *store.Emitter, work *Work) {
	expression := uri(work.Key())
	e.Add(expression, store.RDFType, store.LRMooExpression)
	e.Add(expression, store.RDFSLabel, store.LangLiteral("Expression of "+work.Label, "en"))
	e.Add(expression, store.OWLSameAs, store.WD(work.QID))
}

func emitFeature(e *store.Emitter, feature *Feature) {
	featureURI := uri(feature.Key())

	switch feature.Category {
	case CategoryMotif, CategoryPlot, CategoryTopic, CategoryCharacter:
		e.Add(featureURI, store.RDFType, introFeatureClass(feature.Category))
		e.Add(featureURI, store.RDFSLabel, store.LangLiteral(feature.Label, "en"))
		e.Add(featureURI, store.OWLSameAs, store.WD(feature.QID))
		emitIdentifier(e, featureURI, feature.QID)

	case CategoryPerson:
		person := store.Sappho("person", feature.QID)
		e.Add(person, store.RDFType, store.ECRMPerson)
		e.Add(person, store.RDFSLabel, store.LangLiteral(feature.BaseLabel, "en"))
		e.Add(person, store.OWLSameAs, store.WD(feature.QID))
		emitIdentifier(e, person, feature.QID)
		e.Add(featureURI, store.RDFType, store.INTROReference)
		e.Add(featureURI, store.RDFSLabel, store.LangLiteral(feature.Label, "en"))

	case CategoryPlace:
		place := store.Sappho("place", feature.QID)
		e.Add(place, store.RDFType, store.ECRMPlace)
		e.Add(place, store.RDFSLabel, store.LangLiteral(feature.BaseLabel, "en"))
		e.Add(place, store.OWLSameAs, store.WD(feature.QID))
		emitIdentifier(e, place, feature.QID)
		e.Add(featureURI, store.RDFType, store.INTROReference)
		e.Add(featureURI, store.RDFSLabel, store.LangLiteral(feature.Label, "en"))

	case CategoryExpression:
		// The referenced expression node itself is emitted with the
		// works; the feature is only the reference wrapper.
		e.Add(featureURI, store.RDFType, store.INTROReference)
		e.Add(featureURI, store.RDFSLabel, store.LangLiteral(feature.Label, "en"))
	}
}

func introFeatureClass(category Category) string {
	switch category {
	case CategoryMotif:
		return store.INTROMotif
	case CategoryPlot:
		return store.INTROPlot
	case CategoryTopic:
		return store.INTROTopic
	case CategoryCharacter:
		return store.INTROCharacter
	default:
		return store.INTROReference
	}
}

// referentURI returns the real-world node an actualization of this
// feature refers to via P67, or "" when the category carries no
// referent.
func referentURI(feature *Feature) string {
	switch feature.Category {
	case CategoryPerson:
		return store.Sappho("person", feature.QID)
	case CategoryPlace:
		return store.Sappho("place", feature.QID)
	case CategoryExpression:
		return store.Sappho("expression", feature.QID)
	case CategoryCharacter:
		if feature.IsPerson {
			return store.Sappho("person", feature.QID)
		}
	}
	return ""
}

func emitActualization(e *store.Emitter, actualization *Actualization) {
	actURI := uri(actualization.Key())
	featureURI := uri(actualization.Feature.Key())
	expression := uri(actualization.Work.Key())

	e.Add(actURI, store.RDFType, store.INTROActualization)
	e.Add(actURI, store.RDFSLabel, store.LangLiteral(actualization.Label, "en"))
	e.AddPair(featureURI, store.INTROFeatureIsActualizedIn, actURI, store.INTROActualizesFeature)
	e.AddPair(actURI, store.INTROActualizationFoundOn, expression, store.INTROShowsActualization)

	if referent := referentURI(actualization.Feature); referent != "" {
		e.AddPair(actURI, store.ECRMRefersTo, referent, store.ECRMIsReferredToBy)
	}
}

func emitInterpretation(e *store.Emitter, interpretation *Interpretation) {
	featureURI := uri(interpretation.FeatureKey())
	actURI := uri(interpretation.ActualizationKey())

	e.Add(featureURI, store.RDFType, store.INTROInterpretation)
	e.Add(featureURI, store.RDFSLabel, store.LangLiteral(interpretation.Label, "en"))

	e.Add(actURI, store.RDFType, store.INTROActualization)
	e.Add(actURI, store.RDFSLabel, store.LangLiteral(interpretation.Label, "en"))
	for _, sourceQID := range interpretation.DerivedFrom {
		e.Add(actURI, store.ProvWasDerivedFrom, store.WD(sourceQID))
	}
	e.AddPair(featureURI, store.INTROFeatureIsActualizedIn, actURI, store.INTROActualizesFeature)

	for _, targetKey := range interpretation.Targets {
		e.AddPair(actURI, store.INTROIdentifies, uri(targetKey), store.INTROIsIdentifiedBy)
	}
}

func emitRelation(e *store.Emitter, relation *Relation) {
	relationURI := uri(relation.Key())
	e.Add(relationURI, store.RDFType, store.INTRORelation)
	e.Add(relationURI, store.RDFSLabel, store.LangLiteral(relation.Label, "en"))

	for _, feature := range relation.Features {
		e.AddPair(uri(feature.Key()), store.INTROProvidesSimilarity, relationURI, store.INTROBasedOnSimilarity)
	}
	for _, actualization := range relation.Actualizations {
		e.AddPair(relationURI, store.INTROHasRelatedEntity, uri(actualization.Key()), store.INTROIsRelatedEntity)
	}
	for _, passage := range relation.Passages {
		e.AddPair(relationURI, store.INTROHasRelatedEntity, uri(passage.Key()), store.INTROIsRelatedEntity)
	}
}

func emitPassage(e *store.Emitter, passage *TextPassage) {
	passageURI := uri(passage.Key())
	citingExpression := uri(passage.Citing.Key())

	e.Add(passageURI, store.RDFType, store.INTROTextPassage)
	e.Add(passageURI, store.RDFSLabel, store.LangLiteral(passage.Label, "en"))
	e.Add(passageURI, store.ProvWasDerivedFrom, store.WD(passage.Cited.QID))
	e.AddPair(citingExpression, store.INTROHasTextPassage, passageURI, store.INTROIsTextPassageOf)
}
