// Package store provides RDF triple storage, vocabulary constants and
// serialization for the Sappho Digital knowledge graph.
package store

// Namespace URIs used across the pipeline output.
const (
	// NamespaceSappho is the base URI for all minted entity nodes.
	NamespaceSappho = "https://sappho-digital.com/"

	// NamespaceECRM is the Erlangen CRM (OWL rendition of CIDOC CRM).
	NamespaceECRM = "http://erlangen-crm.org/current/"

	// NamespaceCRM is the reference CIDOC CRM namespace.
	NamespaceCRM = "http://www.cidoc-crm.org/cidoc-crm/"

	// NamespaceLRMoo is the IFLA LRMoo namespace.
	NamespaceLRMoo = "http://iflastandards.info/ns/lrm/lrmoo/"

	// NamespaceFRBRoo is the IFLA FRBRoo namespace.
	NamespaceFRBRoo = "http://iflastandards.info/ns/fr/frbr/frbroo/"

	// NamespaceEFRBRoo is the Erlangen FRBRoo namespace.
	NamespaceEFRBRoo = "http://erlangen-crm.org/efrbroo/"

	// NamespaceINTRO is the intertextuality ontology (INTRO) namespace.
	NamespaceINTRO = "https://w3id.org/lso/intro/currentbeta#"

	// NamespaceProv is the W3C provenance ontology.
	NamespaceProv = "http://www.w3.org/ns/prov#"

	// NamespaceWD is the Wikidata entity namespace.
	NamespaceWD = "http://www.wikidata.org/entity/"

	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceOWL is the OWL namespace.
	NamespaceOWL = "http://www.w3.org/2002/07/owl#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceSKOS is the SKOS namespace used by the alignment step.
	NamespaceSKOS = "http://www.w3.org/2004/02/skos/core#"
)

// RDF, RDFS and OWL terms.
const (
	RDFType = "rdf:type"

	RDFSLabel   = "rdfs:label"
	RDFSSeeAlso = "rdfs:seeAlso"

	OWLOntology           = "owl:Ontology"
	OWLImports            = "owl:imports"
	OWLSameAs             = "owl:sameAs"
	OWLEquivalentClass    = "owl:equivalentClass"
	OWLEquivalentProperty = "owl:equivalentProperty"
	OWLInverseOf          = "owl:inverseOf"

	XSDGYear = "xsd:gYear"
	XSDDate  = "xsd:date"

	SKOSExactMatch = "skos:exactMatch"
	SKOSCloseMatch = "skos:closeMatch"

	ProvWasDerivedFrom = "prov:wasDerivedFrom"
)

// eCRM classes emitted by the generators.
const (
	ECRMPerson           = "ecrm:E21_Person"
	ECRMTitle            = "ecrm:E35_Title"
	ECRMVisualItem       = "ecrm:E36_Visual_Item"
	ECRMImage            = "ecrm:E38_Image"
	ECRMLegalBody        = "ecrm:E40_Legal_Body"
	ECRMIdentifier       = "ecrm:E42_Identifier"
	ECRMTimeSpan         = "ecrm:E52_Time-Span"
	ECRMPlace            = "ecrm:E53_Place"
	ECRMType             = "ecrm:E55_Type"
	ECRMString           = "ecrm:E62_String"
	ECRMBirth            = "ecrm:E67_Birth"
	ECRMDeath            = "ecrm:E69_Death"
	ECRMInformationObj   = "ecrm:E73_Information_Object"
	ECRMActorAppellation = "ecrm:E82_Actor_Appellation"
)

// eCRM properties (direct and inverse pairs).
const (
	ECRMIsIdentifiedBy     = "ecrm:P1_is_identified_by"
	ECRMIdentifies         = "ecrm:P1i_identifies"
	ECRMHasType            = "ecrm:P2_has_type"
	ECRMIsTypeOf           = "ecrm:P2i_is_type_of"
	ECRMHasTimeSpan        = "ecrm:P4_has_time-span"
	ECRMIsTimeSpanOf       = "ecrm:P4i_is_time-span_of"
	ECRMTookPlaceAt        = "ecrm:P7_took_place_at"
	ECRMWitnessed          = "ecrm:P7i_witnessed"
	ECRMCarriedOutBy       = "ecrm:P14_carried_out_by"
	ECRMPerformed          = "ecrm:P14i_performed"
	ECRMShowsVisualItem    = "ecrm:P65_shows_visual_item"
	ECRMIsShownBy          = "ecrm:P65i_is_shown_by"
	ECRMRefersTo           = "ecrm:P67_refers_to"
	ECRMIsReferredToBy     = "ecrm:P67i_is_referred_to_by"
	ECRMBroughtIntoLife    = "ecrm:P98_brought_into_life"
	ECRMWasBorn            = "ecrm:P98i_was_born"
	ECRMWasDeathOf         = "ecrm:P100_was_death_of"
	ECRMDiedIn             = "ecrm:P100i_died_in"
	ECRMHasTitle           = "ecrm:P102_has_title"
	ECRMIsTitleOf          = "ecrm:P102i_is_title_of"
	ECRMActorIdentifiedBy  = "ecrm:P131_is_identified_by"
	ECRMActorIdentifies    = "ecrm:P131i_identifies"
	ECRMRepresents         = "ecrm:P138_represents"
	ECRMHasRepresentation  = "ecrm:P138i_has_representation"
	ECRMHasSymbolicContent = "ecrm:P190_has_symbolic_content"
	ECRMIsContentOf        = "ecrm:P190i_is_content_of"
)

// LRMoo classes.
const (
	LRMooWork                  = "lrmoo:F1_Work"
	LRMooExpression            = "lrmoo:F2_Expression"
	LRMooManifestation         = "lrmoo:F3_Manifestation"
	LRMooItem                  = "lrmoo:F5_Item"
	LRMooWorkCreation          = "lrmoo:F27_Work_Creation"
	LRMooExpressionCreation    = "lrmoo:F28_Expression_Creation"
	LRMooManifestationCreation = "lrmoo:F30_Manifestation_Creation"
	LRMooItemProductionEvent   = "lrmoo:F32_Item_Production_Event"
)

// LRMoo properties.
const (
	LRMooIsRealisedIn         = "lrmoo:R3_is_realised_in"
	LRMooRealises             = "lrmoo:R3i_realises"
	LRMooEmbodies             = "lrmoo:R4_embodies"
	LRMooIsEmbodiedIn         = "lrmoo:R4i_is_embodied_in"
	LRMooExemplifies          = "lrmoo:R7_exemplifies"
	LRMooIsExemplifiedBy      = "lrmoo:R7i_is_exemplified_by"
	LRMooInitiated            = "lrmoo:R16_created"
	LRMooCreatedExpression    = "lrmoo:R17_created"
	LRMooCreatedRealisationOf = "lrmoo:R19_created_a_realisation_of"
	LRMooCreatedManifestation = "lrmoo:R24_created"
	LRMooMaterialized         = "lrmoo:R27_materialized"
	LRMooProduced             = "lrmoo:R28_produced"
)

// INTRO classes. The intertextual pattern is Feature -> Actualization ->
// Interpretation -> Relation.
const (
	INTROInterpretation = "intro:INT_Interpretation"
	INTROCharacter      = "intro:INT_Character"
	INTROMotif          = "intro:INT_Motif"
	INTROPlot           = "intro:INT_Plot"
	INTROTopic          = "intro:INT_Topic"
	INTROActualization  = "intro:INT2_ActualizationOfFeature"
	INTROReference      = "intro:INT18_Reference"
	INTROTextPassage    = "intro:INT21_TextPassage"
	INTRORelation       = "intro:INT31_IntertextualRelation"
)

// INTRO properties (direct and inverse pairs).
const (
	INTROActualizesFeature     = "intro:R17_actualizesFeature"
	INTROFeatureIsActualizedIn = "intro:R17i_featureIsActualizedIn"
	INTROShowsActualization    = "intro:R18_showsActualization"
	INTROActualizationFoundOn  = "intro:R18i_actualizationFoundOn"
	INTROIdentifies            = "intro:R21_identifies"
	INTROIsIdentifiedBy        = "intro:R21i_isIdentifiedBy"
	INTROProvidesSimilarity    = "intro:R22_providesSimilarityForRelation"
	INTROBasedOnSimilarity     = "intro:R22i_relationIsBasedOnSimilarity"
	INTROHasRelatedEntity      = "intro:R24_hasRelatedEntity"
	INTROIsRelatedEntity       = "intro:R24i_isRelatedEntity"
	INTROHasTextPassage        = "intro:R30_hasTextPassage"
	INTROIsTextPassageOf       = "intro:R30i_isTextPassageOf"
)

// WD returns the full Wikidata entity URI for a QID.
func WD(qid string) string {
	return NamespaceWD + qid
}

// Sappho builds an entity URI under the Sappho Digital base namespace,
// e.g. Sappho("feature", "plot", "Q123").
func Sappho(parts ...string) string {
	uri := NamespaceSappho
	for i, part := range parts {
		if i > 0 {
			uri += "/"
		}
		uri += part
	}
	return uri
}
