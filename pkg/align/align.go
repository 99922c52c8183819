// Package align emits ontology alignment triples, merges per-stage
// graphs into one, and enriches entities with external identifiers.
package align

import (
	"github.com/sappho-digital/wiki2crm/pkg/store"
)

// ecrmClasses are the eCRM classes the generators emit. Each is aligned
// to its CIDOC CRM counterpart of the same name.
var ecrmClasses = []string{
	"E21_Person",
	"E35_Title",
	"E36_Visual_Item",
	"E38_Image",
	"E40_Legal_Body",
	"E42_Identifier",
	"E52_Time-Span",
	"E53_Place",
	"E55_Type",
	"E62_String",
	"E67_Birth",
	"E69_Death",
	"E73_Information_Object",
	"E82_Actor_Appellation",
}

// ecrmProperties pairs each direct eCRM property with its inverse. Both
// share their local name with CIDOC CRM.
var ecrmProperties = [][2]string{
	{"P1_is_identified_by", "P1i_identifies"},
	{"P2_has_type", "P2i_is_type_of"},
	{"P4_has_time-span", "P4i_is_time-span_of"},
	{"P7_took_place_at", "P7i_witnessed"},
	{"P14_carried_out_by", "P14i_performed"},
	{"P65_shows_visual_item", "P65i_is_shown_by"},
	{"P67_refers_to", "P67i_is_referred_to_by"},
	{"P98_brought_into_life", "P98i_was_born"},
	{"P100_was_death_of", "P100i_died_in"},
	{"P102_has_title", "P102i_is_title_of"},
	{"P131_is_identified_by", "P131i_identifies"},
	{"P138_represents", "P138i_has_representation"},
	{"P190_has_symbolic_content", "P190i_is_content_of"},
}

// lrmooClasses maps LRMoo classes to their FRBRoo/eFRBRoo counterparts,
// whose local names differ for some classes.
var lrmooClasses = map[string]string{
	"F1_Work":                    "F1_Work",
	"F2_Expression":              "F2_Expression",
	"F3_Manifestation":           "F3_Manifestation_Product_Type",
	"F5_Item":                    "F5_Item",
	"F27_Work_Creation":          "F27_Work_Conception",
	"F28_Expression_Creation":    "F28_Expression_Creation",
	"F30_Manifestation_Creation": "F30_Publication_Event",
	"F32_Item_Production_Event":  "F32_Carrier_Production_Event",
}

// lrmooProperties holds LRMoo direct/inverse property pairs together
// with the FRBRoo direct/inverse names they are equivalent to.
var lrmooProperties = [][4]string{
	{"R3_is_realised_in", "R3i_realises", "R3_is_realised_in", "R3i_realises"},
	{"R4_embodies", "R4i_is_embodied_in", "R4i_comprises_carriers_of", "R4_carriers_provided_by"},
	{"R7_exemplifies", "R7i_is_exemplified_by", "R7_is_example_of", "R7i_has_example"},
	{"R16_created", "R16i_was_created_by", "R16_initiated", "R16i_was_initiated_by"},
	{"R17_created", "R17i_was_created_by", "R17_created", "R17i_was_created_by"},
	{"R19_created_a_realisation_of", "R19i_was_realised_through", "R19_created_a_realisation_of", "R19i_was_realised_through"},
	{"R24_created", "R24i_was_created_through", "R24_created", "R24i_was_created_through"},
	{"R27_materialized", "R27i_was_materialized_by", "R27_used_as_source_material", "R27i_was_used_by"},
	{"R28_produced", "R28i_was_produced_by", "R28_produced", "R28i_was_produced_by"},
}

// EmitECRMAlignment adds owl:equivalentClass, owl:equivalentProperty and
// owl:inverseOf triples aligning the Erlangen CRM terms used in the
// output with reference CIDOC CRM.
func EmitECRMAlignment(ts *store.TripleStore) {
	e := store.NewEmitter(ts)
	for _, class := range ecrmClasses {
		e.Add("ecrm:"+class, store.OWLEquivalentClass, "crm:"+class)
	}
	for _, pair := range ecrmProperties {
		direct, inverse := pair[0], pair[1]
		e.Add("ecrm:"+direct, store.OWLInverseOf, "ecrm:"+inverse)
		e.Add("ecrm:"+inverse, store.OWLInverseOf, "ecrm:"+direct)
		e.Add("ecrm:"+direct, store.OWLEquivalentProperty, "crm:"+direct)
		e.Add("ecrm:"+inverse, store.OWLEquivalentProperty, "crm:"+inverse)
	}
}

// EmitLRMooAlignment adds alignment triples from the LRMoo terms used in
// the output to both FRBRoo and Erlangen FRBRoo.
func EmitLRMooAlignment(ts *store.TripleStore) {
	e := store.NewEmitter(ts)
	for lrmoo, frbroo := range lrmooClasses {
		e.Add("lrmoo:"+lrmoo, store.OWLEquivalentClass, "frbroo:"+frbroo)
		e.Add("lrmoo:"+lrmoo, store.OWLEquivalentClass, "efrbroo:"+frbroo)
	}
	for _, quad := range lrmooProperties {
		direct, inverse, frDirect, frInverse := quad[0], quad[1], quad[2], quad[3]
		e.Add("lrmoo:"+direct, store.OWLInverseOf, "lrmoo:"+inverse)
		e.Add("lrmoo:"+inverse, store.OWLInverseOf, "lrmoo:"+direct)
		e.Add("lrmoo:"+direct, store.OWLEquivalentProperty, "frbroo:"+frDirect)
		e.Add("lrmoo:"+direct, store.OWLEquivalentProperty, "efrbroo:"+frDirect)
		e.Add("lrmoo:"+inverse, store.OWLEquivalentProperty, "frbroo:"+frInverse)
		e.Add("lrmoo:"+inverse, store.OWLEquivalentProperty, "efrbroo:"+frInverse)
	}
}
