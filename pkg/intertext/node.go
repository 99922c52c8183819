package intertext

import (
	"fmt"
	"sort"
)

// Work is one abstract input unit: a literary work identified by its
// source QID. Created once per unique input identifier, never deleted
// within a run.
type Work struct {
	QID   string
	Label string

	// Actualizations accumulates back-references to every Actualization
	// hosted on this work, in creation order.
	Actualizations []*Actualization
}

// Key returns the stable node key, which doubles as the URI path under
// the project namespace.
func (work *Work) Key() string {
	return "expression/" + work.QID
}

// Feature is a classified phenomenon that can recur across works. At
// most one Feature exists per (category, QID) pair for the whole run.
type Feature struct {
	Category Category
	QID      string

	// Label is the feature node's display label, decorated per category
	// ("... (motif)", "Reference to ... (person)"). BaseLabel is the
	// undecorated entity label used when composing actualization labels.
	Label     string
	BaseLabel string

	// IsPerson marks a Character whose underlying entity is also a real
	// person, in which case the feature cross-references a Person node
	// sharing the same QID.
	IsPerson bool

	// Actualizations accumulates back-references to every Actualization
	// realizing this feature, in creation order.
	Actualizations []*Actualization
}

// Key returns the stable node key "feature/<path>/<qid>".
func (feature *Feature) Key() string {
	return "feature/" + feature.Category.FeaturePath() + "/" + feature.QID
}

// Actualization records that a Feature is present in a specific Work.
// At most one exists per (Feature, Work) pair; each owns exactly one
// Interpretation, created with it.
type Actualization struct {
	Feature *Feature
	Work    *Work
	Label   string

	Interpretation *Interpretation
}

// Key returns the stable node key
// "actualization/<featurepath>/<featureqid>_<workqid>".
func (actualization *Actualization) Key() string {
	return fmt.Sprintf("actualization/%s/%s_%s",
		actualization.Feature.Category.FeaturePath(),
		actualization.Feature.QID,
		actualization.Work.QID)
}

// Interpretation is a provenance wrapper paired with an Actualization or
// Relation. DerivedFrom holds the QID(s) of the work(s) whose facts
// produced the subject; Targets holds the key(s) of the node(s) it
// identifies.
type Interpretation struct {
	ID          string
	Label       string
	DerivedFrom []string
	Targets     []string
}

// FeatureKey returns the key of the interpretation's feature node.
func (interpretation *Interpretation) FeatureKey() string {
	return "feature/interpretation/" + interpretation.ID
}

// ActualizationKey returns the key of the interpretation's actualization
// node.
func (interpretation *Interpretation) ActualizationKey() string {
	return "actualization/interpretation/" + interpretation.ID
}

// TextPassage records a citation of one work inside another. Created
// once per ordered (citing, cited) pair observed in the facts.
type TextPassage struct {
	Citing *Work
	Cited  *Work
	Label  string
}

// Key returns the stable node key "textpassage/<citing>_<cited>".
func (passage *TextPassage) Key() string {
	return "textpassage/" + passage.Citing.QID + "_" + passage.Cited.QID
}

// Relation is an intertextual link between exactly two works. The pair
// is unordered: One always carries the lexicographically smaller QID.
// At most one Relation exists per pair; later-discovered shared features
// or passages augment the same node.
type Relation struct {
	One   *Work
	Other *Work
	Label string

	// Features is the "based on similarity of" set, in discovery order,
	// deduplicated.
	Features []*Feature

	// Actualizations and Passages are the related-entity set.
	Actualizations []*Actualization
	Passages       []*TextPassage

	Interpretation *Interpretation

	featureSet       map[string]bool
	actualizationSet map[string]bool
}

// Key returns the stable node key "relation/<smaller>_<larger>".
func (relation *Relation) Key() string {
	return "relation/" + relation.One.QID + "_" + relation.Other.QID
}

// PairKey returns the canonical unordered key for two work QIDs, ordering
// them lexicographically so (A,B) and (B,A) collapse onto one relation.
func PairKey(firstQID, secondQID string) string {
	if firstQID < secondQID {
		return firstQID + "_" + secondQID
	}
	return secondQID + "_" + firstQID
}

// Graph is the complete node/edge set produced by one assembler run.
// All collections are append-only and hold nodes in creation order; the
// registry guarantees key uniqueness across the run.
type Graph struct {
	registry *Registry

	Works           []*Work
	Features        []*Feature
	Actualizations  []*Actualization
	Interpretations []*Interpretation
	Relations       []*Relation
	Passages        []*TextPassage
}

// NewGraph returns an empty graph with a fresh registry.
func NewGraph() *Graph {
	return &Graph{registry: NewRegistry()}
}

// Registry exposes the graph's node registry, mainly for tests asserting
// the dedup invariants.
func (graph *Graph) Registry() *Registry {
	return graph.registry
}

// Work returns the work node for a QID, or nil when the QID was never
// registered.
func (graph *Graph) Work(qid string) *Work {
	if node, ok := lookup[Work](graph.registry, kindWork, qid); ok {
		return node
	}
	return nil
}

// Feature returns the feature node for a (category, QID) pair, or nil.
func (graph *Graph) Feature(category Category, qid string) *Feature {
	if node, ok := lookup[Feature](graph.registry, featureKind(category), qid); ok {
		return node
	}
	return nil
}

// Relation returns the relation node for an unordered pair of work QIDs,
// or nil when the pair never qualified.
func (graph *Graph) Relation(firstQID, secondQID string) *Relation {
	if node, ok := lookup[Relation](graph.registry, kindRelation, PairKey(firstQID, secondQID)); ok {
		return node
	}
	return nil
}

// SortedWorkQIDs returns the QIDs of all registered works in
// lexicographic order.
func (graph *Graph) SortedWorkQIDs() []string {
	qids := make([]string, len(graph.Works))
	for i, work := range graph.Works {
		qids[i] = work.QID
	}
	sort.Strings(qids)
	return qids
}
