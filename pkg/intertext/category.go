// Package intertext implements the relation-graph assembly engine: it
// classifies entities discovered in the facts of literary works, mints
// deduplicated nodes for them, and assembles the Feature, Actualization,
// Interpretation and Relation pattern the INTRO ontology requires for
// every pairwise intertextual connection.
package intertext

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is the closed set of domain categories an entity can classify
// into. CategoryUnclassified marks a miss: the entity matched no bucket.
type Category int

const (
	CategoryUnclassified Category = iota
	CategoryPerson
	CategoryPlace
	CategoryExpression
	CategoryCharacter
	CategoryMotif
	CategoryPlot
	CategoryTopic
)

// String returns the lowercase category name used in configuration files
// and log output.
func (category Category) String() string {
	switch category {
	case CategoryPerson:
		return "person"
	case CategoryPlace:
		return "place"
	case CategoryExpression:
		return "expression"
	case CategoryCharacter:
		return "character"
	case CategoryMotif:
		return "motif"
	case CategoryPlot:
		return "plot"
	case CategoryTopic:
		return "topic"
	default:
		return "unclassified"
	}
}

// FeaturePath returns the URI path segment for features of this category.
func (category Category) FeaturePath() string {
	switch category {
	case CategoryPerson:
		return "person_ref"
	case CategoryPlace:
		return "place_ref"
	case CategoryExpression:
		return "work_ref"
	case CategoryCharacter:
		return "character"
	case CategoryMotif:
		return "motif"
	case CategoryPlot:
		return "plot"
	case CategoryTopic:
		return "topic"
	default:
		return "unclassified"
	}
}

// classifierPriority is the fixed order buckets are checked in. Character
// comes first because the default knowledge-base types overlap: several
// character classes are subclasses of types that also match person, motif
// or topic buckets.
var classifierPriority = []Category{
	CategoryCharacter,
	CategoryPerson,
	CategoryPlace,
	CategoryMotif,
	CategoryPlot,
	CategoryTopic,
}

// TypeMapping associates each category with the "instance of" type QIDs
// it accepts. Classification walks the buckets in classifierPriority
// order and returns the first category whose bucket intersects the
// entity's declared types.
type TypeMapping struct {
	buckets map[Category]map[string]bool
}

// DefaultTypeMapping returns the built-in mapping. The type QIDs mirror
// the Wikidata classes the harvesting queries filter on.
func DefaultTypeMapping() *TypeMapping {
	return newTypeMapping(map[Category][]string{
		CategoryPerson: {"Q5"},
		CategoryPlace:  {"Q2221906"},
		CategoryCharacter: {
			"Q95074", "Q3658341", "Q15632617",
			"Q97498056", "Q122192387", "Q115537581",
		},
		CategoryMotif: {"Q1229071", "Q68614425", "Q1697305"},
		CategoryPlot:  {"Q42109240"},
		CategoryTopic: {"Q26256810"},
	})
}

func newTypeMapping(buckets map[Category][]string) *TypeMapping {
	mapping := &TypeMapping{buckets: make(map[Category]map[string]bool)}
	for category, qids := range buckets {
		mapping.setBucket(category, qids)
	}
	return mapping
}

func (mapping *TypeMapping) setBucket(category Category, qids []string) {
	bucket := make(map[string]bool, len(qids))
	for _, qid := range qids {
		bucket[qid] = true
	}
	mapping.buckets[category] = bucket
}

// Classify maps an entity's declared type closure to a category. Types
// intersecting multiple buckets resolve to the bucket checked earliest
// in the priority order. Returns CategoryUnclassified on a miss. Pure
// lookup, no side effects.
func (mapping *TypeMapping) Classify(types []string) Category {
	for _, category := range classifierPriority {
		bucket := mapping.buckets[category]
		for _, declaredType := range types {
			if bucket[declaredType] {
				return category
			}
		}
	}
	return CategoryUnclassified
}

// Accepts reports whether the given type closure intersects one specific
// category's bucket, ignoring priority.
func (mapping *TypeMapping) Accepts(category Category, types []string) bool {
	bucket := mapping.buckets[category]
	for _, declaredType := range types {
		if bucket[declaredType] {
			return true
		}
	}
	return false
}

var categoryNames = map[string]Category{
	"person":    CategoryPerson,
	"place":     CategoryPlace,
	"character": CategoryCharacter,
	"motif":     CategoryMotif,
	"plot":      CategoryPlot,
	"topic":     CategoryTopic,
}

// LoadTypeMapping reads a YAML file mapping category names to accepted
// type QIDs and overlays it on the defaults. Categories present in the
// file replace their bucket wholesale; absent categories keep the
// built-in bucket. The priority order is fixed and cannot be changed
// from configuration.
func LoadTypeMapping(path string) (*TypeMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read type mapping: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse type mapping %s: %w", path, err)
	}

	mapping := DefaultTypeMapping()
	for name, qids := range raw {
		category, ok := categoryNames[name]
		if !ok {
			return nil, fmt.Errorf("type mapping %s: unknown category %q", path, name)
		}
		mapping.setBucket(category, qids)
	}
	return mapping, nil
}
