package intertext

import (
	"github.com/sappho-digital/wiki2crm/pkg/logger"
)

// EnsureWork returns the work node for a QID, creating it on first
// encounter. Re-listing the same identifier is a no-op at the node
// level; a differing label on a later encounter is logged and the
// first-seen label wins.
func (graph *Graph) EnsureWork(qid, label string) *Work {
	work, created, _ := getOrCreate(graph.registry, kindWork, qid, func() (*Work, error) {
		return &Work{QID: qid, Label: label}, nil
	})
	if created {
		graph.Works = append(graph.Works, work)
	} else if work.Label != label {
		logger.Warn("work label mismatch, keeping first-seen label",
			"qid", qid, "kept", work.Label, "ignored", label)
	}
	return work
}

// EnsureFeature returns the feature node for a (category, QID) pair,
// creating it on first encounter with a category-decorated display
// label. Calling it twice with the same pair returns the same node; a
// differing label is logged and the first-seen label wins.
func (graph *Graph) EnsureFeature(category Category, qid, baseLabel string) *Feature {
	feature, created, _ := getOrCreate(graph.registry, featureKind(category), qid, func() (*Feature, error) {
		return &Feature{
			Category:  category,
			QID:       qid,
			Label:     featureLabel(category, baseLabel),
			BaseLabel: baseLabel,
		}, nil
	})
	if created {
		graph.Features = append(graph.Features, feature)
	} else if feature.BaseLabel != baseLabel {
		logger.Warn("feature label mismatch, keeping first-seen label",
			"category", category.String(), "qid", qid,
			"kept", feature.BaseLabel, "ignored", baseLabel)
	}
	return feature
}

// featureLabel decorates an entity label per category, matching the
// conventions of the published graphs.
func featureLabel(category Category, baseLabel string) string {
	switch category {
	case CategoryPerson:
		return "Reference to " + baseLabel + " (person)"
	case CategoryPlace:
		return "Reference to " + baseLabel + " (place)"
	case CategoryExpression:
		return "Reference to " + baseLabel + " (expression)"
	case CategoryMotif, CategoryPlot, CategoryTopic:
		return baseLabel + " (" + category.String() + ")"
	default:
		return baseLabel
	}
}

// EnsureCharacter builds a Character feature. When the underlying entity
// is also a real person, the character cross-references a Person feature
// sharing the same QID, so "Sappho the person" and "Sappho the
// character" coexist without duplicating identifier nodes.
func (graph *Graph) EnsureCharacter(qid, label string, isPerson bool) *Feature {
	feature := graph.EnsureFeature(CategoryCharacter, qid, label)
	if isPerson && !feature.IsPerson {
		feature.IsPerson = true
		graph.EnsureFeature(CategoryPerson, qid, label)
	}
	return feature
}
