package intertext

// EnsureActualization records that a feature is present in a work,
// creating at most one actualization per (feature, work) pair. A newly
// created actualization gets its paired interpretation wired with
// provenance to the hosting work, and back-references are appended to
// both the feature and the work. Features actualized in works outside
// the input set are still recorded; they simply never qualify for a
// relation.
func (graph *Graph) EnsureActualization(feature *Feature, work *Work) *Actualization {
	dedupKey := feature.Category.FeaturePath() + "/" + feature.QID + "_" + work.QID
	actualization, created, _ := getOrCreate(graph.registry, kindActualization, dedupKey, func() (*Actualization, error) {
		return &Actualization{
			Feature: feature,
			Work:    work,
			Label:   feature.BaseLabel + " in " + work.Label,
		}, nil
	})
	if !created {
		return actualization
	}

	graph.Actualizations = append(graph.Actualizations, actualization)
	feature.Actualizations = append(feature.Actualizations, actualization)
	work.Actualizations = append(work.Actualizations, actualization)

	actualization.Interpretation = graph.ensureInterpretation(
		feature.QID+"_"+work.QID,
		"Interpretation of "+actualization.Label,
		[]string{work.QID},
		actualization.Key(),
	)
	return actualization
}

// ensureInterpretation creates the provenance wrapper for an
// actualization or relation. Interpretations share a key space on the
// target's trailing identifier; repeated calls with the same id reuse
// the node and only append the new target.
func (graph *Graph) ensureInterpretation(id, label string, derivedFrom []string, targetKey string) *Interpretation {
	interpretation, created, _ := getOrCreate(graph.registry, kindInterpretation, id, func() (*Interpretation, error) {
		return &Interpretation{
			ID:          id,
			Label:       label,
			DerivedFrom: derivedFrom,
		}, nil
	})
	if created {
		graph.Interpretations = append(graph.Interpretations, interpretation)
	}
	interpretation.Targets = append(interpretation.Targets, targetKey)
	return interpretation
}
