package intertext

// EnsureRelation returns the relation node for an unordered pair of
// works, creating it with its interpretation on first encounter. The
// pair is canonicalized lexicographically, so (A,B) and (B,A) yield the
// same node. Returns nil when both arguments are the same work.
// labelDetail, when non-empty on the creating call, is inserted into the
// relation label in parentheses; later calls never relabel.
func (graph *Graph) EnsureRelation(first, second *Work, labelDetail string) *Relation {
	if first == nil || second == nil || first.QID == second.QID {
		return nil
	}

	one, other := first, second
	if other.QID < one.QID {
		one, other = other, one
	}

	relation, created, _ := getOrCreate(graph.registry, kindRelation, PairKey(one.QID, other.QID), func() (*Relation, error) {
		label := "Intertextual relation between " + one.Label + " and " + other.Label
		if labelDetail != "" {
			label = "Intertextual relation (" + labelDetail + ") between " + one.Label + " and " + other.Label
		}
		return &Relation{
			One:              one,
			Other:            other,
			Label:            label,
			featureSet:       make(map[string]bool),
			actualizationSet: make(map[string]bool),
		}, nil
	})
	if created {
		graph.Relations = append(graph.Relations, relation)
		relation.Interpretation = graph.ensureInterpretation(
			one.QID+"_"+other.QID,
			"Interpretation of intertextual relation between "+one.Label+" and "+other.Label,
			[]string{one.QID, other.QID},
			relation.Key(),
		)
	}
	return relation
}

// AttachSimilarity extends a relation's based-on-similarity set with a
// feature and ties the feature's actualizations in the relation's two
// works into the related-entity set. Repeated attachments of the same
// feature or actualization are no-ops, so a later-discovered shared
// feature between the same pair augments the existing node instead of
// duplicating edges.
func (graph *Graph) AttachSimilarity(relation *Relation, feature *Feature) {
	if relation == nil || feature == nil {
		return
	}
	if key := feature.Key(); !relation.featureSet[key] {
		relation.featureSet[key] = true
		relation.Features = append(relation.Features, feature)
	}
	for _, actualization := range feature.Actualizations {
		work := actualization.Work
		if work != relation.One && work != relation.Other {
			continue
		}
		graph.attachActualization(relation, actualization)
	}
}

func (graph *Graph) attachActualization(relation *Relation, actualization *Actualization) {
	if key := actualization.Key(); !relation.actualizationSet[key] {
		relation.actualizationSet[key] = true
		relation.Actualizations = append(relation.Actualizations, actualization)
	}
}
