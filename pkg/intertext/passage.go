package intertext

// EnsurePassage records an explicit citation of one work inside another
// as a text passage hosted on the citing work. At most one passage
// exists per ordered (citing, cited) pair; the passage is attached to
// the relation for the unordered pair, creating that relation if no
// shared feature produced it already.
func (graph *Graph) EnsurePassage(citing, cited *Work) *TextPassage {
	if citing == nil || cited == nil || citing.QID == cited.QID {
		return nil
	}

	passage, created, _ := getOrCreate(graph.registry, kindTextPassage, citing.QID+"_"+cited.QID, func() (*TextPassage, error) {
		return &TextPassage{
			Citing: citing,
			Cited:  cited,
			Label:  "Text passage in " + citing.Label,
		}, nil
	})
	if created {
		graph.Passages = append(graph.Passages, passage)
	}

	relation := graph.EnsureRelation(citing, cited, "")
	if relation != nil && created {
		relation.Passages = append(relation.Passages, passage)
	}
	return passage
}
