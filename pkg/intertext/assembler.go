package intertext

import (
	"context"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sappho-digital/wiki2crm/pkg/logger"
	"github.com/sappho-digital/wiki2crm/pkg/wikidata"
)

// Wikidata properties the assembler scans on each work's facts.
var (
	// contentProperties link a work to depicted/subject/part entities
	// the classifier sorts into categories.
	contentProperties = []string{"P180", "P921", "P527"}

	// propCharacters and propMotifs short-circuit classification: their
	// targets are characters respectively motifs by construction.
	propCharacters = "P674"
	propMotifs     = "P6962"

	// workRefProperties mark one work as referenced inside another.
	workRefProperties = []string{"P361", "P1299"}

	// citationProperties are explicit citation facts.
	citationProperties = []string{"P2860", "P6166"}

	// directRelationProperties link two works without a shared feature.
	// The forward set points from the earlier-scanned work; the backward
	// set (based on, inspired by) points the other way.
	directRelationProperties = []string{"P4969", "P2512", "P921", "P144", "P5059", "P941"}
)

// Assembler drives one relation-graph run: it fetches facts for the
// input works, classifies and builds features, records actualizations,
// and assembles the pairwise relations. Graph assembly itself is
// single-threaded; only the fetcher does I/O.
type Assembler struct {
	fetcher Fetcher
	mapping *TypeMapping

	// per-run candidate memo, so an entity shared by many works is
	// classified and labeled once
	candidates map[string]*candidate
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithTypeMapping replaces the default classifier type mapping.
func WithTypeMapping(mapping *TypeMapping) AssemblerOption {
	return func(assembler *Assembler) {
		assembler.mapping = mapping
	}
}

// NewAssembler creates an Assembler using the given fetch collaborator.
func NewAssembler(fetcher Fetcher, options ...AssemblerOption) *Assembler {
	assembler := &Assembler{
		fetcher: fetcher,
		mapping: DefaultTypeMapping(),
	}
	for _, option := range options {
		option(assembler)
	}
	return assembler
}

// candidate is the per-entity classification memo.
type candidate struct {
	qid      string
	category Category
	label    string
	isPerson bool
}

// workFacts pairs a registered work with its fetched facts.
type workFacts struct {
	work  *Work
	facts *wikidata.EntityFacts
}

// Run assembles the relation graph for an ordered list of input work
// QIDs. Duplicate identifiers are a no-op at the node level. A failed
// fetch for one identifier is logged and skipped without corrupting
// state built from the others; only context cancellation aborts the
// run. Re-running over the same inputs yields an isomorphic graph
// because every node key derives from external identifiers.
func (assembler *Assembler) Run(ctx context.Context, qids []string) (*Graph, error) {
	runID, err := gonanoid.New(10)
	if err != nil {
		return nil, fmt.Errorf("failed to mint run id: %w", err)
	}

	inputs := dedupe(qids)
	logger.Info("assembling relation graph", "run", runID, "works", len(inputs))

	graph := NewGraph()
	assembler.candidates = make(map[string]*candidate)

	// Pass 1: fetch facts and register work nodes.
	var scanned []workFacts
	inputSet := make(map[string]bool, len(inputs))
	for _, qid := range inputs {
		inputSet[qid] = true
	}
	for _, qid := range inputs {
		facts, err := assembler.fetcher.Entity(ctx, qid)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, wikidata.ErrNotFound) {
				logger.Warn("work not found, skipping", "run", runID, "qid", qid)
			} else {
				logger.Warn("failed to fetch work facts, skipping", "run", runID, "qid", qid, "error", err)
			}
			continue
		}
		work := graph.EnsureWork(qid, facts.Label)
		scanned = append(scanned, workFacts{work: work, facts: facts})
		logger.Debug("fetched work facts", "run", runID,
			"qid", qid, "label", facts.Label, "properties", len(facts.Properties))
	}

	assembler.prefetchLabels(ctx, scanned, runID)

	// Pass 2: build features and actualizations from each work's facts.
	var relationFacts []directRelationFact
	var workRefFacts []workRefFact
	var citationFacts [][2]*Work
	for _, scan := range scanned {
		assembler.scanContent(ctx, graph, scan, runID)
		workRefFacts = append(workRefFacts, assembler.scanWorkReferences(graph, scan, inputSet)...)
		relationFacts = append(relationFacts, collectDirectRelations(graph, scan, inputSet)...)
		citationFacts = append(citationFacts, collectCitations(graph, scan, inputSet)...)
	}

	// Pass 3: all-pairs relation assembly. Direct relation facts go
	// first so a relation created from one carries the property in its
	// label; work references, shared features and citations then augment.
	for _, fact := range relationFacts {
		graph.EnsureRelation(fact.one, fact.other, fact.property)
	}
	for _, fact := range workRefFacts {
		relation := graph.EnsureRelation(fact.referrer, fact.host, "")
		graph.AttachSimilarity(relation, fact.feature)
	}
	for _, feature := range graph.Features {
		assembler.pairFeature(graph, feature)
	}
	for _, pair := range citationFacts {
		graph.EnsurePassage(pair[0], pair[1])
	}

	logger.Info("relation graph assembled", "run", runID,
		"works", len(graph.Works),
		"features", len(graph.Features),
		"actualizations", len(graph.Actualizations),
		"relations", len(graph.Relations),
		"passages", len(graph.Passages))
	return graph, nil
}

// prefetchLabels warms the fetcher's label cache with every candidate
// entity found on the scanned works, when the fetcher supports it. A
// failed prefetch is only logged; classification falls back to resolving
// labels one at a time.
func (assembler *Assembler) prefetchLabels(ctx context.Context, scanned []workFacts, runID string) {
	prefetcher, ok := assembler.fetcher.(LabelPrefetcher)
	if !ok {
		return
	}

	properties := make([]string, 0, len(contentProperties)+2)
	properties = append(properties, propCharacters, propMotifs)
	properties = append(properties, contentProperties...)

	var qids []string
	for _, scan := range scanned {
		for _, property := range properties {
			for _, qid := range scan.facts.Values(property) {
				if wikidata.IsQID(qid) {
					qids = append(qids, qid)
				}
			}
		}
	}
	if len(qids) == 0 {
		return
	}
	if err := prefetcher.PrefetchLabels(ctx, qids); err != nil {
		logger.Warn("failed to prefetch candidate labels", "run", runID, "error", err)
	}
}

// scanContent classifies the targets of the content properties of one
// work and records an actualization per classified target. Targets that
// are themselves input works are handled by the work-reference and
// direct-relation scans instead.
func (assembler *Assembler) scanContent(ctx context.Context, graph *Graph, scan workFacts, runID string) {
	process := func(qid string, hint Category) {
		if qid == scan.work.QID || graph.Work(qid) != nil {
			return
		}
		entry := assembler.classify(ctx, qid, hint)
		if entry == nil || entry.category == CategoryUnclassified {
			if entry != nil {
				logger.Warn("entity matched no category, skipping",
					"run", runID, "qid", qid, "work", scan.work.QID)
			}
			return
		}

		var feature *Feature
		if entry.category == CategoryCharacter {
			feature = graph.EnsureCharacter(entry.qid, entry.label, entry.isPerson)
		} else {
			feature = graph.EnsureFeature(entry.category, entry.qid, entry.label)
		}
		graph.EnsureActualization(feature, scan.work)
	}

	for _, qid := range scan.facts.Values(propCharacters) {
		if wikidata.IsQID(qid) {
			process(qid, CategoryCharacter)
		}
	}
	for _, qid := range scan.facts.Values(propMotifs) {
		if wikidata.IsQID(qid) {
			process(qid, CategoryMotif)
		}
	}
	for _, property := range contentProperties {
		for _, qid := range scan.facts.Values(property) {
			if wikidata.IsQID(qid) {
				process(qid, CategoryUnclassified)
			}
		}
	}
}

// classify resolves one entity to a category, memoized per run. A hint
// from the harvesting property wins over the type closure; the closure
// is still fetched for characters to detect real persons. Fetch failures
// yield nil so the entity is skipped for this fact only.
func (assembler *Assembler) classify(ctx context.Context, qid string, hint Category) *candidate {
	if entry, ok := assembler.candidates[qid]; ok {
		return entry
	}

	types, err := assembler.fetcher.Types(ctx, qid)
	if err != nil {
		logger.Warn("failed to fetch type closure", "qid", qid, "error", err)
		return nil
	}

	category := hint
	if category == CategoryUnclassified {
		category = assembler.mapping.Classify(types)
	}

	label, err := assembler.fetcher.Label(ctx, qid)
	if err != nil {
		logger.Warn("failed to fetch label, falling back to the identifier", "qid", qid, "error", err)
		label = qid
	}

	entry := &candidate{
		qid:      qid,
		category: category,
		label:    label,
		isPerson: category == CategoryCharacter && assembler.mapping.Accepts(CategoryPerson, types),
	}
	assembler.candidates[qid] = entry
	return entry
}

// workRefFact records one work-reference statement between two input
// works so the relation can be assembled after all facts are scanned.
type workRefFact struct {
	referrer *Work
	host     *Work
	feature  *Feature
}

// scanWorkReferences turns part-of and depicted-by facts pointing at
// other input works into work-reference features: the referenced work
// becomes the feature, actualized in the referring pair's other work.
// The relation between the pair is assembled later from the returned
// facts, with the feature attached as its similarity.
func (assembler *Assembler) scanWorkReferences(graph *Graph, scan workFacts, inputSet map[string]bool) []workRefFact {
	var facts []workRefFact
	for _, property := range workRefProperties {
		for _, target := range scan.facts.Values(property) {
			if !inputSet[target] || target == scan.work.QID {
				continue
			}
			host := graph.Work(target)
			if host == nil {
				continue
			}
			feature := graph.EnsureFeature(CategoryExpression, scan.work.QID, scan.work.Label)
			graph.EnsureActualization(feature, host)
			facts = append(facts, workRefFact{referrer: scan.work, host: host, feature: feature})
		}
	}
	return facts
}

type directRelationFact struct {
	one      *Work
	other    *Work
	property string
}

func collectDirectRelations(graph *Graph, scan workFacts, inputSet map[string]bool) []directRelationFact {
	var facts []directRelationFact
	for _, property := range directRelationProperties {
		for _, target := range scan.facts.Values(property) {
			if !inputSet[target] || target == scan.work.QID {
				continue
			}
			other := graph.Work(target)
			if other == nil {
				continue
			}
			facts = append(facts, directRelationFact{
				one:      scan.work,
				other:    other,
				property: property,
			})
		}
	}
	return facts
}

func collectCitations(graph *Graph, scan workFacts, inputSet map[string]bool) [][2]*Work {
	var pairs [][2]*Work
	for _, property := range citationProperties {
		for _, target := range scan.facts.Values(property) {
			if !inputSet[target] || target == scan.work.QID {
				continue
			}
			cited := graph.Work(target)
			if cited == nil {
				continue
			}
			pairs = append(pairs, [2]*Work{scan.work, cited})
		}
	}
	return pairs
}

// pairFeature creates or augments the relation for every unordered pair
// of works sharing an actualization of the feature.
func (assembler *Assembler) pairFeature(graph *Graph, feature *Feature) {
	works := make([]*Work, 0, len(feature.Actualizations))
	seen := make(map[string]bool)
	for _, actualization := range feature.Actualizations {
		if !seen[actualization.Work.QID] {
			seen[actualization.Work.QID] = true
			works = append(works, actualization.Work)
		}
	}
	for i := 0; i < len(works); i++ {
		for j := i + 1; j < len(works); j++ {
			relation := graph.EnsureRelation(works[i], works[j], "")
			graph.AttachSimilarity(relation, feature)
		}
	}
}

// dedupe removes duplicate identifiers preserving first-seen order.
func dedupe(qids []string) []string {
	seen := make(map[string]bool, len(qids))
	var unique []string
	for _, qid := range qids {
		if qid == "" || seen[qid] {
			continue
		}
		seen[qid] = true
		unique = append(unique, qid)
	}
	return unique
}
