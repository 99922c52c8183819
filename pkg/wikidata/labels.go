package wikidata

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// labelCache memoizes entity labels for the lifetime of a Client. Labels
// never change within a run, so entries are write-once.
type labelCache struct {
	mu     sync.RWMutex
	labels map[string]string
}

func newLabelCache() *labelCache {
	return &labelCache{labels: make(map[string]string)}
}

func (c *labelCache) get(qid string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	label, ok := c.labels[qid]
	return label, ok
}

func (c *labelCache) put(qid, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.labels[qid]; !exists {
		c.labels[qid] = label
	}
}

// Label returns the display label for a QID, preferring the configured
// languages in order and falling back to the QID itself when the entity
// has no label in any of them.
func (c *Client) Label(ctx context.Context, qid string) (string, error) {
	if label, ok := c.labels.get(qid); ok {
		return label, nil
	}
	found, err := c.fetchLabels(ctx, []string{qid})
	if err != nil {
		return "", err
	}
	label, ok := found[qid]
	if !ok {
		label = qid
	}
	c.labels.put(qid, label)
	return label, nil
}

// PrefetchLabels resolves labels for many QIDs in batched queries running
// a few batches in parallel, warming the cache so later Label calls do not
// hit the endpoint one identifier at a time.
func (c *Client) PrefetchLabels(ctx context.Context, qids []string) error {
	var missing []string
	seen := make(map[string]bool)
	for _, qid := range qids {
		if qid == "" || seen[qid] {
			continue
		}
		seen[qid] = true
		if _, ok := c.labels.get(qid); !ok {
			missing = append(missing, qid)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for _, batch := range Batch(missing, 0) {
		batch := batch
		group.Go(func() error {
			found, err := c.fetchLabels(groupCtx, batch)
			if err != nil {
				return err
			}
			for _, qid := range batch {
				label, ok := found[qid]
				if !ok {
					label = qid
				}
				c.labels.put(qid, label)
			}
			return nil
		})
	}
	return group.Wait()
}

// fetchLabels queries labels for a batch of QIDs, picking the first
// configured language that has one per entity.
func (c *Client) fetchLabels(ctx context.Context, qids []string) (map[string]string, error) {
	query := fmt.Sprintf(`
SELECT ?item ?label WHERE {
  VALUES ?item { %s }
  ?item rdfs:label ?label .
  FILTER(LANG(?label) IN (%s))
}`, ValuesClause(qids), languageList(c.languages))

	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch labels: %w", err)
	}

	rank := func(lang string) int {
		for i, candidate := range c.languages {
			if candidate == lang {
				return i
			}
		}
		return len(c.languages)
	}

	best := make(map[string]string)
	bestRank := make(map[string]int)
	for _, row := range rows {
		qid := row.QID("item")
		if qid == "" {
			continue
		}
		labelRank := rank(row.Lang("label"))
		if current, ok := bestRank[qid]; !ok || labelRank < current {
			best[qid] = row.Value("label")
			bestRank[qid] = labelRank
		}
	}
	return best, nil
}

func languageList(languages []string) string {
	quoted := make([]string, len(languages))
	for i, lang := range languages {
		quoted[i] = `"` + lang + `"`
	}
	return strings.Join(quoted, ", ")
}
