package store

import (
	"fmt"
	"sync"
)

// TripleStore is an in-memory RDF triple store with multiple indexes.
// It provides efficient lookups via three indexes:
//   - SPO: Subject -> Predicate -> Object (find facts about a subject)
//   - POS: Predicate -> Object -> Subject (find subjects with property=value)
//   - OSP: Object -> Subject -> Predicate (find subjects pointing to object)
//
// Within one pipeline run the store is append-only: Add is idempotent and
// nothing is ever removed.
type TripleStore struct {
	mu sync.RWMutex

	spo map[string]map[string]map[string]bool
	pos map[string]map[string]map[string]bool
	osp map[string]map[string]map[string]bool

	count int
}

// NewTripleStore creates a new in-memory triple store with all indexes
// initialized.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		spo: make(map[string]map[string]map[string]bool),
		pos: make(map[string]map[string]map[string]bool),
		osp: make(map[string]map[string]map[string]bool),
	}
}

// Add inserts a triple into the store. Returns nil if successful or if the
// triple already exists (idempotent operation).
func (ts *TripleStore) Add(subject, predicate, object string) error {
	if subject == "" || predicate == "" || object == "" {
		return fmt.Errorf("triple components cannot be empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.addUnsafe(subject, predicate, object)
	return nil
}

// AddTriple inserts a Triple struct into the store.
func (ts *TripleStore) AddTriple(triple Triple) error {
	return ts.Add(triple.Subject, triple.Predicate, triple.Object)
}

// AddPair inserts a triple and its inverse in one call, the common case
// for the CRM/INTRO property pairs this pipeline emits.
func (ts *TripleStore) AddPair(subject, predicate, object, inverse string) error {
	if err := ts.Add(subject, predicate, object); err != nil {
		return err
	}
	return ts.Add(object, inverse, subject)
}

// BulkAdd inserts multiple triples. Invalid triples are skipped. Holds the
// write lock for the entire operation to minimize lock contention.
func (ts *TripleStore) BulkAdd(triples []Triple) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, triple := range triples {
		if !triple.IsValid() {
			continue
		}
		ts.addUnsafe(triple.Subject, triple.Predicate, triple.Object)
	}
}

// MergeFrom copies all triples from the source store into this store.
// Returns the number of new triples added (duplicates are skipped).
func (ts *TripleStore) MergeFrom(source *TripleStore) int {
	previous := ts.Count()
	ts.BulkAdd(source.All())
	return ts.Count() - previous
}

// Find queries triples matching the given components. Use empty string ""
// for wildcards. Returns all matching triples.
func (ts *TripleStore) Find(subject, predicate, object string) []Triple {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.findUnsafe(subject, predicate, object)
}

// Exists checks if a specific triple exists in the store.
func (ts *TripleStore) Exists(subject, predicate, object string) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.existsUnsafe(subject, predicate, object)
}

// HasSubject reports whether any triple with the given subject exists.
func (ts *TripleStore) HasSubject(subject string) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return len(ts.spo[subject]) > 0
}

// Get retrieves all properties for a subject as a map of predicate -> objects.
func (ts *TripleStore) Get(subject string) map[string][]string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	result := make(map[string][]string)
	if pMap, ok := ts.spo[subject]; ok {
		for p, oMap := range pMap {
			objects := make([]string, 0, len(oMap))
			for o := range oMap {
				objects = append(objects, o)
			}
			result[p] = objects
		}
	}
	return result
}

// GetOne retrieves a single object value for a subject-predicate pair.
// Returns empty string if not found.
func (ts *TripleStore) GetOne(subject, predicate string) string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if pMap, ok := ts.spo[subject]; ok {
		if oMap, ok := pMap[predicate]; ok {
			for o := range oMap {
				return o
			}
		}
	}
	return ""
}

// Count returns the total number of triples in the store.
func (ts *TripleStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.count
}

// Subjects returns all unique subjects in the store.
func (ts *TripleStore) Subjects() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	subjects := make([]string, 0, len(ts.spo))
	for s := range ts.spo {
		subjects = append(subjects, s)
	}
	return subjects
}

// Predicates returns all unique predicates in the store.
func (ts *TripleStore) Predicates() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	predicates := make([]string, 0, len(ts.pos))
	for p := range ts.pos {
		predicates = append(predicates, p)
	}
	return predicates
}

// All returns all triples in the store.
func (ts *TripleStore) All() []Triple {
	return ts.Find("", "", "")
}

// String returns a string representation of the store statistics.
func (ts *TripleStore) String() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return fmt.Sprintf("TripleStore{triples: %d, subjects: %d, predicates: %d, objects: %d}",
		ts.count, len(ts.spo), len(ts.pos), len(ts.osp))
}

func (ts *TripleStore) addUnsafe(subject, predicate, object string) {
	if ts.existsUnsafe(subject, predicate, object) {
		return
	}

	if ts.spo[subject] == nil {
		ts.spo[subject] = make(map[string]map[string]bool)
	}
	if ts.spo[subject][predicate] == nil {
		ts.spo[subject][predicate] = make(map[string]bool)
	}
	ts.spo[subject][predicate][object] = true

	if ts.pos[predicate] == nil {
		ts.pos[predicate] = make(map[string]map[string]bool)
	}
	if ts.pos[predicate][object] == nil {
		ts.pos[predicate][object] = make(map[string]bool)
	}
	ts.pos[predicate][object][subject] = true

	if ts.osp[object] == nil {
		ts.osp[object] = make(map[string]map[string]bool)
	}
	if ts.osp[object][subject] == nil {
		ts.osp[object][subject] = make(map[string]bool)
	}
	ts.osp[object][subject][predicate] = true

	ts.count++
}

func (ts *TripleStore) existsUnsafe(subject, predicate, object string) bool {
	if pMap, ok := ts.spo[subject]; ok {
		if oMap, ok := pMap[predicate]; ok {
			return oMap[object]
		}
	}
	return false
}

func (ts *TripleStore) findUnsafe(subject, predicate, object string) []Triple {
	var results []Triple

	// All wildcards - return all triples
	if subject == "" && predicate == "" && object == "" {
		for s, pMap := range ts.spo {
			for p, oMap := range pMap {
				for o := range oMap {
					results = append(results, Triple{Subject: s, Predicate: p, Object: o})
				}
			}
		}
		return results
	}

	// Use most specific index based on what's specified
	if subject != "" {
		if pMap, ok := ts.spo[subject]; ok {
			if predicate != "" {
				if oMap, ok := pMap[predicate]; ok {
					if object != "" {
						if oMap[object] {
							results = append(results, Triple{Subject: subject, Predicate: predicate, Object: object})
						}
					} else {
						for o := range oMap {
							results = append(results, Triple{Subject: subject, Predicate: predicate, Object: o})
						}
					}
				}
			} else {
				for p, oMap := range pMap {
					if object != "" {
						if oMap[object] {
							results = append(results, Triple{Subject: subject, Predicate: p, Object: object})
						}
					} else {
						for o := range oMap {
							results = append(results, Triple{Subject: subject, Predicate: p, Object: o})
						}
					}
				}
			}
		}
	} else if predicate != "" {
		if oMap, ok := ts.pos[predicate]; ok {
			if object != "" {
				if sMap, ok := oMap[object]; ok {
					for s := range sMap {
						results = append(results, Triple{Subject: s, Predicate: predicate, Object: object})
					}
				}
			} else {
				for o, sMap := range oMap {
					for s := range sMap {
						results = append(results, Triple{Subject: s, Predicate: predicate, Object: o})
					}
				}
			}
		}
	} else if object != "" {
		if sMap, ok := ts.osp[object]; ok {
			for s, pMap := range sMap {
				for p := range pMap {
					results = append(results, Triple{Subject: s, Predicate: p, Object: object})
				}
			}
		}
	}

	return results
}
