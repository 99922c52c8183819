package store

// Emitter accumulates triples into a store, remembering the first write
// error so emission code stays linear instead of checking every Add.
type Emitter struct {
	store *TripleStore
	err   error
}

// NewEmitter creates an Emitter writing into the given store.
func NewEmitter(store *TripleStore) *Emitter {
	return &Emitter{store: store}
}

// Add inserts one triple; after the first error every call is a no-op.
func (e *Emitter) Add(subject, predicate, object string) {
	if e.err != nil {
		return
	}
	e.err = e.store.Add(subject, predicate, object)
}

// AddPair inserts a direct/inverse property pair; after the first error
// every call is a no-op.
func (e *Emitter) AddPair(subject, predicate, object, inverse string) {
	if e.err != nil {
		return
	}
	e.err = e.store.AddPair(subject, predicate, object, inverse)
}

// Err returns the first write error encountered, or nil.
func (e *Emitter) Err() error {
	return e.err
}
