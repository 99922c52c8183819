package wikidata

import (
	"strings"
)

// Term is one value cell in a SPARQL JSON result binding.
type Term struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Lang  string `json:"xml:lang,omitempty"`
}

// Binding is one result row: variable name -> term.
type Binding map[string]Term

// Has reports whether the row binds the given variable.
func (b Binding) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// Value returns the raw value of a variable, or "" if unbound.
func (b Binding) Value(name string) string {
	return b[name].Value
}

// QID returns the trailing path segment of a URI-valued variable, which
// for Wikidata entity URIs is the QID. Returns "" if unbound.
func (b Binding) QID(name string) string {
	value := b[name].Value
	if value == "" {
		return ""
	}
	if idx := strings.LastIndex(value, "/"); idx != -1 {
		return value[idx+1:]
	}
	return value
}

// Lang returns the language tag of a literal-valued variable, or "" when
// unbound or untagged.
func (b Binding) Lang(name string) string {
	return b[name].Lang
}

// sparqlResponse mirrors the application/sparql-results+json envelope.
type sparqlResponse struct {
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean,omitempty"`
}

// ValuesClause renders a list of QIDs as a SPARQL VALUES body,
// e.g. "wd:Q1 wd:Q2 wd:Q3".
func ValuesClause(qids []string) string {
	parts := make([]string, 0, len(qids))
	for _, qid := range qids {
		parts = append(parts, "wd:"+qid)
	}
	return strings.Join(parts, " ")
}

// Batch splits a QID list into chunks of at most size, preserving order.
func Batch(qids []string, size int) [][]string {
	if size <= 0 {
		size = 20
	}
	var batches [][]string
	for start := 0; start < len(qids); start += size {
		end := start + size
		if end > len(qids) {
			end = len(qids)
		}
		batches = append(batches, qids[start:end])
	}
	return batches
}
