package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Format identifies an output serialization format.
type Format string

// Supported output formats.
const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatJSON     Format = "json"
)

// ParseFormat converts a CLI flag value into a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(value) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt":
		return FormatNTriples, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want turtle, ntriples or json)", value)
	}
}

// graphDocument is the JSON dump format used to recombine per-stage
// outputs without a Turtle parser.
type graphDocument struct {
	Triples []Triple `json:"triples"`
}

// Export serializes the store in the given format.
func (ts *TripleStore) Export(format Format, serializer *TurtleSerializer) ([]byte, error) {
	if serializer == nil {
		serializer = NewTurtleSerializer()
	}

	switch format {
	case FormatTurtle:
		return []byte(serializer.Serialize(ts)), nil
	case FormatNTriples:
		return []byte(serializer.SerializeNTriples(ts)), nil
	case FormatJSON:
		doc := graphDocument{Triples: sortedTriples(ts.All())}
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile serializes the store and writes it to path.
func (ts *TripleStore) WriteFile(path string, format Format, serializer *TurtleSerializer) error {
	data, err := ts.Export(format, serializer)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadJSONFile loads a JSON graph dump produced by WriteFile into a new store.
func ReadJSONFile(path string) (*TripleStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc graphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph dump %s: %w", path, err)
	}

	ts := NewTripleStore()
	ts.BulkAdd(doc.Triples)
	return ts, nil
}

// SerializeNTriples converts all triples to N-Triples format. Prefixed
// vocabulary terms are expanded to full URIs using the serializer's
// prefix table; literals keep their encoded form.
func (serializer *TurtleSerializer) SerializeNTriples(store *TripleStore) string {
	triples := sortedTriples(store.All())

	var builder strings.Builder
	for _, triple := range triples {
		builder.WriteString("<")
		builder.WriteString(escapeIRI(serializer.expandTerm(triple.Subject)))
		builder.WriteString("> <")
		builder.WriteString(escapeIRI(serializer.expandTerm(triple.Predicate)))
		builder.WriteString("> ")
		if IsLiteral(triple.Object) {
			builder.WriteString(triple.Object)
		} else {
			builder.WriteString("<")
			builder.WriteString(escapeIRI(serializer.expandTerm(triple.Object)))
			builder.WriteString(">")
		}
		builder.WriteString(" .\n")
	}
	return builder.String()
}

// expandTerm converts a prefixed name to a full URI; full URIs pass through.
func (serializer *TurtleSerializer) expandTerm(term string) string {
	if isFullURI(term) {
		return term
	}
	colonIndex := strings.Index(term, ":")
	if colonIndex <= 0 {
		return term
	}
	if namespace, ok := serializer.prefixIndex[term[:colonIndex]]; ok {
		return namespace + term[colonIndex+1:]
	}
	return term
}

func sortedTriples(triples []Triple) []Triple {
	sort.Slice(triples, func(i, j int) bool {
		if triples[i].Subject != triples[j].Subject {
			return triples[i].Subject < triples[j].Subject
		}
		if triples[i].Predicate != triples[j].Predicate {
			return triples[i].Predicate < triples[j].Predicate
		}
		return triples[i].Object < triples[j].Object
	})
	return triples
}
