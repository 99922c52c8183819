package store

import (
	"fmt"
	"strings"
)

// Triple represents an RDF Subject-Predicate-Object statement.
// In this domain:
//   - Subject: an entity URI (e.g., "https://sappho-digital.com/expression/Q1234")
//   - Predicate: a vocabulary term (e.g., "intro:R22_providesSimilarityForRelation")
//   - Object: another URI, a prefixed name, or an encoded literal
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// NewTriple creates a new triple with the given components.
func NewTriple(subject, predicate, object string) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Equals checks if two triples have identical components.
func (t Triple) Equals(other Triple) bool {
	return t.Subject == other.Subject &&
		t.Predicate == other.Predicate &&
		t.Object == other.Object
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("<%s> <%s> %s", t.Subject, t.Predicate, t.Object)
}

// IsValid returns true if all components are non-empty.
func (t Triple) IsValid() bool {
	return t.Subject != "" && t.Predicate != "" && t.Object != ""
}

// Literal objects are stored pre-encoded in Turtle literal syntax so the
// store never confuses them with URIs or prefixed names. An object is a
// literal iff it starts with a double quote.

// LangLiteral encodes a language-tagged literal, e.g. `"Sappho"@en`.
func LangLiteral(value, lang string) string {
	return quoteLiteral(value) + "@" + lang
}

// TypedLiteral encodes a datatyped literal, e.g. `"1787"^^xsd:gYear`.
// The datatype is given as a prefixed name or full URI.
func TypedLiteral(value, datatype string) string {
	return quoteLiteral(value) + "^^" + datatype
}

// PlainLiteral encodes a literal without language tag or datatype.
func PlainLiteral(value string) string {
	return quoteLiteral(value)
}

// IsLiteral reports whether an object value is an encoded literal.
func IsLiteral(object string) bool {
	return strings.HasPrefix(object, `"`)
}

// LiteralValue returns the lexical value of an encoded literal, without
// quotes, language tag or datatype. Non-literals are returned unchanged.
func LiteralValue(object string) string {
	if !IsLiteral(object) {
		return object
	}
	rest := object[1:]
	var builder strings.Builder
	escaped := false
	for _, char := range rest {
		if escaped {
			switch char {
			case 'n':
				builder.WriteRune('\n')
			case 'r':
				builder.WriteRune('\r')
			case 't':
				builder.WriteRune('\t')
			default:
				builder.WriteRune(char)
			}
			escaped = false
			continue
		}
		if char == '\\' {
			escaped = true
			continue
		}
		if char == '"' {
			break
		}
		builder.WriteRune(char)
	}
	return builder.String()
}

// LiteralLang returns the language tag of an encoded literal, or "" if
// it has none.
func LiteralLang(object string) string {
	if !IsLiteral(object) {
		return ""
	}
	closing := strings.LastIndex(object, `"`)
	if closing <= 0 || closing == len(object)-1 {
		return ""
	}
	suffix := object[closing+1:]
	if strings.HasPrefix(suffix, "@") {
		return suffix[1:]
	}
	return ""
}

func quoteLiteral(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + 2)
	builder.WriteByte('"')
	for _, char := range value {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(char)
		}
	}
	builder.WriteByte('"')
	return builder.String()
}
