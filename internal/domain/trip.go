package domain

import "encoding/json"

// Keys of the trip fixture read or written by the transform.
const (
	TripKey                    = "trip"
	FieldEstimatedArrival      = "estimated_arrival"
	FieldEstimatedArrivalPosix = "estimated_arrival_posix"
	FieldEstimatedFareMin      = "estimated_fare_min"
	FieldEstimatedFareMax      = "estimated_fare_max"
)

// DefaultFareFields are the trip fields rendered as currency strings.
var DefaultFareFields = []string{FieldEstimatedFareMin, FieldEstimatedFareMax}

// Document is a decoded JSON object. Numbers are kept as json.Number so
// passthrough values re-encode exactly as they were read.
type Document map[string]any

// Fixture is the static trip document served by the mock API.
// It cannot be modified after construction.
type Fixture struct {
	doc Document
}

// NewFixture creates a Fixture from a copy of doc.
func NewFixture(doc Document) *Fixture {
	return &Fixture{doc: cloneMap(doc)}
}

// Document returns a deep copy of the fixture document.
func (f *Fixture) Document() Document {
	if f == nil {
		return Document{}
	}
	return cloneMap(f.doc)
}

func cloneMap(m map[string]any) Document {
	out := make(Document, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Document:
		return map[string]any(cloneMap(val))
	case map[string]any:
		return map[string]any(cloneMap(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case json.RawMessage:
		return append(json.RawMessage(nil), val...)
	default:
		// Strings, json.Number, bool and nil are immutable.
		return val
	}
}
