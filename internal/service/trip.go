package service

import (
	"slices"

	"tripmock/internal/domain"
)

// TripTransformer turns the static trip fixture into the document served to the UI.
type TripTransformer struct {
	currencySymbol string
	fareFields     []string
}

// NewTripTransformer creates a new TripTransformer. A nil fareFields
// formats domain.DefaultFareFields.
func NewTripTransformer(currencySymbol string, fareFields []string) *TripTransformer {
	if fareFields == nil {
		fareFields = domain.DefaultFareFields
	}
	return &TripTransformer{
		currencySymbol: currencySymbol,
		fareFields:     slices.Clone(fareFields),
	}
}

// Transform returns a copy of the fixture with the arrival time added as
// epoch milliseconds (estimated_arrival_posix) and each fare field replaced
// by its currency string. The fixture itself is never modified.
func (t *TripTransformer) Transform(fixture *domain.Fixture) (domain.Document, error) {
	doc := fixture.Document()

	trip, ok := doc[domain.TripKey].(map[string]any)
	if !ok {
		return nil, fixtureError(domain.TripKey, nil)
	}

	arrival, ok := trip[domain.FieldEstimatedArrival].(string)
	if !ok {
		return nil, fixtureError(tripField(domain.FieldEstimatedArrival), ErrInvalidArrival)
	}
	arrivesAt, err := ParseArrival(arrival)
	if err != nil {
		return nil, fixtureError(tripField(domain.FieldEstimatedArrival), err)
	}
	trip[domain.FieldEstimatedArrivalPosix] = arrivesAt.UnixMilli()

	for _, field := range t.fareFields {
		amount, err := parseMinorUnits(trip[field])
		if err != nil {
			return nil, fixtureError(tripField(field), err)
		}
		trip[field] = FormatMinorUnits(amount, t.currencySymbol)
	}

	doc[domain.TripKey] = trip
	return doc, nil
}

func tripField(name string) string {
	return domain.TripKey + "." + name
}
