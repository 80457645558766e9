// Package fixture loads the static trip document served by the mock API.
package fixture

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	"tripmock/internal/domain"
)

// ErrInvalidDocument is returned when the fixture is not a usable trip document.
var ErrInvalidDocument = errors.New("invalid fixture document")

//go:embed trip.json
var defaultFixture []byte

var validate = validator.New()

// tripView is the part of the fixture checked at load time.
type tripView struct {
	Trip *struct {
		EstimatedArrival string `json:"estimated_arrival" validate:"required"`
	} `json:"trip" validate:"required"`
}

// Default returns the embedded canonical fixture.
func Default() (*domain.Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads the fixture at path. An empty path loads the embedded fixture.
func Load(path string) (*domain.Fixture, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a fixture document. The root must be a JSON object with a
// trip object carrying an estimated_arrival.
func Parse(data []byte) (*domain.Fixture, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: root must be an object", ErrInvalidDocument)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the document", ErrInvalidDocument)
	}

	var view tripView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := validate.Struct(view); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return domain.NewFixture(doc), nil
}
