package schema

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewAnalysisID generates a new analysis request ID in format AN-{nanoid(10)}.
func NewAnalysisID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AN-%s", id), nil
}

// NewAssetID generates a catalogue row ID in format AST-{nanoid(10)}, used
// when a source row carries no ID of its own.
func NewAssetID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AST-%s", id), nil
}
