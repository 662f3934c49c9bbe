package errors

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/speich/dGraph/pkg/dag"
)

// FromValidation converts a layout engine error into a coded *Error.
//
// Layer problems map to INVALID_LAYER, edge problems to INVALID_EDGE, a bad
// maxPerLayer to INVALID_CONFIG, other [dag.ValidationError]s to
// INVALID_GRAPH, and context errors to TIMEOUT.
// Errors that already carry a code are returned unchanged, anything else
// becomes INTERNAL_ERROR. A nil error stays nil.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var coded *Error
	if errors.As(err, &coded) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Wrap(ErrCodeTimeout, err, "layout aborted")
	}

	switch {
	case errors.Is(err, dag.ErrLayerOutOfRange), errors.Is(err, dag.ErrLayerCountMismatch),
		errors.Is(err, dag.ErrInvalidLayerCount):
		return Wrap(ErrCodeInvalidLayer, err, "invalid layer")
	case errors.Is(err, dag.ErrUnknownSourceNode), errors.Is(err, dag.ErrUnknownTargetNode),
		errors.Is(err, dag.ErrSameLayerEdge), errors.Is(err, dag.ErrReverseEdge):
		return Wrap(ErrCodeInvalidEdge, err, "invalid edge")
	case errors.Is(err, dag.ErrInvalidCapacity):
		return Wrap(ErrCodeInvalidConfig, err, "invalid capacity")
	}
	var verr *dag.ValidationError
	if errors.As(err, &verr) {
		return Wrap(ErrCodeInvalidGraph, err, "invalid graph")
	}
	return Wrap(ErrCodeInternal, err, "layout failed")
}

// ValidateLabel validates a node label used to select a node, for example
// the start of a path search.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "node label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidInput, "node label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node label contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL validates a backend connection URL such as a Redis or MongoDB
// URI. The scheme must be one of schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use one of the schemes %s", strings.Join(schemes, ", "))
}
