package engine

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================================
// ERRORS
// ============================================================================
// Every error aborts the build; no partial Figure is returned.
// Use errors.Is / errors.As to classify.
// ============================================================================

var (
	// ErrUnknownKind is returned for a chart kind name that is not registered.
	ErrUnknownKind = errors.New("unknown chart kind")

	// ErrInvalidArgument is returned for argument values outside their domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidEncoding is returned when a trace type rejects an encoding
	// value for a channel (e.g. a marker symbol on a histogram).
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrNoRegressor is returned when a trendline is requested but the build
	// was configured without a regression collaborator.
	ErrNoRegressor = errors.New("trendline requested without a regressor")
)

// ColumnError reports a column selector that names no dataset column.
type ColumnError struct {
	Param  Param
	Column string
	Valid  []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("value of %q is not the name of a column in the dataset: %q; expected one of [%s]",
		string(e.Param), e.Column, strings.Join(e.Valid, ", "))
}

func invalidArgf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
