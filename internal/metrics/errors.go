package metrics

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDesc is returned when an instrument name, label schema or bucket layout is malformed.
	ErrInvalidDesc = errors.New("metrics: invalid instrument description")
	// ErrInvalidLabelValue is returned for label values that are not valid UTF-8.
	ErrInvalidLabelValue = errors.New("metrics: invalid label value")
	// ErrUnknownInstrument is raised when a lookup names an instrument that was never registered
	// or was registered with another kind.
	ErrUnknownInstrument = errors.New("metrics: unknown instrument")

	errCounterNegativeDelta = errors.New("metrics: counter delta cannot be negative or NaN")
)

// DuplicateNameError reports an attempt to register a name that already exists with another schema.
type DuplicateNameError struct {
	Name      string
	Existing  *Desc
	Requested *Desc
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("metrics: %q already registered as %s, requested %s",
		e.Name, e.Existing.schema(), e.Requested.schema())
}

// LabelSchemaMismatchError reports label values that do not fit an instrument's label names.
type LabelSchemaMismatchError struct {
	Name        string
	LabelNames  []string
	LabelValues []string
}

func (e *LabelSchemaMismatchError) Error() string {
	return fmt.Sprintf("metrics: %q expects %d label values [%s], got %d [%s]",
		e.Name, len(e.LabelNames), strings.Join(e.LabelNames, ","),
		len(e.LabelValues), strings.Join(e.LabelValues, ","))
}
