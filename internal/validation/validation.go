package validation

import (
	"fmt"
	"strings"

	"slotfinder-backend/internal/models"
)

const (
	MaxNameLength  = 255
	MaxQueryLength = 100
)

// Default visible grid and the hard per-axis bounds the grid can be
// stretched to.
const (
	DefaultBoxes       = 2
	DefaultRowsPerBox  = 6
	DefaultSlotsPerRow = 8

	BoxMin  = 1
	BoxMax  = 8
	RowMin  = 1
	RowMax  = 12
	SlotMin = 1
	SlotMax = 12
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Limits holds the per-axis location bounds. The zero value is not usable;
// construct with DefaultLimits or from config.
type Limits struct {
	BoxMin, BoxMax   int
	RowMin, RowMax   int
	SlotMin, SlotMax int
}

func DefaultLimits() Limits {
	return Limits{
		BoxMin: BoxMin, BoxMax: BoxMax,
		RowMin: RowMin, RowMax: RowMax,
		SlotMin: SlotMin, SlotMax: SlotMax,
	}
}

func (l Limits) ValidateLocation(loc models.Location) error {
	if loc.BoxNo < l.BoxMin || loc.BoxNo > l.BoxMax {
		return newError("Box number must be between %d and %d", l.BoxMin, l.BoxMax)
	}
	if loc.RowNo < l.RowMin || loc.RowNo > l.RowMax {
		return newError("Row number must be between %d and %d", l.RowMin, l.RowMax)
	}
	if loc.SlotNo < l.SlotMin || loc.SlotNo > l.SlotMax {
		return newError("Slot number must be between %d and %d", l.SlotMin, l.SlotMax)
	}
	return nil
}

func ValidateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return newError("Product name is required")
	}
	if len(name) > MaxNameLength {
		return newError("Product name must be less than %d characters", MaxNameLength)
	}
	if strings.ContainsAny(name, "<>") {
		return newError("Product name contains invalid characters")
	}
	return nil
}

// SanitizeQuery trims a search query, strips angle brackets and caps the
// length. It never fails; a hostile query just shrinks.
func SanitizeQuery(query string) string {
	q := strings.TrimSpace(query)
	q = strings.ReplaceAll(q, "<", "")
	q = strings.ReplaceAll(q, ">", "")
	if len(q) > MaxQueryLength {
		q = q[:MaxQueryLength]
	}
	return q
}
