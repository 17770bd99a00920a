package fields

import (
	"errors"
	"fmt"
)

// FieldKind selects a group of field components for erase, filter and
// transform operations. The set is closed; each operation accepts a subset
// and rejects the rest with ErrInvalidFieldKind before touching any data.
type FieldKind int

const (
	KindE FieldKind = iota
	KindB
	KindJ
	KindRho
	KindRhoNext
	KindRhoPrev
)

func (k FieldKind) String() string {
	switch k {
	case KindE:
		return "E"
	case KindB:
		return "B"
	case KindJ:
		return "J"
	case KindRho:
		return "rho"
	case KindRhoNext:
		return "rho_next"
	case KindRhoPrev:
		return "rho_prev"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// FilterDirection selects the axis of a binomial smoothing pass on the
// interpolation grid.
type FilterDirection int

const (
	FilterR FilterDirection = iota
	FilterZ
)

var (
	// ErrInvalidFieldKind is returned when a FieldKind is outside the set
	// accepted by the operation it was passed to.
	ErrInvalidFieldKind = errors.New("invalid field kind for this operation")

	// ErrModeMismatch is returned when a spectral grid and a set of PSATD
	// coefficients built for different azimuthal modes are paired in a push.
	// It indicates a programming error, not a recoverable condition.
	ErrModeMismatch = errors.New("spectral grid and psatd coefficients belong to different azimuthal modes")
)
