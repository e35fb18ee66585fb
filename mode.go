package bpr5

// DeltaMode selects how a row's residuals are derived from its
// reconstructed samples. Stored as one unsigned byte per row in the
// container.
type DeltaMode uint8

const (
	// ModeFirstOrder subtracts the chosen predictor's output from each
	// sample: residual[j] = sample[j] - pred(j).
	ModeFirstOrder DeltaMode = iota
	// ModeSecondOrder differences row-internally (second derivative along
	// the row), except column 0 of a non-initial row, which still goes
	// through the chosen predictor.
	ModeSecondOrder
)

func (m DeltaMode) String() string {
	switch m {
	case ModeFirstOrder:
		return "first-order"
	case ModeSecondOrder:
		return "second-order"
	default:
		return "INVALID"
	}
}

// Valid reports whether m is one of the two defined delta modes.
func (m DeltaMode) Valid() bool { return m <= ModeSecondOrder }
