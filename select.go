package bpr5

// encodedRow holds everything the container writer needs for one row: the
// chosen predictor and delta mode, and the residuals to pack.
type encodedRow struct {
	Predictor Predictor
	Mode      DeltaMode
	Residuals []int32
}

// selectRow chooses the best predictor and delta mode for row i: evaluate
// every candidate under a cost metric (here, L1 residual sum) and keep the
// minimum, with ties resolved by candidate order.
//
// i is the row index, row is the row's true samples, prev is the previous
// row's reconstructed samples (nil for row 0).
func selectRow(i int, row, prev []int32) encodedRow {
	pid, mode0 := selectPredictor(i, row, prev)
	mode1 := genResidualsMode1(i, row, prev, pid)

	if i == 0 {
		// Row 0 is always reconstructed with the fixed seed/second-difference
		// rule, which is exactly mode 1's formula at j>=1. Its residuals must
		// follow that formula unconditionally rather than whichever mode has
		// the smaller L1 sum, or the fixed reconstruction rule would recover
		// the wrong samples.
		return encodedRow{Predictor: pid, Mode: ModeSecondOrder, Residuals: mode1}
	}

	sum0 := l1Sum(mode0)
	sum1 := l1Sum(mode1)

	if sum1 < sum0 {
		return encodedRow{Predictor: pid, Mode: ModeSecondOrder, Residuals: mode1}
	}
	return encodedRow{Predictor: pid, Mode: ModeFirstOrder, Residuals: mode0}
}

// selectPredictor evaluates the four predictors' first-order L1 residual
// sum for row i and returns the id of the minimum, ties broken by id order
// (LEFT < UP < PAETH < MED), along with its residuals so the caller doesn't
// have to regenerate them.
func selectPredictor(i int, row, prev []int32) (Predictor, []int32) {
	best := LEFT
	var bestResiduals []int32
	bestSum := int64(-1)
	for pid := LEFT; pid <= MED; pid++ {
		residuals := genResidualsMode0(i, row, prev, pid)
		sum := l1Sum(residuals)
		if bestSum < 0 || sum < bestSum {
			bestSum = sum
			best = pid
			bestResiduals = residuals
		}
	}
	return best, bestResiduals
}
