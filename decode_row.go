package bpr5

// reconstructRow reverses selectRow + genResidualsMode{0,1} for one row,
// given its length, predictor id, delta mode, the previous reconstructed
// row, and its residuals.
//
// Row 0 is always reconstructed with the fixed seed / first-difference /
// second-difference rule, independent of mode[0]: the mode byte for row 0 is
// written as 0 and ignored on decode.
func reconstructRow(i, length int, seed int32, pid Predictor, mode DeltaMode, prev, residuals []int32) []int32 {
	rec := make([]int32, length)
	if length == 0 {
		return rec
	}
	if i == 0 {
		rec[0] = seed
		if length > 1 {
			rec[1] = rec[0] + residuals[0]
		}
		for j := 2; j < length; j++ {
			rec[j] = 2*rec[j-1] - rec[j-2] + residuals[j-1]
		}
		return rec
	}

	a, b, c := neighbors(0, nil, prev)
	rec[0] = predict(pid, a, b, c) + residuals[0]

	switch mode {
	case ModeFirstOrder:
		for j := 1; j < length; j++ {
			a, b, c := neighbors(j, rec, prev)
			rec[j] = predict(pid, a, b, c) + residuals[j]
		}
	case ModeSecondOrder:
		if length > 1 {
			rec[1] = rec[0] + residuals[1]
		}
		for j := 2; j < length; j++ {
			rec[j] = 2*rec[j-1] - rec[j-2] + residuals[j]
		}
	}
	return rec
}
