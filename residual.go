package bpr5

// genResidualsMode0 produces the first-order residual sequence for row i
// under predictor pid, given prev (the previous row, or nil for row 0).
// Residual generation is lossless, so the reconstructed samples used as
// context are simply the true samples in row; this lets the same function
// double as the predictor-cost evaluator in select.go.
//
// Column 0 of row 0 is the seed and contributes no residual; every other
// column contributes exactly one.
func genResidualsMode0(i int, row, prev []int32, pid Predictor) []int32 {
	out := make([]int32, 0, len(row))
	for j := 0; j < len(row); j++ {
		if i == 0 && j == 0 {
			continue
		}
		a, b, c := neighbors(j, row, prev)
		out = append(out, row[j]-predict(pid, a, b, c))
	}
	return out
}

// genResidualsMode1 produces the second-order residual sequence for row i:
// row-internal second differencing, except column 0 of a non-initial row,
// which still goes through the chosen predictor. Column 1 is always
// residual = sample - rec[0], regardless of row index.
func genResidualsMode1(i int, row, prev []int32, pid Predictor) []int32 {
	out := make([]int32, 0, len(row))
	for j := 0; j < len(row); j++ {
		switch {
		case i == 0 && j == 0:
			continue
		case j == 0:
			a, b, c := neighbors(0, row, prev)
			out = append(out, row[j]-predict(pid, a, b, c))
		case j == 1:
			out = append(out, row[1]-row[0])
		default:
			out = append(out, row[j]-2*row[j-1]+row[j-2])
		}
	}
	return out
}

// neighbors returns the A (left), B (up), C (up-left) context samples for
// column j of the row currently being predicted, applying the column-0
// boundary rule: A = 0, C = 0, B = prev[0] (or 0 if prev is empty).
// reconstructRow in decode_row.go applies this same rule while rebuilding a
// row, so encode and decode stay in lockstep.
func neighbors(j int, row, prev []int32) (a, b, c int32) {
	if j == 0 {
		if len(prev) > 0 {
			b = prev[0]
		}
		return 0, b, 0
	}
	a = row[j-1]
	if j < len(prev) {
		b = prev[j]
	}
	if j-1 < len(prev) {
		c = prev[j-1]
	}
	return a, b, c
}

func l1Sum(residuals []int32) int64 {
	var sum int64
	for _, r := range residuals {
		sum += int64(abs32(r))
	}
	return sum
}
