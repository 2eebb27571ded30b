package option

import "gonum.org/v1/gonum/stat/distuv"

// NormCDF returns the standard normal cumulative distribution Φ(x).
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormPDF returns the standard normal density φ(x).
func NormPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// NormCDFs evaluates Φ elementwise over x into dst and returns dst.
// A nil dst is allocated; otherwise len(dst) must equal len(x).
func NormCDFs(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if len(dst) != len(x) {
		panic("option: slice length mismatch")
	}
	for i, v := range x {
		dst[i] = distuv.UnitNormal.CDF(v)
	}
	return dst
}

// NormPDFs evaluates φ elementwise over x into dst and returns dst.
// A nil dst is allocated; otherwise len(dst) must equal len(x).
func NormPDFs(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if len(dst) != len(x) {
		panic("option: slice length mismatch")
	}
	for i, v := range x {
		dst[i] = distuv.UnitNormal.Prob(v)
	}
	return dst
}
