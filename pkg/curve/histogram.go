package curve

import "math"

// HistogramSilhouette scales a 256-bucket frequency array into bar heights for
// the filled silhouette drawn behind the curve canvas.
//
// Buckets are scaled logarithmically (h[i] = height * log(1+v[i]) /
// log(1+max)) so sparse shadows and highlights stay visible next to dominant
// midtones. The scaling depends only on the input, so redraws are stable. The
// tallest bucket always reaches the full height; an empty histogram yields all
// zeros.
func HistogramSilhouette(bins [256]uint32, height float64) [256]float64 {
	var out [256]float64
	var max uint32
	for _, v := range bins {
		if v > max {
			max = v
		}
	}
	if max == 0 || height <= 0 {
		return out
	}
	denom := math.Log1p(float64(max))
	for i, v := range bins {
		out[i] = height * math.Log1p(float64(v)) / denom
	}
	return out
}
