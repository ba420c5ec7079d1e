package domain

// FeatureRow is a precomputed numeric descriptor of one track.
type FeatureRow struct {
	ID      string    `json:"id"`
	Classes []bool    `json:"classes,omitempty"`
	Vector  []float64 `json:"vector"`
}

// Dim returns the dimensionality of the feature vector.
func (r FeatureRow) Dim() int {
	return len(r.Vector)
}
