package ranker

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes feature columns to zero mean and unit population
// standard deviation.
type Scaler struct {
	mean []float64
	std  []float64
}

// Fit computes per-column statistics over rows. All rows must have the same
// length.
func Fit(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to fit", ErrDimensionMismatch)
	}
	dim := len(rows[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: rows have no features", ErrDimensionMismatch)
	}

	m := mat.NewDense(len(rows), dim, nil)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), dim)
		}
		m.SetRow(i, row)
	}

	s := &Scaler{
		mean: make([]float64, dim),
		std:  make([]float64, dim),
	}
	col := make([]float64, len(rows))
	for j := range dim {
		mat.Col(col, j, m)
		mean, variance := stat.PopMeanVariance(col, nil)
		s.mean[j] = mean
		if !isConstant(mean, variance, len(col)) {
			s.std[j] = math.Sqrt(variance)
		}
	}
	return s, nil
}

// isConstant reports whether variance is rounding residue of a column holding
// one repeated value.
func isConstant(mean, variance float64, n int) bool {
	const eps = 0x1p-52
	nf := float64(n)
	bound := nf*eps*variance + (nf*mean*eps)*(nf*mean*eps)
	return variance <= bound
}

func (s *Scaler) Dim() int {
	return len(s.mean)
}

// Transform returns the standardized copy of v. Columns with zero variance
// map to 0.
func (s *Scaler) Transform(v []float64) ([]float64, error) {
	if len(v) != len(s.mean) {
		return nil, fmt.Errorf("%w: vector has %d features, want %d", ErrDimensionMismatch, len(v), len(s.mean))
	}
	out := make([]float64, len(v))
	for j, x := range v {
		if s.std[j] == 0 {
			continue
		}
		out[j] = (x - s.mean[j]) / s.std[j]
	}
	return out, nil
}
