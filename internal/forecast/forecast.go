// Package forecast fits a polynomial trend to a revenue series and
// extrapolates it over a fixed horizon. The x axis is the sequential index
// of each point, not the calendar date: gaps between trading days are
// treated as adjacent.
package forecast

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

type Mode string

const (
	// ModeLinear fits a straight line (degree 1).
	ModeLinear Mode = "linear"
	// ModeSmoothed fits a cubic (degree 3). More expressive, but it can
	// oscillate on short or noisy series; that is accepted behavior.
	ModeSmoothed Mode = "smoothed"
)

// Horizon is the number of future indices the projection extends to.
const Horizon = 7

// ErrInsufficientData is returned when the series has fewer than two points.
var ErrInsufficientData = errors.New("insufficient data: need at least two points to fit a trend")

type Point struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Projection holds the fitted curve evaluated at the observed indices (for
// plotting against actuals) and at the next Horizon indices.
type Projection struct {
	Fitted []Point `json:"fitted"`
	Future []Point `json:"future"`
	// Growing compares the fitted curve's first and last evaluated points,
	// which is the sole trend signal.
	Growing bool `json:"growing"`
}

// Project fits the series and extrapolates it. Degree is 1 for ModeLinear
// and 3 for ModeSmoothed, capped at n-1 so short series stay solvable.
func Project(values []float64, mode Mode) (*Projection, error) {
	n := len(values)
	if n < 2 {
		return nil, ErrInsufficientData
	}

	degree := 1
	if mode == ModeSmoothed {
		degree = 3
	}
	if degree > n-1 {
		degree = n - 1
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	coeffs, err := polyfit(xs, values, degree)
	if err != nil {
		return nil, err
	}

	proj := &Projection{
		Fitted: make([]Point, 0, n),
		Future: make([]Point, 0, Horizon),
	}
	for i := 0; i < n; i++ {
		proj.Fitted = append(proj.Fitted, Point{Index: i, Value: polyval(coeffs, float64(i))})
	}
	for i := n; i < n+Horizon; i++ {
		proj.Future = append(proj.Future, Point{Index: i, Value: polyval(coeffs, float64(i))})
	}
	last := proj.Future[len(proj.Future)-1].Value
	proj.Growing = last >= proj.Fitted[0].Value
	return proj, nil
}

// polyfit solves the least-squares polynomial fit via QR on the Vandermonde
// matrix. Coefficients are returned lowest order first.
func polyfit(xs, ys []float64, degree int) ([]float64, error) {
	rows, cols := len(xs), degree+1
	a := mat.NewDense(rows, cols, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	b := mat.NewVecDense(rows, ys)

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		return nil, err
	}

	out := make([]float64, cols)
	for j := 0; j < cols; j++ {
		out[j] = coef.AtVec(j)
	}
	return out, nil
}

// polyval evaluates the polynomial at x using Horner's rule.
func polyval(coeffs []float64, x float64) float64 {
	y := 0.0
	for j := len(coeffs) - 1; j >= 0; j-- {
		y = y*x + coeffs[j]
	}
	return y
}
