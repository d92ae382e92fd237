package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// linear represents affine map W x + b shared by our estimators
type linear struct {
	w *mat.Dense
	b []float64
}

func newLinear(a *Artifact) linear {
	rows, cols := len(a.Coef), a.NumFeatures()
	flat := make([]float64, 0, rows*cols)
	for _, row := range a.Coef {
		flat = append(flat, row...)
	}
	b := make([]float64, len(a.Intercept))
	copy(b, a.Intercept)
	return linear{w: mat.NewDense(rows, cols, flat), b: b}
}

// decision computes W x + b for given input vector
func (l linear) decision(x []float64) ([]float64, error) {
	_, cols := l.w.Dims()
	if len(x) != cols {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrFeatureCount, len(x), cols)
	}
	var out mat.VecDense
	out.MulVec(l.w, mat.NewVecDense(len(x), x))
	res := make([]float64, len(l.b))
	for i := range l.b {
		res[i] = out.AtVec(i) + l.b[i]
	}
	return res, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func softmax(z []float64) []float64 {
	zmax := z[0]
	for _, v := range z[1:] {
		if v > zmax {
			zmax = v
		}
	}
	var sum float64
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = math.Exp(v - zmax)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func argmax(v []float64) int {
	idx := 0
	for i := range v {
		if v[i] > v[idx] {
			idx = i
		}
	}
	return idx
}

// NumFeatures returns number of features expected by the model
func (l linear) NumFeatures() int {
	_, cols := l.w.Dims()
	return cols
}
