// pkg/optimize/brent.go
package optimize

import (
	"errors"
	"math"
)

const (
	// maxIterations bounds the search; Brent converges in far fewer steps
	// for the smooth likelihoods this package is used on
	maxIterations = 100

	// golden is the squared inverse golden ratio used for section steps
	golden = 0.3819660112501051

	// sqrtEps scales the relative part of the positional tolerance
	sqrtEps = 1.4901161193847656e-08
)

// Objective is a scalar function to maximize
type Objective func(x float64) float64

// Result reports the outcome of a bounded scalar search
type Result struct {
	X          float64 // location of the maximum
	Value      float64 // objective value at X
	Iterations int
	Converged  bool
	Low, High  float64 // the searched interval
}

// AtBoundary reports whether the maximizer landed within eps of either end
// of the search interval. A boundary solution signals the true optimum lies
// outside the searched range.
func (r Result) AtBoundary(eps float64) bool {
	return r.X-r.Low < eps || r.High-r.X < eps
}

// Maximize finds the maximum of f on the closed interval [low, high] using
// Brent's method: golden-section steps with successive parabolic
// interpolation when the surface cooperates. tol is the absolute positional
// tolerance; non-positive tol gets a sensible default.
func Maximize(f Objective, low, high, tol float64) (Result, error) {
	if f == nil {
		return Result{}, errors.New("objective cannot be nil")
	}
	if !(low < high) {
		return Result{}, errors.New("search interval must satisfy low < high")
	}
	if tol <= 0 {
		// same scale as the classic optimize() default
		tol = math.Pow(2.220446049250313e-16, 0.25)
	}

	neg := func(x float64) float64 { return -f(x) }

	a, b := low, high
	x := a + golden*(b-a)
	w, v := x, x
	fx := neg(x)
	fw, fv := fx, fx

	var d, e float64
	iter := 0
	converged := false

	for ; iter < maxIterations; iter++ {
		mid := 0.5 * (a + b)
		tol1 := sqrtEps*math.Abs(x) + tol/3
		tol2 := 2 * tol1

		if math.Abs(x-mid) <= tol2-0.5*(b-a) {
			converged = true
			break
		}

		useGolden := true
		if math.Abs(e) > tol1 {
			// fit a parabola through (v,fv), (w,fw), (x,fx)
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			etmp := e
			e = d
			if math.Abs(p) < math.Abs(0.5*q*etmp) && p > q*(a-x) && p < q*(b-x) {
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = math.Copysign(tol1, mid-x)
				}
				useGolden = false
			}
		}
		if useGolden {
			if x < mid {
				e = b - x
			} else {
				e = a - x
			}
			d = golden * e
		}

		var u float64
		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + math.Copysign(tol1, d)
		}
		fu := neg(u)

		if fu <= fx {
			if u < x {
				b = x
			} else {
				a = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}

	return Result{
		X:          x,
		Value:      -fx,
		Iterations: iter,
		Converged:  converged,
		Low:        low,
		High:       high,
	}, nil
}
