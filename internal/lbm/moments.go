package lbm

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Density returns sum_i f[i]*w[i].
func Density(f Site) float64 {
	return floats.Dot(f[:], weights[:])
}

// Momentum returns sum_i f[i]*e[i]. The engine uses it directly as the
// macroscopic velocity.
func Momentum(f Site) r2.Vec {
	var u r2.Vec
	for i, e := range velocities {
		u = r2.Add(u, r2.Scale(f[i], e))
	}
	return u
}

// Equilibrium returns the second-order BGK equilibrium for the density and
// momentum of f.
func Equilibrium(f Site) Site {
	rho := Density(f)
	u := Momentum(f)
	u2 := r2.Norm2(u)

	var eq Site
	for i, e := range velocities {
		eu := r2.Dot(e, u)
		eq[i] = weights[i] * rho * (1 + 3*eu + 4.5*eu*eu - 1.5*u2)
	}
	return eq
}

// Relax moves every population of f towards eq by omega and returns the
// result.
func Relax(f, eq Site, omega float64) Site {
	for i := range f {
		f[i] += omega * (eq[i] - f[i])
	}
	return f
}

// ForceUnitDensity rescales f so that Density(f) == 1. A site with zero
// density becomes the rest distribution Weights().
func ForceUnitDensity(f Site) Site {
	rho := Density(f)
	if rho == 0 {
		return weights
	}
	f.Scale(1 / rho)
	return f
}
