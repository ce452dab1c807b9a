// Package lbm implements a D2Q9 lattice Boltzmann engine.
//
// Each cell of the lattice holds a Site: nine populations, one per discrete
// velocity (dx, dy) in {-1,0,1}^2. Engine.Step relaxes every site towards its
// equilibrium (BGK collision) and then pushes the populations to their
// neighbours, reflecting them in place where the neighbour is solid
// (bounce-back). Two population grids are kept and swapped each tick.
//
// Density and Momentum follow this engine's own definitions: density is the
// weight-scaled sum of the populations and momentum is used directly as the
// flow velocity, without dividing by density.
package lbm
