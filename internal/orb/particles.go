// Package orb holds the particle engine behind the voice orb: the static
// point cloud, the smoothed animation parameters, the perspective projector
// and the plexus edge search.
package orb

import (
	"math"
	"math/rand"
)

// ColorGroups is the number of categorical palette entries a particle can pick.
const ColorGroups = 4

// Particle is a point on the sphere surface. Positions never change after
// generation; rotation and expansion are applied at projection time.
type Particle struct {
	X, Y, Z    float64
	ColorGroup int
}

// Generate samples count points uniformly on a sphere of the given radius.
// phi is drawn as acos(2u-1) so points don't bunch up at the poles.
func Generate(rng *rand.Rand, count int, radius float64) []Particle {
	if count <= 0 {
		return nil
	}
	out := make([]Particle, count)
	for i := range out {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(rng.Float64()*2 - 1)
		sinPhi := math.Sin(phi)
		out[i] = Particle{
			X:          radius * sinPhi * math.Cos(theta),
			Y:          radius * sinPhi * math.Sin(theta),
			Z:          radius * math.Cos(phi),
			ColorGroup: rng.Intn(ColorGroups),
		}
	}
	return out
}
