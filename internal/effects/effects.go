// Package effects assigns the per-strip visual distortions used by the hard
// variants. The assignment is cosmetic noise: unseeded, regenerated on every
// attempt advance, never persisted.
package effects

import "math/rand/v2"

// Effect tags one poster strip with a visual distortion.
type Effect string

const (
	None       Effect = "none"
	Flip       Effect = "flip"
	Desaturate Effect = "desaturate"
	Obscure    Effect = "obscure"
)

// buckets maps a uniform draw into four equal-probability effects, in this
// fixed order.
var buckets = []Effect{None, Flip, Desaturate, Obscure}

// Generate draws one effect per strip, each independently uniform over the
// four tags. A non-positive strip count yields an empty sequence.
func Generate(stripCount int) []Effect {
	if stripCount <= 0 {
		return nil
	}
	out := make([]Effect, stripCount)
	for i := range out {
		out[i] = buckets[int(rand.Float64()*float64(len(buckets)))]
	}
	return out
}
