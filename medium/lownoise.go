package medium

import (
	"math/rand"

	"github.com/ahmed-k-aly/Flow-control/physical"
)

// DefaultNoiseProbability is the per-recipient bit-flip probability used
// when a Config leaves NoiseProbability at zero.
const DefaultNoiseProbability = 0.001

// LowNoise occasionally flips a bit on its way to a recipient. The coin is
// re-flipped independently for every recipient inside the delivery loop, so
// a single transmitted bit can land flipped for one recipient and unflipped
// for another — this matches the reference implementation's per-recipient
// re-sampling, even though a two-host simulation only ever has one
// recipient per transmission.
type LowNoise struct {
	broadcaster
	probability float64
}

// NewLowNoise creates a medium that flips bits with the given probability.
// A non-positive probability falls back to DefaultNoiseProbability.
func NewLowNoise(probability float64) *LowNoise {
	if probability <= 0 {
		probability = DefaultNoiseProbability
	}
	return &LowNoise{probability: probability}
}

// Transmit delivers bit to every registered client but sender, flipping it
// independently for each recipient with this medium's probability.
func (m *LowNoise) Transmit(sender *physical.Layer, bit bool) error {
	recipients, err := m.recipients(sender)
	if err != nil {
		return err
	}

	for _, r := range recipients {
		delivered := bit
		if rand.Float64() < m.probability {
			delivered = !delivered
		}
		r.Receive(delivered)
	}
	return nil
}

func init() {
	Register("LowNoise", func(cfg Config) (physical.Medium, error) {
		return NewLowNoise(cfg.NoiseProbability), nil
	})
}
