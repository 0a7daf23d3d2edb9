package medium

import "github.com/ahmed-k-aly/Flow-control/physical"

// Perfect delivers every bit unchanged to every recipient. It is the medium
// used by the "Perfect" CLI argument.
type Perfect struct {
	broadcaster
}

// NewPerfect creates an ideal, lossless medium.
func NewPerfect() *Perfect {
	return &Perfect{}
}

// Transmit delivers bit unchanged to every registered client but sender.
func (m *Perfect) Transmit(sender *physical.Layer, bit bool) error {
	recipients, err := m.recipients(sender)
	if err != nil {
		return err
	}

	for _, r := range recipients {
		r.Receive(bit)
	}
	return nil
}

func init() {
	Register("Perfect", func(Config) (physical.Medium, error) {
		return NewPerfect(), nil
	})
}
