package medium

import (
	"errors"
	"testing"

	"github.com/ahmed-k-aly/Flow-control/physical"
)

func TestPerfectDeliversBitUnchanged(t *testing.T) {
	m := NewPerfect()
	a := physical.New(m)
	b := physical.New(m)

	if err := a.Send(true); err != nil {
		t.Fatalf("Send: %v", err)
	}
	bit, ok := b.Retrieve()
	if !ok || !bit {
		t.Errorf("b received (%v, %v), want (true, true)", bit, ok)
	}
}

func TestTransmitFromUnregisteredSenderFails(t *testing.T) {
	m := NewPerfect()
	physical.New(m) // register one client so recipients() isn't trivially empty

	unregistered := &physical.Layer{}
	err := m.Transmit(unregistered, true)
	if !errors.Is(err, ErrUnregisteredSender) {
		t.Errorf("err = %v, want ErrUnregisteredSender", err)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	m := NewPerfect()
	a := physical.New(m)
	m.Register(a) // re-register the same client

	if got := len(m.clients); got != 1 {
		t.Errorf("clients = %d, want 1 after re-registering the same layer", got)
	}
}

func TestCreateUnknownVariant(t *testing.T) {
	if _, err := Create("Nonexistent", Config{}); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestLowNoiseDefaultsProbabilityWhenNonPositive(t *testing.T) {
	m := NewLowNoise(0)
	if m.probability != DefaultNoiseProbability {
		t.Errorf("probability = %v, want default %v", m.probability, DefaultNoiseProbability)
	}
}
