// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package tether

import (
	"bytes"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// randomFrame builds a valid frame of a random kind with random payload.
func randomFrame(rng *rand.Rand) *Frame {
	var kind uint8
	var payload []byte
	switch rng.Intn(3) {
	case 0:
		kind = FrameCommand
		payload = make([]byte, ucsi.CommandLen)
	case 1:
		kind = FrameCci
		payload = make([]byte, ucsi.CciLen)
	default:
		kind = FrameResponse
		payload = make([]byte, 1+rng.Intn(MaxPayloadSize))
	}
	rng.Read(payload)
	f, err := NewFrame(kind, payload)
	if err != nil {
		panic(err)
	}
	return f
}

// ============================================================
// Framing Fuzz Tests
// ============================================================

// TestFuzzFrame_RoundTrip encodes random frames and decodes them byte
// by byte, verifying kind and payload survive the wire.
func TestFuzzFrame_RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	d := NewDecoder()
	for i := 0; i < rounds; i++ {
		f := randomFrame(rng)
		wire := Encode(f)

		var got *Frame
		for _, b := range wire {
			out, err := d.DecodeByte(b)
			if err != nil {
				t.Fatalf("round %d: DecodeByte error: %v", i, err)
			}
			if out != nil {
				got = out
			}
		}
		if got == nil {
			t.Fatalf("round %d: no frame decoded from % X", i, wire)
		}
		if got.Kind() != f.Kind() {
			t.Fatalf("round %d: kind = %s, want %s", i, KindName(got.Kind()), KindName(f.Kind()))
		}
		if !bytes.Equal(got.Payload(), f.Payload()) {
			t.Fatalf("round %d: payload = % X, want % X", i, got.Payload(), f.Payload())
		}
	}
}

// TestFuzzDecoder_RandomBytes feeds raw random bytes to the decoder.
// It must never panic, and any frame it emits must satisfy the kind's
// payload length rule.
func TestFuzzDecoder_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	d := NewDecoder()
	for i := 0; i < rounds; i++ {
		chunk := make([]byte, 1+rng.Intn(64))
		rng.Read(chunk)

		for _, b := range chunk {
			f, err := d.DecodeByte(b)
			if err != nil || f == nil {
				continue
			}
			if _, err := NewFrame(f.Kind(), f.Payload()); err != nil {
				t.Fatalf("round %d: decoder emitted malformed frame: %v", i, err)
			}
		}
	}
}

// TestFuzzDecoder_Interleaved mixes garbage between valid frames and
// verifies every valid frame still decodes.
func TestFuzzDecoder_Interleaved(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	d := NewDecoder()
	for i := 0; i < rounds; i++ {
		f := randomFrame(rng)
		wire := Encode(f)

		noise := make([]byte, rng.Intn(16))
		rng.Read(noise)

		stream := append(noise, wire...)
		var got *Frame
		for _, b := range stream {
			out, err := d.DecodeByte(b)
			if err != nil {
				continue
			}
			if out != nil {
				got = out
			}
		}
		if got == nil || !bytes.Equal(got.Payload(), f.Payload()) {
			t.Fatalf("round %d: frame lost after noise % X", i, noise)
		}
	}
}
