// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
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

// ============================================================
// Command Codec Fuzz Tests
// ============================================================

// TestFuzzCommand_RandomBytes feeds random command mailbox images to
// the decoder and verifies it doesn't panic; whatever decodes must
// re-encode to a decodable image.
func TestFuzzCommand_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		var b [CommandLen]byte
		rng.Read(b[:])

		cmd, err := DecodeCommand[GlobalPortID](b[:])
		if err != nil {
			continue
		}

		var out [CommandLen]byte
		if _, err := EncodeCommand[GlobalPortID](cmd, out[:]); err != nil {
			t.Errorf("Round %d: decoded command failed to encode: %v (input % X)", i, err, b)
			continue
		}
		if _, err := DecodeCommand[GlobalPortID](out[:]); err != nil {
			t.Errorf("Round %d: re-encoded image failed to decode: %v (image % X)", i, err, out)
		}
	}
}

// TestFuzzCommand_ValidOpcodes generates images with a valid opcode and
// random arguments
func TestFuzzCommand_ValidOpcodes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		var b [CommandLen]byte
		rng.Read(b[:])
		b[0] = byte(commandTypes[rng.Intn(len(commandTypes))])

		// Must never panic; errors are fine (unsupported opcodes,
		// invalid enum fields).
		cmd, err := DecodeCommand[GlobalPortID](b[:])
		if err != nil {
			continue
		}
		if lpm, ok := cmd.(LpmCommand[GlobalPortID]); ok {
			if byte(lpm.Port)&^connectorNumberMask != 0 {
				t.Errorf("Round %d: connector number out of range: %d", i, lpm.Port)
			}
		}
	}
}

// ============================================================
// Response Codec Fuzz Tests
// ============================================================

// TestFuzzResponse_RandomBytes decodes random response images against
// every command type
func TestFuzzResponse_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		var b [MaxResponseLen]byte
		rng.Read(b[:])
		ct := commandTypes[rng.Intn(len(commandTypes))]

		data, err := DecodeResponse(ct, b[:])
		if err != nil {
			continue
		}
		if data.CommandType() != ct {
			t.Errorf("Round %d: decoded %s data for %s",
				i, CommandTypeName(data.CommandType()), CommandTypeName(ct))
		}

		var out [MaxResponseLen]byte
		if _, err := EncodeResponse(data, out[:]); err != nil {
			t.Errorf("Round %d: decoded response failed to encode: %v", i, err)
		}
	}
}

// TestFuzzConnectorStatus_RoundTrip re-encodes every decodable random
// status record and verifies the second decode agrees
func TestFuzzConnectorStatus_RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		var b [MaxResponseLen]byte
		rng.Read(b[:])

		d, err := DecodeConnectorStatusData(b[:])
		if err != nil {
			continue
		}
		if r := d.PowerReading; r != nil && (r.ScaleMa == 0 || r.ScaleMv == 0) {
			// Zero-scale readings cannot be re-encoded losslessly;
			// the encoder treats them as absent.
			continue
		}

		var out [MaxResponseLen]byte
		d.encode(out[:])
		d2, err := DecodeConnectorStatusData(out[:])
		if err != nil {
			t.Errorf("Round %d: re-encoded record failed to decode: %v", i, err)
			continue
		}
		if d.StatusChange != d2.StatusChange ||
			(d.Connection == nil) != (d2.Connection == nil) ||
			(d.PowerReading == nil) != (d2.PowerReading == nil) {
			t.Errorf("Round %d: round trip disagrees on presence flags", i)
			continue
		}
		if d.Connection != nil && *d.Connection != *d2.Connection {
			t.Errorf("Round %d: connection mismatch:\n got  %#v\n want %#v", i, *d2.Connection, *d.Connection)
		}
		if d.PowerReading != nil && *d.PowerReading != *d2.PowerReading {
			t.Errorf("Round %d: power reading mismatch:\n got  %#v\n want %#v", i, *d2.PowerReading, *d.PowerReading)
		}
	}
}

// ============================================================
// CCI Fuzz Tests
// ============================================================

// TestFuzzCci_RoundTrip verifies every 32-bit pattern survives the CCI
// codec unchanged
func TestFuzzCci_RoundTrip(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		c := Cci[GlobalPortID](rng.Uint32())
		var b [CciLen]byte
		if _, err := c.Encode(b[:]); err != nil {
			t.Fatalf("Round %d: encode failed: %v", i, err)
		}
		got, err := DecodeCci[GlobalPortID](b[:])
		if err != nil {
			t.Errorf("Round %d: decode failed: %v", i, err)
			continue
		}
		if got != c {
			t.Errorf("Round %d: 0x%08X round-tripped to 0x%08X", i, uint32(c), uint32(got))
		}
	}
}

// ============================================================
// State Machine Fuzz Tests
// ============================================================

func randomInput(rng *rand.Rand) Input {
	switch rng.Intn(4) {
	case 0:
		return CommandCompleted{}
	case 1:
		return BusyChanged{}
	default:
		cmds := []Command[GlobalPortID]{
			PpmReset{},
			Cancel{},
			GetCapability{},
			AckCcCi{Ack: Ack(rng.Intn(4))},
			SetNotificationEnable{Enable: NotificationEnable(rng.Uint32())},
			NewLpmCommand[GlobalPortID](GlobalPortID(rng.Intn(128)), GetConnectorStatus{}),
		}
		return CommandInput[GlobalPortID]{Command: cmds[rng.Intn(len(cmds))]}
	}
}

// TestFuzzStateMachine_RandomInputs drives the machine with random
// event sequences and checks the state/output pairing stays coherent
func TestFuzzStateMachine_RandomInputs(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		m := NewStateMachine[GlobalPortID]()
		steps := rng.Intn(64) + 1
		for j := 0; j < steps; j++ {
			before := m.State()
			out, err := m.Consume(randomInput(rng))

			if err != nil {
				if m.State() != before {
					t.Fatalf("Round %d step %d: rejected input moved state %s -> %s",
						i, j, before, m.State())
				}
				if out != OutputNone {
					t.Fatalf("Round %d step %d: rejected input produced %s", i, j, out)
				}
				continue
			}
			switch out {
			case OutputExecuteCommand:
				if m.State().Kind != StateProcessingCommand {
					t.Fatalf("Round %d step %d: ExecuteCommand left state %s", i, j, m.State())
				}
			case OutputResetComplete:
				if got := m.State(); got.Kind != StateIdle || got.Notified {
					t.Fatalf("Round %d step %d: ResetComplete left state %s", i, j, got)
				}
			case OutputNotifyCommandComplete:
				if m.State().Kind != StateWaitForCommandCompleteAck {
					t.Fatalf("Round %d step %d: NotifyCommandComplete left state %s", i, j, m.State())
				}
			case OutputAckComplete:
				if got := m.State(); got.Kind != StateIdle || !got.Notified {
					t.Fatalf("Round %d step %d: AckComplete left state %s", i, j, got)
				}
			}
		}
	}
}
