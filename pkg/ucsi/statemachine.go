// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "fmt"

// StateKind names the PPM protocol states.
type StateKind uint8

// PPM states
const (
	StateIdle StateKind = iota
	StateBusy
	StateProcessingCommand
	StateWaitForCommandCompleteAck
)

// State is the PPM protocol state. Notified tracks whether the OPM has
// enabled asynchronous notifications; it rides inside Idle and Busy
// because notification enablement and hardware readiness are
// orthogonal, and both must survive independently of any in-flight
// command.
type State struct {
	Kind     StateKind
	Notified bool
}

func (s State) String() string {
	switch s.Kind {
	case StateIdle:
		return fmt.Sprintf("Idle(notified=%t)", s.Notified)
	case StateBusy:
		return fmt.Sprintf("Busy(notified=%t)", s.Notified)
	case StateProcessingCommand:
		return "ProcessingCommand"
	case StateWaitForCommandCompleteAck:
		return "WaitForCommandCompleteAck"
	default:
		return fmt.Sprintf("State(%d)", s.Kind)
	}
}

// Input is one discrete event fed to the state machine: a decoded
// command from the OPM, completion of the executing command, or a
// change of the hardware busy line.
type Input interface {
	inputLabel() string
}

// CommandInput wraps a decoded command mailbox write.
type CommandInput[P PortID] struct {
	Command Command[P]
}

// CommandCompleted signals that the host finished executing the
// command issued by the last ExecuteCommand output.
type CommandCompleted struct{}

// BusyChanged signals that the hardware busy line toggled. It is
// independent of protocol state: hardware may go busy while idle.
type BusyChanged struct{}

func (c CommandInput[P]) inputLabel() string {
	return "Command(" + CommandTypeName(c.Command.CommandType()) + ")"
}
func (CommandCompleted) inputLabel() string { return "CommandCompleted" }
func (BusyChanged) inputLabel() string      { return "BusyChanged" }

// Output instructs the host what side effect to perform after a legal
// transition. OutputNone means the transition was internal only.
type Output uint8

// Outputs
const (
	OutputNone Output = iota
	OutputExecuteCommand
	OutputNotifyCommandComplete
	OutputAckComplete
	OutputResetComplete
	OutputNotifyBusy
)

func (o Output) String() string {
	switch o {
	case OutputNone:
		return "None"
	case OutputExecuteCommand:
		return "ExecuteCommand"
	case OutputNotifyCommandComplete:
		return "NotifyCommandComplete"
	case OutputAckComplete:
		return "AckComplete"
	case OutputResetComplete:
		return "ResetComplete"
	case OutputNotifyBusy:
		return "NotifyBusy"
	default:
		return fmt.Sprintf("Output(%d)", uint8(o))
	}
}

// InvalidTransitionError reports an input that is illegal in the
// current state. The machine's state is unchanged; the host should
// log or report the protocol violation and carry on.
type InvalidTransitionError struct {
	State State
	Input string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s in state %s", e.Input, e.State)
}

// StateMachine sequences UCSI command admission for one PPM. There is
// exactly one instance per PPM, not one per connector: LPM commands
// carry their own port id but share the machine.
//
// Consume is synchronous and non-blocking; all waiting is the host's.
// The type performs no internal locking — concurrent callers must
// serialize, keeping it host-agnostic (main loop, RTOS task, or
// goroutine-per-link all work).
type StateMachine[P PortID] struct {
	state State
}

// NewStateMachine returns a machine in Idle with notifications
// disabled, the power-on state.
func NewStateMachine[P PortID]() *StateMachine[P] {
	return &StateMachine[P]{state: State{Kind: StateIdle}}
}

// State returns the current protocol state.
func (m *StateMachine[P]) State() State {
	return m.state
}

// Consume feeds one event through the transition table and returns the
// side-effect instruction for the host. Illegal inputs return
// InvalidTransitionError and leave the state unchanged.
func (m *StateMachine[P]) Consume(input Input) (Output, error) {
	// PPM_RESET is the universal escape hatch: legal from every
	// state, checked before everything else.
	if cmd, ok := input.(CommandInput[P]); ok {
		if _, isReset := cmd.Command.(PpmReset); isReset {
			m.state = State{Kind: StateIdle, Notified: false}
			return OutputResetComplete, nil
		}
	}

	switch m.state.Kind {
	case StateIdle:
		return m.consumeIdle(input)
	case StateBusy:
		return m.consumeBusy(input)
	case StateProcessingCommand:
		return m.consumeProcessing(input)
	case StateWaitForCommandCompleteAck:
		return m.consumeWaitAck(input)
	}
	return OutputNone, m.reject(input)
}

func (m *StateMachine[P]) consumeIdle(input Input) (Output, error) {
	switch in := input.(type) {
	case BusyChanged:
		m.state.Kind = StateBusy
		return OutputNone, nil
	case CommandInput[P]:
		if !m.state.Notified {
			// Before notifications are enabled the only
			// admissible command is SET_NOTIFICATION_ENABLE.
			if _, ok := in.Command.(SetNotificationEnable); ok {
				m.state = State{Kind: StateProcessingCommand}
				return OutputExecuteCommand, nil
			}
			return OutputNone, m.reject(input)
		}
		switch c := in.Command.(type) {
		case AckCcCi:
			// A command-complete ack with nothing outstanding
			// is a protocol violation; a pure connector-change
			// ack is an ordinary command.
			if c.Ack.CommandCompleteAck() {
				return OutputNone, m.reject(input)
			}
		case Cancel:
			// Nothing to cancel outside ProcessingCommand.
			return OutputNone, m.reject(input)
		}
		m.state = State{Kind: StateProcessingCommand}
		return OutputExecuteCommand, nil
	}
	return OutputNone, m.reject(input)
}

func (m *StateMachine[P]) consumeBusy(input Input) (Output, error) {
	switch input.(type) {
	case BusyChanged:
		m.state.Kind = StateIdle
		return OutputNone, nil
	case CommandCompleted:
		// A command finishing while the hardware is busy: surface
		// it as a busy indication when the OPM listens.
		if m.state.Notified {
			return OutputNotifyBusy, nil
		}
		return OutputNone, nil
	}
	return OutputNone, m.reject(input)
}

func (m *StateMachine[P]) consumeProcessing(input Input) (Output, error) {
	switch in := input.(type) {
	case CommandCompleted:
		m.state = State{Kind: StateWaitForCommandCompleteAck}
		return OutputNotifyCommandComplete, nil
	case CommandInput[P]:
		// Cancellation of the in-flight command completes it; the
		// OPM still acks the completion.
		if _, ok := in.Command.(Cancel); ok {
			m.state = State{Kind: StateWaitForCommandCompleteAck}
			return OutputNotifyCommandComplete, nil
		}
	}
	return OutputNone, m.reject(input)
}

func (m *StateMachine[P]) consumeWaitAck(input Input) (Output, error) {
	if in, ok := input.(CommandInput[P]); ok {
		if ack, ok := in.Command.(AckCcCi); ok && ack.Ack.CommandCompleteAck() {
			m.state = State{Kind: StateIdle, Notified: true}
			return OutputAckComplete, nil
		}
	}
	return OutputNone, m.reject(input)
}

func (m *StateMachine[P]) reject(input Input) error {
	return &InvalidTransitionError{State: m.state, Input: input.inputLabel()}
}
