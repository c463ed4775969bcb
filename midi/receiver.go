package midi

// ReceiverContext holds the mutable parser state a MIDI byte stream
// requires: the previous channel status for running-status decoding, the
// pending high-resolution velocity LSB, the rolling time code rebuilt from
// quarter-frames, and the SMF-mode flags.
//
// A context is owned by the caller, threaded through DecodeWithContext, and
// must not be shared by two decoders concurrently. Disjoint streams each
// decode with their own context.
type ReceiverContext struct {
	// ComplexCC enables assembly of CC pairs into their semantic 14-bit
	// forms, RPN/NRPN parameters and high-resolution notes. When false,
	// every control change surfaces as ControlChange{Undefined{...}}.
	ComplexCC bool

	// ParsingSMF reinterprets status 0xFF as the start of an SMF
	// meta-event instead of System Reset, and disables real-time
	// handling of that byte.
	ParsingSMF bool

	// InSMFSysEx selects the SMF sysex reader: inside a file, sysex
	// messages may be split across events and continue without a
	// leading 0xF0.
	InSMFSysEx bool

	// TimeCode is rebuilt incrementally from quarter-frame messages.
	// A consumer wanting the reassembled value reads it here.
	TimeCode TimeCode

	previousStatus byte // Previous channel status byte, 0 = none.

	pendingVelocityLSB     uint8
	pendingVelocityChannel Channel
	hasPendingVelocity     bool

	// Real-time bytes found inside another message's data bytes; each
	// is surfaced as its own message by the next decode call.
	pendingRealTime []byte
}

// NewReceiverContext returns a fresh context. CC assembly is off by
// default; set ComplexCC to opt in.
func NewReceiverContext() *ReceiverContext {
	return &ReceiverContext{}
}

// Reset clears all rolling state but keeps the configuration flags.
func (c *ReceiverContext) Reset() {
	c.TimeCode = TimeCode{}
	c.previousStatus = 0
	c.hasPendingVelocity = false
	c.pendingRealTime = nil
}

// noteChannelStatus records a decoded or encoded channel status byte, as
// the MIDI spec requires for running status.
func (c *ReceiverContext) noteChannelStatus(status byte) {
	c.previousStatus = status
}

// clearChannelStatus is called for system common and system exclusive
// messages, which cancel running status.
func (c *ReceiverContext) clearChannelStatus() {
	c.previousStatus = 0
}

func (c *ReceiverContext) setPendingVelocity(ch Channel, lsb uint8) {
	c.pendingVelocityLSB = lsb
	c.pendingVelocityChannel = ch
	c.hasPendingVelocity = true
}

// takePendingVelocity consumes the pending high-res velocity LSB for the
// given channel. It is consumed at most once, by the next note on the same
// channel; any other channel message on that channel discards it.
func (c *ReceiverContext) takePendingVelocity(ch Channel) (uint8, bool) {
	if !c.hasPendingVelocity || c.pendingVelocityChannel != ch {
		return 0, false
	}
	c.hasPendingVelocity = false
	return c.pendingVelocityLSB, true
}

func (c *ReceiverContext) discardPendingVelocity(ch Channel) {
	if c.hasPendingVelocity && c.pendingVelocityChannel == ch {
		c.hasPendingVelocity = false
	}
}

func (c *ReceiverContext) queueRealTime(status byte) {
	c.pendingRealTime = append(c.pendingRealTime, status)
}

func (c *ReceiverContext) takeRealTime() (byte, bool) {
	if len(c.pendingRealTime) == 0 {
		return 0, false
	}
	b := c.pendingRealTime[0]
	c.pendingRealTime = c.pendingRealTime[1:]
	return b, true
}
