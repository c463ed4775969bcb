package midi

import "fmt"

// Channel is a MIDI channel, Ch1 through Ch16. It is carried in the low
// nibble of the status byte as 0-15.
type Channel uint8

const (
	Ch1 Channel = iota
	Ch2
	Ch3
	Ch4
	Ch5
	Ch6
	Ch7
	Ch8
	Ch9
	Ch10
	Ch11
	Ch12
	Ch13
	Ch14
	Ch15
	Ch16
)

// String returns the 1-based channel name.
func (c Channel) String() string {
	return fmt.Sprintf("ch%d", uint8(c&0x0F)+1)
}

// Status byte high nibbles for the channel voice kinds.
const (
	statusNoteOff         = 0x80
	statusNoteOn          = 0x90
	statusPolyPressure    = 0xA0
	statusControlChange   = 0xB0
	statusProgramChange   = 0xC0
	statusChannelPressure = 0xD0
	statusPitchBend       = 0xE0
)

// highResVelocityCC is CC 0x58, the high-resolution velocity prefix.
const highResVelocityCC = 0x58

// ChannelVoiceMsg is a channel voice payload: the part of a channel
// message after the status byte.
type ChannelVoiceMsg interface {
	channelVoiceMsg()
}

// NoteOff releases a key.
type NoteOff struct {
	Note     uint8
	Velocity uint8
}

// NoteOn strikes a key. Velocity 0 is conventionally a note-off.
type NoteOn struct {
	Note     uint8
	Velocity uint8
}

// HighResNoteOn is a NoteOn with 14-bit velocity. It serializes as a
// regular NoteOn carrying the velocity MSB followed by a CC 0x58 on the
// same channel carrying the LSB.
type HighResNoteOn struct {
	Note     uint8
	Velocity uint16
}

// HighResNoteOff is the 14-bit velocity form of NoteOff.
type HighResNoteOff struct {
	Note     uint8
	Velocity uint16
}

// PolyPressure is per-key aftertouch.
type PolyPressure struct {
	Note     uint8
	Pressure uint8
}

// ChannelPressure is channel-wide aftertouch.
type ChannelPressure struct {
	Pressure uint8
}

// ProgramChange selects a patch.
type ProgramChange struct {
	Program uint8
}

// PitchBend carries a 14-bit bend value; 8192 is center.
type PitchBend struct {
	Bend uint16
}

// ControlChange wraps a Control payload; see control.go.
type ControlChange struct {
	Control Control
}

func (NoteOff) channelVoiceMsg()         {}
func (NoteOn) channelVoiceMsg()          {}
func (HighResNoteOn) channelVoiceMsg()   {}
func (HighResNoteOff) channelVoiceMsg()  {}
func (PolyPressure) channelVoiceMsg()    {}
func (ChannelPressure) channelVoiceMsg() {}
func (ProgramChange) channelVoiceMsg()   {}
func (PitchBend) channelVoiceMsg()       {}
func (ControlChange) channelVoiceMsg()   {}

// ============================================================
// Encoding
// ============================================================

// appendChannelVoice writes one channel voice message. withStatus is false
// for the running variants, which omit the leading status byte.
func appendChannelVoice(buf []byte, ch Channel, m ChannelVoiceMsg, withStatus bool) []byte {
	ch &= 0x0F
	status := func(kind byte) {
		if withStatus {
			buf = append(buf, kind|byte(ch))
		}
	}

	switch v := m.(type) {
	case NoteOff:
		status(statusNoteOff)
		buf = append(buf, clampU7(v.Note), clampU7(v.Velocity))
	case NoteOn:
		status(statusNoteOn)
		buf = append(buf, clampU7(v.Note), clampU7(v.Velocity))
	case HighResNoteOn:
		vel := clampU14(v.Velocity)
		status(statusNoteOn)
		buf = append(buf, clampU7(v.Note), byte(vel>>7))
		buf = append(buf, statusControlChange|byte(ch), highResVelocityCC, byte(vel&0x7F))
	case HighResNoteOff:
		vel := clampU14(v.Velocity)
		status(statusNoteOff)
		buf = append(buf, clampU7(v.Note), byte(vel>>7))
		buf = append(buf, statusControlChange|byte(ch), highResVelocityCC, byte(vel&0x7F))
	case PolyPressure:
		status(statusPolyPressure)
		buf = append(buf, clampU7(v.Note), clampU7(v.Pressure))
	case ChannelPressure:
		status(statusChannelPressure)
		buf = append(buf, clampU7(v.Pressure))
	case ProgramChange:
		status(statusProgramChange)
		buf = append(buf, clampU7(v.Program))
	case PitchBend:
		status(statusPitchBend)
		buf = appendU14(buf, v.Bend)
	case ControlChange:
		status(statusControlChange)
		buf = appendControl(buf, v.Control)
	}
	return buf
}

// ============================================================
// Decoding
// ============================================================

// decodeChannelMsg decodes the message whose status byte (already
// consumed) is status. It handles the CC/mode split on 0xB and the
// high-resolution note pairings.
func decodeChannelMsg(r *reader, ctx *ReceiverContext, status byte) (Msg, error) {
	ch := Channel(status & 0x0F)
	ctx.noteChannelStatus(status)

	switch status & 0xF0 {
	case statusNoteOff, statusNoteOn:
		note, err := r.u7()
		if err != nil {
			return nil, err
		}
		vel, err := r.u7()
		if err != nil {
			return nil, err
		}
		return decodeNote(r, ctx, ch, status&0xF0 == statusNoteOn, note, vel), nil

	case statusPolyPressure:
		note, err := r.u7()
		if err != nil {
			return nil, err
		}
		pressure, err := r.u7()
		if err != nil {
			return nil, err
		}
		ctx.discardPendingVelocity(ch)
		return ChannelVoice{Channel: ch, Msg: PolyPressure{Note: note, Pressure: pressure}}, nil

	case statusControlChange:
		control, err := r.u7()
		if err != nil {
			return nil, err
		}
		value, err := r.u7()
		if err != nil {
			return nil, err
		}
		if control >= 120 {
			ctx.discardPendingVelocity(ch)
			mode, err := decodeChannelMode(control, value)
			if err != nil {
				return nil, err
			}
			return ChannelMode{Channel: ch, Msg: mode}, nil
		}
		return decodeControlChange(r, ctx, ch, control, value)

	case statusProgramChange:
		program, err := r.u7()
		if err != nil {
			return nil, err
		}
		ctx.discardPendingVelocity(ch)
		return ChannelVoice{Channel: ch, Msg: ProgramChange{Program: program}}, nil

	case statusChannelPressure:
		pressure, err := r.u7()
		if err != nil {
			return nil, err
		}
		ctx.discardPendingVelocity(ch)
		return ChannelVoice{Channel: ch, Msg: ChannelPressure{Pressure: pressure}}, nil

	case statusPitchBend:
		bend, err := r.u14()
		if err != nil {
			return nil, err
		}
		ctx.discardPendingVelocity(ch)
		return ChannelVoice{Channel: ch, Msg: PitchBend{Bend: bend}}, nil
	}
	return nil, errInvalid("bad channel status 0x%02X", status)
}

// decodeNote forms the final note message. With ComplexCC enabled a 14-bit
// velocity comes from either a trailing CC 0x58 (the serialized layout) or
// a pending LSB recorded from an earlier CC 0x58 on the same channel.
func decodeNote(r *reader, ctx *ReceiverContext, ch Channel, on bool, note, vel uint8) Msg {
	if ctx.ComplexCC {
		if lsb, ok := peekCC(r, ctx, ch, highResVelocityCC, false); ok {
			return highResNote(ch, on, note, uint16(vel)<<7|uint16(lsb))
		}
		if lsb, ok := ctx.takePendingVelocity(ch); ok {
			return highResNote(ch, on, note, uint16(vel)<<7|uint16(lsb))
		}
	}
	if on {
		return ChannelVoice{Channel: ch, Msg: NoteOn{Note: note, Velocity: vel}}
	}
	return ChannelVoice{Channel: ch, Msg: NoteOff{Note: note, Velocity: vel}}
}

func highResNote(ch Channel, on bool, note uint8, vel uint16) Msg {
	if on {
		return ChannelVoice{Channel: ch, Msg: HighResNoteOn{Note: note, Velocity: vel}}
	}
	return ChannelVoice{Channel: ch, Msg: HighResNoteOff{Note: note, Velocity: vel}}
}

// peekCC consumes and returns the value of the next message if it is a CC
// with the given control number on the given channel. Two layouts match: a
// repeated status byte (3 bytes), or, when allowRunning is set, a
// continuation of the current 0xB status run (2 bytes).
func peekCC(r *reader, ctx *ReceiverContext, ch Channel, control uint8, allowRunning bool) (uint8, bool) {
	b0, ok := r.peekAt(0)
	if !ok {
		return 0, false
	}
	if b0 == statusControlChange|byte(ch&0x0F) {
		b1, ok1 := r.peekAt(1)
		b2, ok2 := r.peekAt(2)
		if ok1 && ok2 && b1 == control && b2 < 0x80 {
			r.skip(3)
			ctx.noteChannelStatus(b0)
			return b2, true
		}
		return 0, false
	}
	if allowRunning && b0 == control && b0 < 0x80 {
		b1, ok1 := r.peekAt(1)
		if ok1 && b1 < 0x80 {
			r.skip(2)
			return b1, true
		}
	}
	return 0, false
}
