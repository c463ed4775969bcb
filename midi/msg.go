package midi

import "fmt"

// Msg is a complete MIDI message: the tagged union over the channel,
// system and (inside SMF) meta families.
type Msg interface {
	fmt.Stringer
	msg()
}

// ChannelVoice is a voice message with a leading status byte carrying the
// channel in its low nibble.
type ChannelVoice struct {
	Channel Channel
	Msg     ChannelVoiceMsg
}

// RunningChannelVoice carries the same payload as ChannelVoice but is
// emitted without the status byte; the channel field is informational.
type RunningChannelVoice struct {
	Channel Channel
	Msg     ChannelVoiceMsg
}

// ChannelMode is a channel mode message (CC 120-127).
type ChannelMode struct {
	Channel Channel
	Msg     ChannelModeMsg
}

// RunningChannelMode is the running-status form of ChannelMode.
type RunningChannelMode struct {
	Channel Channel
	Msg     ChannelModeMsg
}

// SystemCommon wraps a system common payload.
type SystemCommon struct {
	Msg SystemCommonMsg
}

// SystemRealTime wraps one of the single-byte real-time messages.
type SystemRealTime struct {
	Msg SystemRealTimeMsg
}

// SystemExclusive wraps a sysex envelope.
type SystemExclusive struct {
	Msg SysExMsg
}

// Meta wraps an SMF meta-event. It is only ever produced inside a
// Standard MIDI File, never on the wire.
type Meta struct {
	Msg MetaMsg
}

func (ChannelVoice) msg()        {}
func (RunningChannelVoice) msg() {}
func (ChannelMode) msg()         {}
func (RunningChannelMode) msg()  {}
func (SystemCommon) msg()        {}
func (SystemRealTime) msg()      {}
func (SystemExclusive) msg()     {}
func (Meta) msg()                {}

func (m ChannelVoice) String() string {
	return fmt.Sprintf("%s %T%+v", m.Channel, m.Msg, m.Msg)
}

func (m RunningChannelVoice) String() string {
	return fmt.Sprintf("%s (running) %T%+v", m.Channel, m.Msg, m.Msg)
}

func (m ChannelMode) String() string {
	return fmt.Sprintf("%s %T%+v", m.Channel, m.Msg, m.Msg)
}

func (m RunningChannelMode) String() string {
	return fmt.Sprintf("%s (running) %T%+v", m.Channel, m.Msg, m.Msg)
}

func (m SystemCommon) String() string {
	return fmt.Sprintf("%T%+v", m.Msg, m.Msg)
}

func (m SystemRealTime) String() string {
	return m.Msg.String()
}

func (m SystemExclusive) String() string {
	return fmt.Sprintf("sysex %T%+v", m.Msg, m.Msg)
}

func (m Meta) String() string {
	return fmt.Sprintf("meta %T%+v", m.Msg, m.Msg)
}

// ============================================================
// Encoding
// ============================================================

// Encode serializes one message to its wire bytes. Encoding never fails:
// out-of-range fields are clamped to their width.
func Encode(m Msg) []byte {
	return appendMsg(nil, m)
}

// EncodeAll serializes messages back to back into one buffer. The result
// equals the concatenation of the individual encodings.
func EncodeAll(msgs []Msg) []byte {
	buf := make([]byte, 0, 4*len(msgs))
	for _, m := range msgs {
		buf = appendMsg(buf, m)
	}
	return buf
}

func appendMsg(buf []byte, m Msg) []byte {
	switch v := m.(type) {
	case ChannelVoice:
		return appendChannelVoice(buf, v.Channel, v.Msg, true)
	case RunningChannelVoice:
		return appendChannelVoice(buf, v.Channel, v.Msg, false)
	case ChannelMode:
		return appendChannelMode(buf, v.Channel, v.Msg, true)
	case RunningChannelMode:
		return appendChannelMode(buf, v.Channel, v.Msg, false)
	case SystemCommon:
		return appendSystemCommon(buf, v.Msg)
	case SystemRealTime:
		return append(buf, realTimeByte(v.Msg))
	case SystemExclusive:
		return appendSysEx(buf, v.Msg)
	case Meta:
		return appendMeta(buf, v.Msg)
	}
	return buf
}

// ============================================================
// Decoding
// ============================================================

// Decode consumes one message from the head of data using a fresh
// context. It fails on running status and split sysex, which need state;
// use DecodeWithContext for those.
func Decode(data []byte) (Msg, int, error) {
	return DecodeWithContext(data, NewReceiverContext())
}

// DecodeWithContext consumes one message from the head of data and
// returns it with the number of bytes consumed. The context accumulates
// running status, pending high-res velocity and rolling time code across
// calls.
//
// A real-time byte interleaved inside another message's data bytes is
// consumed with that message and queued; the following call returns it
// as its own message with zero bytes consumed.
func DecodeWithContext(data []byte, ctx *ReceiverContext) (Msg, int, error) {
	if ctx == nil {
		ctx = NewReceiverContext()
	}
	if b, ok := ctx.takeRealTime(); ok {
		m, err := decodeRealTime(b)
		if err != nil {
			return nil, 0, err
		}
		return m, 0, nil
	}
	r := &reader{data: data, ctx: ctx}
	m, err := decodeMsg(r, ctx)
	if err != nil {
		return nil, 0, err
	}
	return m, r.pos, nil
}

func decodeMsg(r *reader, ctx *ReceiverContext) (Msg, error) {
	b, err := r.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case b == sysExStart:
		return decodeSysEx(r, ctx)

	case b == sysExEnd:
		if ctx.InSMFSysEx {
			return decodeSysExFragment(r, ctx)
		}
		return nil, errInvalid("unexpected end of sysex flag 0xF7")

	case b == 0xF1 || b == 0xF2 || b == 0xF3 || b == 0xF6:
		r.skip(1)
		return decodeSystemCommon(r, ctx, b)

	case b == 0xF4 || b == 0xF5:
		return nil, errInvalid("undefined system common status 0x%02X", b)

	case b >= 0xF8:
		if b == 0xFF && ctx.ParsingSMF {
			// Inside a file 0xFF opens a meta-event, not System Reset.
			r.skip(1)
			return decodeMeta(r)
		}
		r.skip(1)
		return decodeRealTime(b)

	case b < 0x80:
		if ctx.InSMFSysEx {
			return decodeSysExFragment(r, ctx)
		}
		if ctx.previousStatus == 0 {
			return nil, &ParseError{Kind: ContextlessRunningStatus}
		}
		return decodeChannelMsg(r, ctx, ctx.previousStatus)

	default: // 0x80-0xEF
		r.skip(1)
		return decodeChannelMsg(r, ctx, b)
	}
}
