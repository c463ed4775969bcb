package smf

import (
	"encoding/binary"

	"midiwire/midi"
)

// Track is one chunk of the file body: a parsed MTrk, or any other
// chunk carried verbatim.
type Track interface {
	track()
}

// MIDITrack is a parsed MTrk chunk.
type MIDITrack struct {
	Events []TrackEvent
}

// AlienChunk is a chunk whose type tag is not MTrk. Its body is not
// interpreted and re-encodes byte for byte.
type AlienChunk struct {
	Type [4]byte
	Data []byte
}

func (MIDITrack) track()  {}
func (AlienChunk) track() {}

// TrackEvent is a delta time in ticks followed by one message.
type TrackEvent struct {
	DeltaTime uint32
	Event     midi.Msg
}

// ============================================================
// Decoding
// ============================================================

// decodeTrackEvents parses an MTrk body. The receiver context lives for
// the whole track, so running status and split sysex work across
// events. On failure the offset of the failed byte within body is
// returned alongside the error.
func decodeTrackEvents(body []byte) (MIDITrack, int, error) {
	var track MIDITrack
	ctx := midi.NewReceiverContext()
	ctx.ParsingSMF = true

	pos := 0
	for pos < len(body) {
		delta, n, err := midi.DecodeVLQ(body[pos:])
		if err != nil {
			return track, pos, err
		}
		pos += n
		if pos >= len(body) {
			return track, pos, errUnexpectedEnd()
		}

		msg, next, err := decodeEvent(body, pos, ctx)
		if err != nil {
			return track, pos, err
		}
		track.Events = append(track.Events, TrackEvent{DeltaTime: delta, Event: msg})
		pos = next
	}
	return track, pos, nil
}

// decodeEvent parses the message part of one event starting at
// body[pos] and returns the offset just past it.
func decodeEvent(body []byte, pos int, ctx *midi.ReceiverContext) (midi.Msg, int, error) {
	lead := body[pos]

	switch lead {
	case 0xF0, 0xF7:
		// Length-prefixed sysex event. The F0 form strips the leading
		// flag from the payload; the F7 form escapes arbitrary bytes:
		// sysex continuations or system messages.
		length, n, err := midi.DecodeVLQ(body[pos+1:])
		if err != nil {
			return nil, pos, err
		}
		start := pos + 1 + n
		if len(body)-start < int(length) {
			return nil, pos, errInvalidf("event length %d exceeds track", length)
		}
		payload := body[start : start+int(length)]

		inner := payload
		if lead == 0xF0 {
			inner = make([]byte, 0, len(payload)+1)
			inner = append(inner, 0xF0)
			inner = append(inner, payload...)
		}
		ctx.InSMFSysEx = true
		m, consumed, err := midi.DecodeWithContext(inner, ctx)
		ctx.InSMFSysEx = false
		if err != nil {
			return nil, start, err
		}
		if consumed != len(inner) {
			return nil, start, errInvalidf("sysex event has %d trailing bytes", len(inner)-consumed)
		}
		return m, start + int(length), nil

	default:
		// Meta, channel or system message via the normal codec;
		// running status applies.
		m, consumed, err := midi.DecodeWithContext(body[pos:], ctx)
		if err != nil {
			return nil, pos, err
		}
		if lead < 0x80 {
			// The source had no status byte; keep that so the event
			// re-encodes to the same bytes.
			switch v := m.(type) {
			case midi.ChannelVoice:
				m = midi.RunningChannelVoice{Channel: v.Channel, Msg: v.Msg}
			case midi.ChannelMode:
				m = midi.RunningChannelMode{Channel: v.Channel, Msg: v.Msg}
			}
		}
		return m, pos + consumed, nil
	}
}

// ============================================================
// Encoding
// ============================================================

func appendTrack(buf []byte, t Track) []byte {
	switch v := t.(type) {
	case AlienChunk:
		buf = append(buf, v.Type[:]...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(v.Data)))
		return append(buf, v.Data...)
	case MIDITrack:
		buf = append(buf, "MTrk"...)
		lenAt := len(buf)
		buf = append(buf, 0, 0, 0, 0)
		for _, ev := range v.Events {
			buf = appendEvent(buf, ev)
		}
		binary.BigEndian.PutUint32(buf[lenAt:], uint32(len(buf)-lenAt-4))
		return buf
	}
	return buf
}

// appendEvent writes the delta time and the message in its file
// framing: meta-events carry their own 0xFF prefix, sysex gets the
// length-prefixed F0 or F7 form, other system messages the F7 escape,
// and channel messages their plain wire bytes.
func appendEvent(buf []byte, ev TrackEvent) []byte {
	buf = midi.AppendVLQ(buf, ev.DeltaTime)

	switch ev.Event.(type) {
	case midi.Meta:
		return append(buf, midi.Encode(ev.Event)...)
	case midi.SystemExclusive:
		raw := midi.Encode(ev.Event)
		if len(raw) > 0 && raw[0] == 0xF0 {
			buf = append(buf, 0xF0)
			buf = midi.AppendVLQ(buf, uint32(len(raw)-1))
			return append(buf, raw[1:]...)
		}
		buf = append(buf, 0xF7)
		buf = midi.AppendVLQ(buf, uint32(len(raw)))
		return append(buf, raw...)
	case midi.SystemCommon, midi.SystemRealTime:
		raw := midi.Encode(ev.Event)
		buf = append(buf, 0xF7)
		buf = midi.AppendVLQ(buf, uint32(len(raw)))
		return append(buf, raw...)
	default:
		return append(buf, midi.Encode(ev.Event)...)
	}
}
