package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeAll drains a byte stream with one context, failing the test on
// any error.
func decodeAll(t *testing.T, ctx *ReceiverContext, data []byte) []Msg {
	t.Helper()
	var msgs []Msg
	for pos := 0; pos < len(data) || len(ctx.pendingRealTime) > 0; {
		m, n, err := DecodeWithContext(data[pos:], ctx)
		require.NoError(t, err, "offset %d", pos)
		msgs = append(msgs, m)
		pos += n
	}
	return msgs
}

func TestChannelVoice_NoteOnOff(t *testing.T) {
	// 90 3C 64 80 3C 00
	msgs := decodeAll(t, NewReceiverContext(), []byte{0x90, 0x3C, 0x64, 0x80, 0x3C, 0x00})
	require.Len(t, msgs, 2)
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 60, Velocity: 100}}, msgs[0])
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: NoteOff{Note: 60, Velocity: 0}}, msgs[1])
}

func TestChannelVoice_RunningStatus(t *testing.T) {
	// 90 3C 64 3D 64: the second note rides the first status byte.
	msgs := decodeAll(t, NewReceiverContext(), []byte{0x90, 0x3C, 0x64, 0x3D, 0x64})
	require.Len(t, msgs, 2)
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 60, Velocity: 100}}, msgs[0])
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 61, Velocity: 100}}, msgs[1])
}

func TestChannelVoice_ContextlessRunningStatus(t *testing.T) {
	_, _, err := Decode([]byte{0x3C, 0x64})
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ContextlessRunningStatus, pe.Kind)
}

func TestChannelVoice_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Msg
	}{
		{"note_off", ChannelVoice{Channel: Ch3, Msg: NoteOff{Note: 12, Velocity: 34}}},
		{"poly_pressure", ChannelVoice{Channel: Ch16, Msg: PolyPressure{Note: 60, Pressure: 99}}},
		{"channel_pressure", ChannelVoice{Channel: Ch2, Msg: ChannelPressure{Pressure: 127}}},
		{"program_change", ChannelVoice{Channel: Ch10, Msg: ProgramChange{Program: 42}}},
		{"pitch_bend_center", ChannelVoice{Channel: Ch1, Msg: PitchBend{Bend: 8192}}},
		{"pitch_bend_min", ChannelVoice{Channel: Ch1, Msg: PitchBend{Bend: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := Encode(tt.msg)
			got, n, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, got)
			assert.Equal(t, len(enc), n)
		})
	}
}

func TestChannelVoice_RunningVariantDecodesToNonRunning(t *testing.T) {
	ctx := NewReceiverContext()

	first := Encode(ChannelVoice{Channel: Ch5, Msg: NoteOn{Note: 50, Velocity: 10}})
	running := Encode(RunningChannelVoice{Channel: Ch5, Msg: NoteOn{Note: 51, Velocity: 11}})
	assert.Equal(t, len(first)-1, len(running), "running form drops the status byte")

	msgs := decodeAll(t, ctx, append(first, running...))
	require.Len(t, msgs, 2)
	// The running form comes back as its non-running equivalent.
	assert.Equal(t, ChannelVoice{Channel: Ch5, Msg: NoteOn{Note: 51, Velocity: 11}}, msgs[1])
}

func TestChannelVoice_EncodeClamps(t *testing.T) {
	enc := Encode(ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 200, Velocity: 255}})
	assert.Equal(t, []byte{0x90, 0x7F, 0x7F}, enc)

	enc = Encode(ChannelVoice{Channel: Ch1, Msg: PitchBend{Bend: 0xFFFF}})
	assert.Equal(t, []byte{0xE0, 0x7F, 0x7F}, enc)
}

// ============================================================
// High-resolution velocity
// ============================================================

func TestHighResNote_RoundTrip(t *testing.T) {
	ctx := NewReceiverContext()
	ctx.ComplexCC = true

	msg := ChannelVoice{Channel: Ch2, Msg: HighResNoteOn{Note: 60, Velocity: 12345}}
	enc := Encode(msg)
	// Note-On carrying the MSB, then CC 0x58 with the LSB.
	assert.Equal(t, []byte{0x91, 60, byte(12345 >> 7), 0xB1, 0x58, byte(12345 & 0x7F)}, enc)

	got, n, err := DecodeWithContext(enc, ctx)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, len(enc), n)
}

func TestHighResNote_WithoutComplexCCStaysSeparate(t *testing.T) {
	enc := Encode(ChannelVoice{Channel: Ch1, Msg: HighResNoteOff{Note: 10, Velocity: 300}})

	ctx := NewReceiverContext()
	msgs := decodeAll(t, ctx, enc)
	require.Len(t, msgs, 2)
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: NoteOff{Note: 10, Velocity: uint8(300 >> 7)}}, msgs[0])
	// The trailing CC surfaces raw with assembly off.
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: ControlChange{
		Control: Undefined{Control: 0x58, Value: 300 & 0x7F}}}, msgs[1])
}

func TestHighResNote_PendingLSBConsumedByNextNote(t *testing.T) {
	ctx := NewReceiverContext()
	ctx.ComplexCC = true

	// CC 0x58 first, then the note: the LSB waits in the context.
	data := []byte{0xB3, 0x58, 0x21, 0x93, 0x40, 0x30}
	msgs := decodeAll(t, ctx, data)
	require.Len(t, msgs, 2)
	assert.Equal(t, ChannelVoice{Channel: Ch4, Msg: ControlChange{Control: HighResVelocity{Value: 0x21}}}, msgs[0])
	assert.Equal(t, ChannelVoice{Channel: Ch4, Msg: HighResNoteOn{Note: 0x40, Velocity: 0x30<<7 | 0x21}}, msgs[1])
}

func TestHighResNote_PendingLSBDiscardedByOtherMessage(t *testing.T) {
	ctx := NewReceiverContext()
	ctx.ComplexCC = true

	// A program change on the same channel discards the pending LSB.
	data := []byte{0xB3, 0x58, 0x21, 0xC3, 0x01, 0x93, 0x40, 0x30}
	msgs := decodeAll(t, ctx, data)
	require.Len(t, msgs, 3)
	assert.Equal(t, ChannelVoice{Channel: Ch4, Msg: NoteOn{Note: 0x40, Velocity: 0x30}}, msgs[2])
}
