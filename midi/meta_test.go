package midi

import (
	"bytes"
	"reflect"
	"testing"
)

func smfCtx() *ReceiverContext {
	ctx := NewReceiverContext()
	ctx.ParsingSMF = true
	return ctx
}

func TestMeta_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  MetaMsg
	}{
		{"sequence_number", SequenceNumber(0x1234)},
		{"text", Text("hello")},
		{"copyright", Copyright("(c) 2026")},
		{"track_name", TrackName("lead")},
		{"instrument_name", InstrumentName("piano")},
		{"lyric", Lyric("la")},
		{"marker", Marker("verse 2")},
		{"cue_point", CuePoint("curtain")},
		{"empty_text", Text("")},
		{"channel_prefix", ChannelPrefix(9)},
		{"end_of_track", EndOfTrack{}},
		{"set_tempo", SetTempo{MicrosPerQuarter: 500000}},
		{"smpte_offset", SmpteOffset{HighResTimeCode{
			TimeCode:         TimeCode{Frames: 10, Seconds: 20, Minutes: 30, Hours: 12, CodeType: DF30},
			FractionalFrames: 42}}},
		{"time_signature", TimeSignature{
			Numerator: 6, Denominator: 3, ClocksPerClick: 36, ThirtySecondsPerQuarter: 8}},
		{"key_signature_flats", KeySignature{Key: -3, Scale: 1}},
		{"sequencer_specific", SequencerSpecific{0x00, 0x00, 0x41, 0xF0}},
		{"unknown", UnknownMeta{MetaType: 0x60, Data: []byte{0xDE, 0xAD}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := Encode(Meta{Msg: tt.msg})
			if enc[0] != 0xFF {
				t.Fatalf("meta prefix %02X", enc[0])
			}
			got, n, err := DecodeWithContext(enc, smfCtx())
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, Meta{Msg: tt.msg}) {
				t.Fatalf("got %v, want %v", got, tt.msg)
			}
			if n != len(enc) {
				t.Fatalf("consumed %d of %d", n, len(enc))
			}
		})
	}
}

func TestMeta_SmpteOffsetHourByte(t *testing.T) {
	// The hour byte packs the frame rate: (type << 5) | hours.
	enc := Encode(Meta{Msg: SmpteOffset{HighResTimeCode{
		TimeCode: TimeCode{Hours: 12, CodeType: DF30}}}})
	want := []byte{0xFF, 0x54, 5, 2<<5 | 12, 0, 0, 0, 0}
	if !bytes.Equal(enc, want) {
		t.Fatalf("got % X, want % X", enc, want)
	}
}

func TestMeta_SetTempoClamps(t *testing.T) {
	enc := Encode(Meta{Msg: SetTempo{MicrosPerQuarter: 0xFFFFFFFF}})
	if !bytes.Equal(enc, []byte{0xFF, 0x51, 3, 0xFF, 0xFF, 0xFF}) {
		t.Fatalf("got % X", enc)
	}
}

func TestMeta_WrongLengthFallsBackToUnknown(t *testing.T) {
	// A tempo event with only two data bytes is preserved, not rejected.
	data := []byte{0xFF, 0x51, 2, 0x07, 0xA1}
	m, n, err := DecodeWithContext(data, smfCtx())
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d", n)
	}
	want := Meta{Msg: UnknownMeta{MetaType: 0x51, Data: []byte{0x07, 0xA1}}}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("got %v", m)
	}
	if !bytes.Equal(Encode(want), data) {
		t.Fatalf("unknown meta does not re-encode verbatim: % X", Encode(want))
	}
}

func TestMeta_KeySignatureBadScaleStaysVerbatim(t *testing.T) {
	// Scale bytes other than 0/1 are preserved as UnknownMeta so the
	// file re-encodes byte for byte.
	data := []byte{0xFF, 0x59, 2, 0x03, 0x05}
	m, n, err := DecodeWithContext(data, smfCtx())
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d", n)
	}
	want := Meta{Msg: UnknownMeta{MetaType: 0x59, Data: []byte{0x03, 0x05}}}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("got %v", m)
	}
	if !bytes.Equal(Encode(want), data) {
		t.Fatalf("re-encodes to % X", Encode(want))
	}
}

func TestMeta_OnlyInsideFiles(t *testing.T) {
	// On the wire 0xFF is System Reset, never a meta-event.
	m, n, err := Decode([]byte{0xFF, 0x2F, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if m != (SystemRealTime{Msg: SystemReset}) || n != 1 {
		t.Fatalf("got (%v, %d), want system reset", m, n)
	}
}
