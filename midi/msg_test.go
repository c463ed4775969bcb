package midi

import (
	"bytes"
	"testing"
)

func TestEncodeAll_MatchesConcatenation(t *testing.T) {
	msgs := []Msg{
		ChannelVoice{Channel: Ch1, Msg: NoteOn{Note: 60, Velocity: 100}},
		RunningChannelVoice{Channel: Ch1, Msg: NoteOff{Note: 60}},
		SystemRealTime{Msg: TimingClock},
		SystemCommon{Msg: SongPosition{Position: 8}},
		SystemExclusive{Msg: NonCommercial{Data: []byte{0x01}}},
	}

	var want []byte
	for _, m := range msgs {
		want = append(want, Encode(m)...)
	}
	if got := EncodeAll(msgs); !bytes.Equal(got, want) {
		t.Fatalf("EncodeAll = % X, want % X", got, want)
	}
}

func TestDecode_LoneSysExEndFlag(t *testing.T) {
	// 0xF7 outside a file is never a message of its own.
	_, _, err := Decode([]byte{0xF7})
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != Invalid {
		t.Fatalf("got %v, want Invalid", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	_, _, err := Decode(nil)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedEnd {
		t.Fatalf("got %v, want UnexpectedEnd", err)
	}
}

func TestMsg_Strings(t *testing.T) {
	// Spot checks; String must never panic for any variant.
	for _, m := range []Msg{
		ChannelVoice{Channel: Ch2, Msg: NoteOn{Note: 60, Velocity: 100}},
		RunningChannelMode{Channel: Ch1, Msg: AllNotesOff{}},
		SystemCommon{Msg: TuneRequest{}},
		SystemRealTime{Msg: Stop},
		SystemExclusive{Msg: Commercial{ID: ManufacturerID{ID: 0x43}}},
		Meta{Msg: TrackName("x")},
	} {
		if m.String() == "" {
			t.Fatalf("%T: empty String()", m)
		}
	}
}
