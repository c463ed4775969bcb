package midi

import (
	"bytes"
	"math"
	"testing"
)

func TestTuning_Wire(t *testing.T) {
	// Three bytes, fraction MSB-first.
	enc := Tuning{Semitone: 69, Fraction: 0x1234}.appendTo(nil)
	if !bytes.Equal(enc, []byte{69, 0x24, 0x34}) {
		t.Fatalf("got % X", enc)
	}

	r := &reader{data: enc}
	got, err := readTuning(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != (Tuning{Semitone: 69, Fraction: 0x1234}) {
		t.Fatalf("got %v", got)
	}

	sentinel := NoChange.appendTo(nil)
	if !bytes.Equal(sentinel, []byte{0x7F, 0x7F, 0x7F}) {
		t.Fatalf("NoChange encodes to % X", sentinel)
	}
	r = &reader{data: sentinel}
	got, err = readTuning(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != NoChange {
		t.Fatalf("sentinel decodes to %v", got)
	}
}

func TestTuningFromFreq(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
		want Tuning
	}{
		{"concert_a", 440, Tuning{Semitone: 69, Fraction: 0}},
		{"octave_up", 880, Tuning{Semitone: 81, Fraction: 0}},
		{"quarter_tone", 440 * math.Pow(2, 0.5/12), Tuning{Semitone: 69, Fraction: 8191}},
		{"below_range", 5, Tuning{}},
		{"above_range", 20000, Tuning{Semitone: 127, Fraction: 0x3FFE}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TuningFromFreq(tt.hz); got != tt.want {
				t.Fatalf("TuningFromFreq(%g) = %v, want %v", tt.hz, got, tt.want)
			}
		})
	}
}

func TestTuningFromFreq_NeverReturnsNoChange(t *testing.T) {
	// 0x3FFF is reserved for the no-change sentinel.
	for _, hz := range []float64{13289.72, 13289.73, 13289.74, 13500} {
		if got := TuningFromFreq(hz); got.Fraction > 0x3FFE {
			t.Fatalf("TuningFromFreq(%g) = %v collides with NoChange", hz, got)
		}
	}
}
