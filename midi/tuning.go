package midi

import "math"

// Tuning is one three-byte frequency entry of the MIDI tuning standard:
// a semitone number and a 14-bit fraction of a semitone (about 0.0061
// cent per step). The fraction travels MSB-first, one of the documented
// byte-order exceptions.
type Tuning struct {
	Semitone uint8
	Fraction uint16
}

// NoChange is the sentinel entry (7F 7F 7F): the note keeps whatever
// tuning it already has.
var NoChange = Tuning{Semitone: 0x7F, Fraction: 0x3FFF}

func (t Tuning) appendTo(buf []byte) []byte {
	return appendU14MSB(append(buf, clampU7(t.Semitone)), t.Fraction)
}

func readTuning(r *reader) (Tuning, error) {
	semitone, err := r.u7()
	if err != nil {
		return Tuning{}, err
	}
	fraction, err := r.u14MSB()
	if err != nil {
		return Tuning{}, err
	}
	return Tuning{Semitone: semitone, Fraction: fraction}, nil
}

// TuningFromFreq converts a frequency in hertz to the nearest tuning
// entry. Frequencies below MIDI note 0 collapse to {0, 0}; frequencies
// above the top of the 14-bit fraction range collapse to {127, 0x3FFE}.
// 0x3FFF never occurs here, keeping the result distinct from NoChange.
func TuningFromFreq(hz float64) Tuning {
	if hz < 8.1758 {
		return Tuning{}
	}
	if hz > 13289.73 {
		return Tuning{Semitone: 127, Fraction: 0x3FFE}
	}
	note := 12*math.Log2(hz/440) + 69
	semitone := math.Floor(note)
	cents := (note - semitone) * 100
	fraction := uint16(cents / 100 * 0x3FFF)
	if fraction > 0x3FFE {
		fraction = 0x3FFE
	}
	return Tuning{Semitone: uint8(semitone), Fraction: fraction}
}

// NoteTuning pairs a note number with its tuning.
type NoteTuning struct {
	Note   uint8
	Tuning Tuning
}

func (nt NoteTuning) appendTo(buf []byte) []byte {
	return nt.Tuning.appendTo(append(buf, clampU7(nt.Note)))
}

func readNoteTuning(r *reader) (NoteTuning, error) {
	note, err := r.u7()
	if err != nil {
		return NoteTuning{}, err
	}
	t, err := readTuning(r)
	if err != nil {
		return NoteTuning{}, err
	}
	return NoteTuning{Note: note, Tuning: t}, nil
}
