// Package smf reads and writes Standard MIDI Files (RP-001).
//
// A file is a header chunk followed by track chunks. Track events embed
// wire-format MIDI messages from the midi package, with three file-only
// framings: meta-events (0xFF), length-prefixed sysex (0xF0) and the
// 0xF7 escape used for split sysex continuations and for system
// messages that need an explicit length. Chunks whose type tag is not
// MTrk are preserved verbatim and survive a decode/encode round trip
// untouched.
//
//	file, err := smf.Decode(data)
//	if err != nil {
//		var fe *smf.FileError
//		if errors.As(err, &fe) && fe.Partial != nil {
//			// Diagnose with fe.Offset, fe.Parsing, fe.NextBytes.
//		}
//		return err
//	}
//	out := file.Encode()
package smf
