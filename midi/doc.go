// Package midi implements a codec for the MIDI 1.0 wire protocol.
//
// The codec maps a closed universe of message values onto their bit-exact
// on-wire byte sequences and back:
//   - Channel Voice and Channel Mode messages, including running status,
//     high-resolution CC pairs and RPN/NRPN parameter selection
//   - System Common and System Real-Time messages
//   - System Exclusive messages, including the Universal Real-Time and
//     Universal Non-Real-Time families (time code, tuning, sample dump,
//     file dump, machine control, identity, ...)
//   - SMF meta-events, when decoding inside a Standard MIDI File
//
// # Messages
//
// Every message family is a sealed interface with one concrete type per
// variant. The top level is Msg:
//
//	msg := midi.ChannelVoice{Channel: midi.Ch1, Msg: midi.NoteOn{Note: 60, Velocity: 100}}
//	wire := midi.Encode(msg)
//
// # Decoding and the receiver context
//
// Decoding consumes the head of a byte slice and returns the message plus
// the number of bytes consumed. Running status, high-resolution velocity
// pairing and rolling time code all require state between calls, which is
// held in a caller-owned ReceiverContext:
//
//	ctx := midi.NewReceiverContext()
//	for len(wire) > 0 {
//		msg, n, err := midi.DecodeWithContext(wire, ctx)
//		...
//		wire = wire[n:]
//	}
//
// A context must not be shared between concurrent decoders; disjoint
// streams each get their own.
//
// # Clamping
//
// Encoders never fail. Out-of-range field values are clamped to their wire
// width (7-bit, 14-bit, ...). Decoders are strict: a set top bit in a data
// byte position is an error.
//
// The SMF container format (header and track chunks, delta times, alien
// chunk pass-through) lives in the sibling smf package.
package midi
