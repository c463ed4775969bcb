package midi

// Byte-level primitives shared by every message family: clamping encoders
// for the 7-bit-derived numeric widths, checking decoders, variable-length
// quantities and the XOR checksum used by packet-style sysex messages.
//
// 14-bit and wider quantities travel LSB-first as septet groups. The three
// documented exceptions (tuning fractions, the SMPTE offset meta-event and
// some sysex event numbers) are MSB-first and use the *MSB helpers at their
// point of use; byte order is a property of the surrounding message, not of
// the width.

// maxVLQ is the largest value a four-byte variable-length quantity holds.
const maxVLQ = 0x0FFFFFFF

func clampU7(v uint8) uint8 {
	if v > 0x7F {
		return 0x7F
	}
	return v
}

func clampU14(v uint16) uint16 {
	if v > 0x3FFF {
		return 0x3FFF
	}
	return v
}

// clampI14 biases a signed 14-bit value by 8192.
func clampI14(v int16) uint16 {
	if v < -8192 {
		v = -8192
	}
	if v > 8191 {
		v = 8191
	}
	return uint16(v + 8192)
}

// clampI7 biases a signed 7-bit value by 64.
func clampI7(v int8) uint8 {
	if v < -64 {
		v = -64
	}
	if v > 63 {
		v = 63
	}
	return uint8(int16(v) + 64)
}

func clampU21(v uint32) uint32 {
	if v > 0x1FFFFF {
		return 0x1FFFFF
	}
	return v
}

func clampU28(v uint32) uint32 {
	if v > 0x0FFFFFFF {
		return 0x0FFFFFFF
	}
	return v
}

func clampU35(v uint64) uint64 {
	if v > 0x7FFFFFFFF {
		return 0x7FFFFFFFF
	}
	return v
}

func appendU14(buf []byte, v uint16) []byte {
	v = clampU14(v)
	return append(buf, byte(v&0x7F), byte(v>>7))
}

func appendU14MSB(buf []byte, v uint16) []byte {
	v = clampU14(v)
	return append(buf, byte(v>>7), byte(v&0x7F))
}

func appendU21(buf []byte, v uint32) []byte {
	v = clampU21(v)
	return append(buf, byte(v&0x7F), byte(v>>7&0x7F), byte(v>>14&0x7F))
}

func appendU28(buf []byte, v uint32) []byte {
	v = clampU28(v)
	return append(buf, byte(v&0x7F), byte(v>>7&0x7F), byte(v>>14&0x7F), byte(v>>21&0x7F))
}

func appendU35(buf []byte, v uint64) []byte {
	v = clampU35(v)
	return append(buf,
		byte(v&0x7F), byte(v>>7&0x7F), byte(v>>14&0x7F),
		byte(v>>21&0x7F), byte(v>>28&0x7F))
}

// AppendVLQ appends the shortest big-endian base-128 form of v. Values
// beyond the four-byte maximum are clamped.
func AppendVLQ(buf []byte, v uint32) []byte {
	if v > maxVLQ {
		v = maxVLQ
	}
	switch {
	case v < 1<<7:
		return append(buf, byte(v))
	case v < 1<<14:
		return append(buf, byte(v>>7)|0x80, byte(v&0x7F))
	case v < 1<<21:
		return append(buf, byte(v>>14)|0x80, byte(v>>7&0x7F)|0x80, byte(v&0x7F))
	default:
		return append(buf, byte(v>>21)|0x80, byte(v>>14&0x7F)|0x80,
			byte(v>>7&0x7F)|0x80, byte(v&0x7F))
	}
}

// DecodeVLQ reads a variable-length quantity from the head of data and
// returns the value and the number of bytes consumed.
func DecodeVLQ(data []byte) (uint32, int, error) {
	var v uint32
	for i, b := range data {
		if i == 4 {
			return 0, 0, &ParseError{Kind: VLQOverflow}
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, errEnd()
}

// xorChecksum folds the given bytes with XOR. Packet-style sysex messages
// carry this over every byte between the leading 0xF0 and the checksum
// itself.
func xorChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum & 0x7F
}

// ============================================================
// Reader
// ============================================================

// reader tracks a decode position inside a byte slice. All field readers
// reject bytes with the top bit set; status bytes are taken with next().
//
// When ctx is set, a system real-time byte found where a data byte is
// expected is queued on the context instead of failing the read: on the
// wire those bytes may interrupt any message. Bounded sub-readers (sysex
// bodies, meta payloads) leave ctx nil and stay strict.
type reader struct {
	data []byte
	pos  int
	ctx  *ReceiverContext
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) peek() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errEnd()
	}
	return r.data[r.pos], nil
}

func (r *reader) peekAt(offset int) (byte, bool) {
	if r.pos+offset >= len(r.data) {
		return 0, false
	}
	return r.data[r.pos+offset], true
}

func (r *reader) next() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errEnd()
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) skip(n int) {
	r.pos += n
}

func (r *reader) u7() (uint8, error) {
	for {
		b, err := r.next()
		if err != nil {
			return 0, err
		}
		if b&0x80 == 0 {
			return b, nil
		}
		if r.ctx != nil && !r.ctx.ParsingSMF && b >= 0xF8 && b != 0xF9 && b != 0xFD {
			r.ctx.queueRealTime(b)
			continue
		}
		return 0, errOverflow(b)
	}
}

func (r *reader) u14() (uint16, error) {
	lsb, err := r.u7()
	if err != nil {
		return 0, err
	}
	msb, err := r.u7()
	if err != nil {
		return 0, err
	}
	return uint16(msb)<<7 | uint16(lsb), nil
}

func (r *reader) u14MSB() (uint16, error) {
	msb, err := r.u7()
	if err != nil {
		return 0, err
	}
	lsb, err := r.u7()
	if err != nil {
		return 0, err
	}
	return uint16(msb)<<7 | uint16(lsb), nil
}

func (r *reader) i14() (int16, error) {
	v, err := r.u14()
	if err != nil {
		return 0, err
	}
	return int16(v) - 8192, nil
}

func (r *reader) i7() (int8, error) {
	v, err := r.u7()
	if err != nil {
		return 0, err
	}
	return int8(int16(v) - 64), nil
}

func (r *reader) u21() (uint32, error) {
	var v uint32
	for i := 0; i < 3; i++ {
		b, err := r.u7()
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (7 * i)
	}
	return v, nil
}

func (r *reader) u28() (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		b, err := r.u7()
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (7 * i)
	}
	return v, nil
}

func (r *reader) u35() (uint64, error) {
	var v uint64
	for i := 0; i < 5; i++ {
		b, err := r.u7()
		if err != nil {
			return 0, err
		}
		v |= uint64(b) << (7 * i)
	}
	return v, nil
}

func (r *reader) vlq() (uint32, error) {
	v, n, err := DecodeVLQ(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

func (r *reader) take(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, errEnd()
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// take7 reads n data bytes, rejecting any with the top bit set.
func (r *reader) take7(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	for _, v := range b {
		if v&0x80 != 0 {
			return nil, errOverflow(v)
		}
	}
	return b, nil
}

// untilSysExEnd consumes bytes up to and including the 0xF7 terminator and
// returns the payload without it.
func (r *reader) untilSysExEnd() ([]byte, error) {
	start := r.pos
	for r.pos < len(r.data) {
		if r.data[r.pos] == sysExEnd {
			body := r.data[start:r.pos]
			r.pos++
			return body, nil
		}
		r.pos++
	}
	r.pos = start
	return nil, &ParseError{Kind: NoEndOfSystemExclusiveFlag}
}

// expectSysExEnd consumes exactly one 0xF7.
func (r *reader) expectSysExEnd() error {
	b, err := r.next()
	if err != nil {
		return &ParseError{Kind: NoEndOfSystemExclusiveFlag}
	}
	if b != sysExEnd {
		return &ParseError{Kind: NoEndOfSystemExclusiveFlag}
	}
	return nil
}
