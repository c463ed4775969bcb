package midi

// System exclusive framing. Every sysex message travels between a 0xF0
// flag and a 0xF7 flag; the first payload bytes select the envelope:
// a manufacturer ID (commercial), 0x7D (non-commercial), or 0x7E/0x7F
// (universal non-real-time / real-time) followed by a device ID and a
// two-byte sub-ID dispatch.

const (
	sysExStart = 0xF0
	sysExEnd   = 0xF7
)

// SysExMsg is a system exclusive envelope.
type SysExMsg interface {
	sysExMsg()
}

// ManufacturerID identifies the vendor of a commercial sysex message.
// Short IDs are one non-zero byte; extended IDs serialize as 0x00
// followed by two 7-bit bytes, MSB first.
type ManufacturerID struct {
	ID       uint16
	Extended bool
}

func (id ManufacturerID) appendTo(buf []byte) []byte {
	if id.Extended {
		v := clampU14(id.ID)
		return append(buf, 0x00, byte(v>>7), byte(v&0x7F))
	}
	return append(buf, clampU7(uint8(id.ID)))
}

func readManufacturerID(r *reader) (ManufacturerID, error) {
	b, err := r.u7()
	if err != nil {
		return ManufacturerID{}, err
	}
	if b != 0 {
		return ManufacturerID{ID: uint16(b)}, nil
	}
	v, err := r.u14MSB()
	if err != nil {
		return ManufacturerID{}, err
	}
	return ManufacturerID{ID: v, Extended: true}, nil
}

// DeviceID addresses one device on the wire. AllCall targets every
// listener.
type DeviceID uint8

// AllCall is the broadcast device ID.
const AllCall DeviceID = 0x7F

// Commercial is a manufacturer-defined message; the payload is opaque.
type Commercial struct {
	ID   ManufacturerID
	Data []byte
}

// NonCommercial is the 0x7D research/educational envelope.
type NonCommercial struct {
	Data []byte
}

// UniversalRealTime is the 0x7F envelope.
type UniversalRealTime struct {
	Device DeviceID
	Msg    UniversalRealTimeMsg
}

// UniversalNonRealTime is the 0x7E envelope.
type UniversalNonRealTime struct {
	Device DeviceID
	Msg    UniversalNonRealTimeMsg
}

// SysExFragment is a raw slice of a sysex message split across SMF
// events: a leading part (starting 0xF0, no terminator), a bare
// continuation, or the final part. Terminated records whether the
// fragment closed with 0xF7. Fragments only appear when decoding with
// InSMFSysEx set; their bytes re-encode verbatim.
type SysExFragment struct {
	Data       []byte
	Terminated bool
}

func (Commercial) sysExMsg()           {}
func (NonCommercial) sysExMsg()        {}
func (UniversalRealTime) sysExMsg()    {}
func (UniversalNonRealTime) sysExMsg() {}
func (SysExFragment) sysExMsg()        {}

// ============================================================
// Encoding
// ============================================================

func appendSysEx(buf []byte, m SysExMsg) []byte {
	switch v := m.(type) {
	case Commercial:
		buf = append(buf, sysExStart)
		buf = v.ID.appendTo(buf)
		buf = append(buf, v.Data...)
		return append(buf, sysExEnd)
	case NonCommercial:
		buf = append(buf, sysExStart, 0x7D)
		buf = append(buf, v.Data...)
		return append(buf, sysExEnd)
	case UniversalRealTime:
		start := len(buf)
		buf = append(buf, sysExStart, 0x7F, clampU7(uint8(v.Device)))
		buf = appendUniversalRealTime(buf, start, v.Msg)
		return append(buf, sysExEnd)
	case UniversalNonRealTime:
		start := len(buf)
		buf = append(buf, sysExStart, 0x7E, clampU7(uint8(v.Device)))
		buf = appendUniversalNonRealTime(buf, start, v.Msg)
		return append(buf, sysExEnd)
	case SysExFragment:
		buf = append(buf, v.Data...)
		if v.Terminated {
			buf = append(buf, sysExEnd)
		}
		return buf
	}
	return buf
}

// appendPacketChecksum closes a packet-style body: the checksum is the
// XOR of every byte after the leading 0xF0, which sits at buf[start].
func appendPacketChecksum(buf []byte, start int) []byte {
	return append(buf, xorChecksum(buf[start+1:]))
}

// ============================================================
// Decoding
// ============================================================

func (r *reader) rest() []byte {
	b := r.data[r.pos:]
	r.pos = len(r.data)
	return b
}

func decodeSysEx(r *reader, ctx *ReceiverContext) (Msg, error) {
	// Sysex cancels running status.
	ctx.clearChannelStatus()

	start := r.pos
	m, err := decodeSysExEnvelope(r)
	if err != nil {
		// Inside an SMF event the terminator may live in a later
		// event; surface what we have as a fragment.
		if pe, ok := err.(*ParseError); ok && ctx.InSMFSysEx &&
			(pe.Kind == NoEndOfSystemExclusiveFlag || pe.Kind == UnexpectedEnd) {
			r.pos = len(r.data)
			return SystemExclusive{Msg: SysExFragment{Data: r.data[start:]}}, nil
		}
		return nil, err
	}
	return m, nil
}

func decodeSysExEnvelope(r *reader) (Msg, error) {
	r.skip(1) // 0xF0
	body, err := r.untilSysExEnd()
	if err != nil {
		return nil, err
	}

	br := &reader{data: body}
	lead, err := br.peek()
	if err != nil {
		return nil, errInvalid("empty sysex message")
	}

	switch lead {
	case 0x7D:
		br.skip(1)
		return SystemExclusive{Msg: NonCommercial{Data: br.rest()}}, nil

	case 0x7E:
		br.skip(1)
		device, err := br.u7()
		if err != nil {
			return nil, err
		}
		m, err := decodeUniversalNonRealTime(br)
		if err != nil {
			return nil, err
		}
		return SystemExclusive{Msg: UniversalNonRealTime{Device: DeviceID(device), Msg: m}}, nil

	case 0x7F:
		br.skip(1)
		device, err := br.u7()
		if err != nil {
			return nil, err
		}
		m, err := decodeUniversalRealTime(br)
		if err != nil {
			return nil, err
		}
		return SystemExclusive{Msg: UniversalRealTime{Device: DeviceID(device), Msg: m}}, nil

	default:
		id, err := readManufacturerID(br)
		if err != nil {
			return nil, err
		}
		return SystemExclusive{Msg: Commercial{ID: id, Data: br.rest()}}, nil
	}
}

// decodeSysExFragment reads a continuation of a split sysex message: all
// remaining bytes of the current SMF event payload.
func decodeSysExFragment(r *reader, _ *ReceiverContext) (Msg, error) {
	data := r.rest()
	frag := SysExFragment{Data: data}
	if n := len(data); n > 0 && data[n-1] == sysExEnd {
		frag.Data = data[:n-1]
		frag.Terminated = true
	}
	return SystemExclusive{Msg: frag}, nil
}
