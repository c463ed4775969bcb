package midi

// SMF meta-events. On the wire a meta-event is FF <type> <vlq length>
// <data>; the data bytes are not 7-bit restricted. Meta messages only
// exist inside files, so the 0xFF prefix is decoded here only when the
// receiver context has ParsingSMF set.

// MetaMsg is an SMF meta-event payload.
type MetaMsg interface {
	metaMsg()
}

// SequenceNumber (type 0x00) numbers a sequence or pattern.
type SequenceNumber uint16

// The seven text meta-events (types 0x01-0x07). Their payload is the
// raw text; SMF prescribes no encoding.
type (
	Text           string // 0x01
	Copyright      string // 0x02
	TrackName      string // 0x03
	InstrumentName string // 0x04
	Lyric          string // 0x05
	Marker         string // 0x06
	CuePoint       string // 0x07
)

// ChannelPrefix (type 0x20) associates following events with a channel.
type ChannelPrefix uint8

// EndOfTrack (type 0x2F) closes a track; every MTrk chunk ends with one.
type EndOfTrack struct{}

// SetTempo (type 0x51) is the tempo in microseconds per quarter note.
type SetTempo struct {
	MicrosPerQuarter uint32 // 24-bit
}

// SmpteOffset (type 0x54) is the SMPTE time at which the track starts.
// The hour byte packs the frame rate in its top bits, high-order first
// like the MTC full-frame message.
type SmpteOffset struct {
	HighResTimeCode
}

// TimeSignature (type 0x58). Denominator is a negative power of two:
// 2 means a quarter note.
type TimeSignature struct {
	Numerator               uint8
	Denominator             uint8
	ClocksPerClick          uint8
	ThirtySecondsPerQuarter uint8
}

// KeySignature (type 0x59). Key counts sharps (positive) or flats
// (negative); Scale is 0 for major, 1 for minor.
type KeySignature struct {
	Key   int8
	Scale uint8
}

// SequencerSpecific (type 0x7F) is the meta analogue of sysex.
type SequencerSpecific []byte

// UnknownMeta preserves a meta-event of any type this package does not
// model; the bytes re-encode verbatim.
type UnknownMeta struct {
	MetaType uint8
	Data     []byte
}

func (SequenceNumber) metaMsg()    {}
func (Text) metaMsg()              {}
func (Copyright) metaMsg()         {}
func (TrackName) metaMsg()         {}
func (InstrumentName) metaMsg()    {}
func (Lyric) metaMsg()             {}
func (Marker) metaMsg()            {}
func (CuePoint) metaMsg()          {}
func (ChannelPrefix) metaMsg()     {}
func (EndOfTrack) metaMsg()        {}
func (SetTempo) metaMsg()          {}
func (SmpteOffset) metaMsg()       {}
func (TimeSignature) metaMsg()     {}
func (KeySignature) metaMsg()      {}
func (SequencerSpecific) metaMsg() {}
func (UnknownMeta) metaMsg()       {}

// ============================================================
// Encoding
// ============================================================

func appendMeta(buf []byte, m MetaMsg) []byte {
	buf = append(buf, 0xFF)
	switch v := m.(type) {
	case SequenceNumber:
		return append(buf, 0x00, 2, byte(v>>8), byte(v))
	case Text:
		return appendMetaBytes(buf, 0x01, []byte(v))
	case Copyright:
		return appendMetaBytes(buf, 0x02, []byte(v))
	case TrackName:
		return appendMetaBytes(buf, 0x03, []byte(v))
	case InstrumentName:
		return appendMetaBytes(buf, 0x04, []byte(v))
	case Lyric:
		return appendMetaBytes(buf, 0x05, []byte(v))
	case Marker:
		return appendMetaBytes(buf, 0x06, []byte(v))
	case CuePoint:
		return appendMetaBytes(buf, 0x07, []byte(v))
	case ChannelPrefix:
		return append(buf, 0x20, 1, byte(v)&0x0F)
	case EndOfTrack:
		return append(buf, 0x2F, 0)
	case SetTempo:
		t := v.MicrosPerQuarter
		if t > 0xFFFFFF {
			t = 0xFFFFFF
		}
		return append(buf, 0x51, 3, byte(t>>16), byte(t>>8), byte(t))
	case SmpteOffset:
		buf = append(buf, 0x54, 5)
		return v.HighResTimeCode.appendFullFrame(buf)
	case TimeSignature:
		return append(buf, 0x58, 4, v.Numerator, v.Denominator,
			v.ClocksPerClick, v.ThirtySecondsPerQuarter)
	case KeySignature:
		return append(buf, 0x59, 2, byte(v.Key), v.Scale&0x01)
	case SequencerSpecific:
		return appendMetaBytes(buf, 0x7F, v)
	case UnknownMeta:
		return appendMetaBytes(buf, clampU7(v.MetaType), v.Data)
	}
	return buf
}

func appendMetaBytes(buf []byte, metaType uint8, data []byte) []byte {
	buf = append(buf, metaType)
	buf = AppendVLQ(buf, uint32(len(data)))
	return append(buf, data...)
}

// ============================================================
// Decoding
// ============================================================

// decodeMeta parses the bytes after the 0xFF prefix. An event whose type
// is known but whose length disagrees with the fixed layout surfaces as
// UnknownMeta rather than an error, so odd files still round-trip.
func decodeMeta(r *reader) (Msg, error) {
	metaType, err := r.u7()
	if err != nil {
		return nil, err
	}
	length, err := r.vlq()
	if err != nil {
		return nil, err
	}
	data, err := r.take(int(length))
	if err != nil {
		return nil, err
	}

	switch metaType {
	case 0x00:
		if len(data) == 2 {
			return Meta{Msg: SequenceNumber(uint16(data[0])<<8 | uint16(data[1]))}, nil
		}
	case 0x01:
		return Meta{Msg: Text(data)}, nil
	case 0x02:
		return Meta{Msg: Copyright(data)}, nil
	case 0x03:
		return Meta{Msg: TrackName(data)}, nil
	case 0x04:
		return Meta{Msg: InstrumentName(data)}, nil
	case 0x05:
		return Meta{Msg: Lyric(data)}, nil
	case 0x06:
		return Meta{Msg: Marker(data)}, nil
	case 0x07:
		return Meta{Msg: CuePoint(data)}, nil
	case 0x20:
		if len(data) == 1 {
			return Meta{Msg: ChannelPrefix(data[0])}, nil
		}
	case 0x2F:
		if len(data) == 0 {
			return Meta{Msg: EndOfTrack{}}, nil
		}
	case 0x51:
		if len(data) == 3 {
			t := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
			return Meta{Msg: SetTempo{MicrosPerQuarter: t}}, nil
		}
	case 0x54:
		if len(data) == 5 {
			return Meta{Msg: SmpteOffset{HighResTimeCode{
				TimeCode: TimeCode{
					Frames:   data[3],
					Seconds:  data[2],
					Minutes:  data[1],
					Hours:    data[0] & 0x1F,
					CodeType: TimeCodeType(data[0] >> 5 & 0x03),
				},
				FractionalFrames: data[4],
			}}}, nil
		}
	case 0x58:
		if len(data) == 4 {
			return Meta{Msg: TimeSignature{
				Numerator:               data[0],
				Denominator:             data[1],
				ClocksPerClick:          data[2],
				ThirtySecondsPerQuarter: data[3],
			}}, nil
		}
	case 0x59:
		if len(data) == 2 && data[1] <= 1 {
			return Meta{Msg: KeySignature{Key: int8(data[0]), Scale: data[1]}}, nil
		}
	case 0x7F:
		return Meta{Msg: SequencerSpecific(data)}, nil
	}
	return Meta{Msg: UnknownMeta{MetaType: metaType, Data: data}}, nil
}
