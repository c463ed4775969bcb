package midi

import "fmt"

// TimeCodeType is the SMPTE frame rate carried in the top two bits of the
// hour byte.
type TimeCodeType uint8

const (
	FPS24 TimeCodeType = iota
	FPS25
	DF30  // 30 fps drop-frame
	NDF30 // 30 fps non-drop
)

// String returns the frame rate name.
func (t TimeCodeType) String() string {
	switch t {
	case FPS24:
		return "24fps"
	case FPS25:
		return "25fps"
	case DF30:
		return "30fps drop"
	case NDF30:
		return "30fps non-drop"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// TimeCode is a full SMPTE position. On the wire it travels either as
// eight quarter-frame messages of one nibble each, or packed into four
// bytes inside the MTC full-frame sysex message and the SMPTE offset
// meta-event.
type TimeCode struct {
	Frames   uint8 // 0-29
	Seconds  uint8 // 0-59
	Minutes  uint8 // 0-59
	Hours    uint8 // 0-23
	CodeType TimeCodeType
}

func (t TimeCode) clamp() TimeCode {
	if t.Frames > 29 {
		t.Frames = 29
	}
	if t.Seconds > 59 {
		t.Seconds = 59
	}
	if t.Minutes > 59 {
		t.Minutes = 59
	}
	if t.Hours > 23 {
		t.Hours = 23
	}
	t.CodeType &= 0x03
	return t
}

// String formats the time code as hh:mm:ss:ff.
func (t TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d (%s)", t.Hours, t.Minutes,
		t.Seconds, t.Frames, t.CodeType)
}

// quarterFrameNibble returns the 4-bit payload for quarter-frame piece
// 0-7. Piece 7 carries the code type in its upper bits alongside bit 4 of
// the hour.
func (t TimeCode) quarterFrameNibble(piece uint8) uint8 {
	t = t.clamp()
	switch piece & 0x07 {
	case 0:
		return t.Frames & 0x0F
	case 1:
		return t.Frames >> 4
	case 2:
		return t.Seconds & 0x0F
	case 3:
		return t.Seconds >> 4
	case 4:
		return t.Minutes & 0x0F
	case 5:
		return t.Minutes >> 4
	case 6:
		return t.Hours & 0x0F
	default:
		return uint8(t.CodeType)<<1 | t.Hours>>4
	}
}

// setQuarterFrame integrates one received quarter-frame nibble into the
// rolling time code by piece index.
func (t *TimeCode) setQuarterFrame(piece, nibble uint8) {
	nibble &= 0x0F
	switch piece & 0x07 {
	case 0:
		t.Frames = t.Frames&0xF0 | nibble
	case 1:
		t.Frames = t.Frames&0x0F | nibble<<4
	case 2:
		t.Seconds = t.Seconds&0xF0 | nibble
	case 3:
		t.Seconds = t.Seconds&0x0F | nibble<<4
	case 4:
		t.Minutes = t.Minutes&0xF0 | nibble
	case 5:
		t.Minutes = t.Minutes&0x0F | nibble<<4
	case 6:
		t.Hours = t.Hours&0xF0 | nibble
	default:
		t.CodeType = TimeCodeType(nibble >> 1 & 0x03)
		t.Hours = t.Hours&0x0F | nibble&0x01<<4
	}
}

// appendFullFrame packs the time code into the four bytes of the MTC
// full-frame message: hour byte is (type<<5)|hours.
func (t TimeCode) appendFullFrame(buf []byte) []byte {
	t = t.clamp()
	return append(buf, uint8(t.CodeType)<<5|t.Hours, t.Minutes, t.Seconds, t.Frames)
}

func readFullFrameTimeCode(r *reader) (TimeCode, error) {
	hr, err := r.u7()
	if err != nil {
		return TimeCode{}, err
	}
	mn, err := r.u7()
	if err != nil {
		return TimeCode{}, err
	}
	sc, err := r.u7()
	if err != nil {
		return TimeCode{}, err
	}
	fr, err := r.u7()
	if err != nil {
		return TimeCode{}, err
	}
	return TimeCode{
		Frames:   fr,
		Seconds:  sc,
		Minutes:  mn,
		Hours:    hr & 0x1F,
		CodeType: TimeCodeType(hr >> 5 & 0x03),
	}, nil
}

// HighResTimeCode extends TimeCode with fractional frames (1/100th of a
// frame), used by the SMPTE offset meta-event and time-code cueing setup.
type HighResTimeCode struct {
	TimeCode
	FractionalFrames uint8 // 0-99
}

func (t HighResTimeCode) clamp() HighResTimeCode {
	t.TimeCode = t.TimeCode.clamp()
	if t.FractionalFrames > 99 {
		t.FractionalFrames = 99
	}
	return t
}

func (t HighResTimeCode) appendFullFrame(buf []byte) []byte {
	t = t.clamp()
	buf = t.TimeCode.appendFullFrame(buf)
	return append(buf, t.FractionalFrames)
}

func readHighResTimeCode(r *reader) (HighResTimeCode, error) {
	tc, err := readFullFrameTimeCode(r)
	if err != nil {
		return HighResTimeCode{}, err
	}
	ff, err := r.u7()
	if err != nil {
		return HighResTimeCode{}, err
	}
	return HighResTimeCode{TimeCode: tc, FractionalFrames: ff}, nil
}

// UserBits are the 32 user-assignable SMPTE bits plus the two format flag
// bits, transmitted as nine bytes in the MTC user-bits sysex message.
type UserBits struct {
	Data  [4]uint8
	Flags uint8 // Two flag bits.
}

func (u UserBits) appendTo(buf []byte) []byte {
	for _, b := range u.Data {
		buf = append(buf, b&0x0F, b>>4)
	}
	return append(buf, u.Flags&0x03)
}

func readUserBits(r *reader) (UserBits, error) {
	var u UserBits
	for i := range u.Data {
		lo, err := r.u7()
		if err != nil {
			return u, err
		}
		hi, err := r.u7()
		if err != nil {
			return u, err
		}
		u.Data[i] = lo&0x0F | hi<<4
	}
	flags, err := r.u7()
	if err != nil {
		return u, err
	}
	u.Flags = flags & 0x03
	return u, nil
}
