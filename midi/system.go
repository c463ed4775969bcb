package midi

import "fmt"

// ============================================================
// System common
// ============================================================

// SystemCommonMsg is a system common payload.
type SystemCommonMsg interface {
	systemCommonMsg()
}

// TimeCodeQuarterFrame carries one eighth of a full SMPTE word. Piece 0-7
// selects which nibble of the carried TimeCode is transmitted; on decode
// the nibble is also integrated into the receiver context's rolling
// TimeCode.
type TimeCodeQuarterFrame struct {
	Piece    uint8 // 0-7
	TimeCode TimeCode
}

// SongPosition is a 14-bit position in MIDI beats (six clocks each).
type SongPosition struct {
	Position uint16
}

// SongSelect chooses a song or sequence.
type SongSelect struct {
	Song uint8
}

// TuneRequest asks analog synthesizers to tune their oscillators.
type TuneRequest struct{}

func (TimeCodeQuarterFrame) systemCommonMsg() {}
func (SongPosition) systemCommonMsg()         {}
func (SongSelect) systemCommonMsg()           {}
func (TuneRequest) systemCommonMsg()          {}

func appendSystemCommon(buf []byte, m SystemCommonMsg) []byte {
	switch v := m.(type) {
	case TimeCodeQuarterFrame:
		piece := v.Piece & 0x07
		return append(buf, 0xF1, piece<<4|v.TimeCode.quarterFrameNibble(piece))
	case SongPosition:
		return appendU14(append(buf, 0xF2), v.Position)
	case SongSelect:
		return append(buf, 0xF3, clampU7(v.Song))
	case TuneRequest:
		return append(buf, 0xF6)
	}
	return buf
}

func decodeSystemCommon(r *reader, ctx *ReceiverContext, status byte) (Msg, error) {
	// System common cancels running status.
	ctx.clearChannelStatus()

	switch status {
	case 0xF1:
		b, err := r.u7()
		if err != nil {
			return nil, err
		}
		piece := b >> 4 & 0x07
		ctx.TimeCode.setQuarterFrame(piece, b&0x0F)
		return SystemCommon{Msg: TimeCodeQuarterFrame{Piece: piece, TimeCode: ctx.TimeCode}}, nil
	case 0xF2:
		pos, err := r.u14()
		if err != nil {
			return nil, err
		}
		return SystemCommon{Msg: SongPosition{Position: pos}}, nil
	case 0xF3:
		song, err := r.u7()
		if err != nil {
			return nil, err
		}
		return SystemCommon{Msg: SongSelect{Song: song}}, nil
	case 0xF6:
		return SystemCommon{Msg: TuneRequest{}}, nil
	}
	return nil, errInvalid("bad system common status 0x%02X", status)
}

// ============================================================
// System real-time
// ============================================================

// SystemRealTimeMsg is one of the six single-byte real-time messages.
type SystemRealTimeMsg uint8

const (
	TimingClock SystemRealTimeMsg = iota
	Start
	Continue
	Stop
	ActiveSensing
	SystemReset
)

// String returns the message name.
func (m SystemRealTimeMsg) String() string {
	switch m {
	case TimingClock:
		return "TimingClock"
	case Start:
		return "Start"
	case Continue:
		return "Continue"
	case Stop:
		return "Stop"
	case ActiveSensing:
		return "ActiveSensing"
	case SystemReset:
		return "SystemReset"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

func realTimeByte(m SystemRealTimeMsg) byte {
	switch m {
	case TimingClock:
		return 0xF8
	case Start:
		return 0xFA
	case Continue:
		return 0xFB
	case Stop:
		return 0xFC
	case ActiveSensing:
		return 0xFE
	default:
		return 0xFF
	}
}

// decodeRealTime maps a status byte in 0xF8-0xFF. The reserved bytes 0xF9
// and 0xFD are rejected. Real-time messages do not cancel running status,
// which is how they interleave with a running channel sequence.
func decodeRealTime(status byte) (Msg, error) {
	switch status {
	case 0xF8:
		return SystemRealTime{Msg: TimingClock}, nil
	case 0xFA:
		return SystemRealTime{Msg: Start}, nil
	case 0xFB:
		return SystemRealTime{Msg: Continue}, nil
	case 0xFC:
		return SystemRealTime{Msg: Stop}, nil
	case 0xFE:
		return SystemRealTime{Msg: ActiveSensing}, nil
	case 0xFF:
		return SystemRealTime{Msg: SystemReset}, nil
	}
	return nil, &ParseError{Kind: UndefinedSystemRealTimeMessage, Byte: status}
}
