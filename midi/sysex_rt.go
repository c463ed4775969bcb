package midi

// Universal real-time sysex (envelope 0xF0 0x7F). Each variant maps to a
// sub-ID pair; the dispatch tables below mirror the published sub-ID
// assignments.

// UniversalRealTimeMsg is a universal real-time payload.
type UniversalRealTimeMsg interface {
	universalRealTimeMsg()
}

// FullTimeCode (sub-ID 01 01) transmits a complete SMPTE word when the
// transport locates, instead of streaming quarter-frames.
type FullTimeCode struct {
	TimeCode TimeCode
}

// TimeCodeUserBits (sub-ID 01 02) carries the 32 SMPTE user bits.
type TimeCodeUserBits struct {
	UserBits UserBits
}

// ShowControl (sub-ID 02) is MIDI Show Control; the command format,
// command and data travel opaquely.
type ShowControl struct {
	Data []byte
}

// BarMarker (sub-ID 03 01) is a signed bar number; 0 marks the downbeat
// of the first bar.
type BarMarker struct {
	Bar int16
}

// RTTimeSignature (sub-ID 03 02, or 03 42 when Delayed) announces a
// meter change, immediately or at the next downbeat. Extra holds any
// additional numerator/denominator pairs for compound meters.
type RTTimeSignature struct {
	Delayed                 bool
	Numerator               uint8
	Denominator             uint8 // negative power of two
	ClocksPerClick          uint8
	ThirtySecondsPerQuarter uint8
	Extra                   []uint8
}

// MasterVolume (sub-ID 04 01) is the 14-bit device-wide volume.
type MasterVolume struct {
	Volume uint16
}

// MasterBalance (sub-ID 04 02); 8192 is center.
type MasterBalance struct {
	Balance uint16
}

// MasterFineTuning (sub-ID 04 03) offsets the whole device in units of
// 100/8192 cent.
type MasterFineTuning struct {
	Cents int16
}

// MasterCoarseTuning (sub-ID 04 04) offsets the whole device in
// semitones.
type MasterCoarseTuning struct {
	Semitones int8
}

// GlobalParameterControl (sub-ID 04 05) addresses a parameter slot path
// and writes width-prefixed parameter data. Params holds the raw
// id/value bytes; their grouping is defined by the two width fields.
type GlobalParameterControl struct {
	SlotPaths  [][2]uint8
	ParamWidth uint8
	ValueWidth uint8
	Params     []uint8
}

// CueingKind selects a time-code cueing event class. The real-time
// family (sub-ID 05) uses the punch, event, cue-point and event-name
// kinds; the non-real-time setup family (sub-ID 04) additionally uses
// the delete kinds.
type CueingKind uint8

const (
	CueSpecial          CueingKind = 0x00
	CuePunchIn          CueingKind = 0x01
	CuePunchOut         CueingKind = 0x02
	CueDeletePunchIn    CueingKind = 0x03
	CueDeletePunchOut   CueingKind = 0x04
	CueEventStart       CueingKind = 0x05
	CueEventStop        CueingKind = 0x06
	CueEventStartInfo   CueingKind = 0x07
	CueEventStopInfo    CueingKind = 0x08
	CueDeleteEventStart CueingKind = 0x09
	CueDeleteEventStop  CueingKind = 0x0A
	CueCuePoint         CueingKind = 0x0B
	CueCuePointInfo     CueingKind = 0x0C
	CueDeleteCuePoint   CueingKind = 0x0D
	CueEventName        CueingKind = 0x0E
)

// TimeCodeCueing (sub-ID 05) fires a cueing event against a previously
// set up event number.
type TimeCodeCueing struct {
	Kind        CueingKind
	EventNumber uint16
	Info        []uint8
}

// MachineControlCommand (sub-ID 06) is an MMC command; the bytes after
// the sub-ID travel opaquely. The single-byte commands are named below.
type MachineControlCommand struct {
	Data []byte
}

// Single-byte MMC command numbers.
const (
	MMCStop         = 0x01
	MMCPlay         = 0x02
	MMCDeferredPlay = 0x03
	MMCFastForward  = 0x04
	MMCRewind       = 0x05
	MMCRecordStrobe = 0x06
	MMCRecordExit   = 0x07
	MMCRecordPause  = 0x08
	MMCPause        = 0x09
	MMCEject        = 0x0A
	MMCChase        = 0x0B
	MMCReset        = 0x0D
	MMCLocate       = 0x44
)

// MachineControlResponse (sub-ID 07) is an MMC response, opaque like the
// command form.
type MachineControlResponse struct {
	Data []byte
}

// TuningNoteChange (sub-ID 08 02) retunes individual notes of a tuning
// program while notes may be sounding.
type TuningNoteChange struct {
	Program uint8
	Changes []NoteTuning
}

// ControlDestination names where a controller-destination message routes
// its source.
type ControlDestination uint8

const (
	SourceChannelPressure ControlDestination = 0x01
	SourcePolyPressure    ControlDestination = 0x02
	SourceController      ControlDestination = 0x03
)

// ControllerDestination (sub-ID 09) maps channel pressure, poly pressure
// or a controller to a list of destination/range pairs.
type ControllerDestination struct {
	Source       ControlDestination
	Channel      Channel
	Controller   uint8 // only meaningful when Source is SourceController
	Destinations [][2]uint8
}

// KeyBasedInstrumentControl (sub-ID 0A 01) writes controller values that
// affect only one note on one channel.
type KeyBasedInstrumentControl struct {
	Channel  Channel
	Note     uint8
	Controls [][2]uint8
}

func (FullTimeCode) universalRealTimeMsg()              {}
func (TimeCodeUserBits) universalRealTimeMsg()          {}
func (ShowControl) universalRealTimeMsg()               {}
func (BarMarker) universalRealTimeMsg()                 {}
func (RTTimeSignature) universalRealTimeMsg()           {}
func (MasterVolume) universalRealTimeMsg()              {}
func (MasterBalance) universalRealTimeMsg()             {}
func (MasterFineTuning) universalRealTimeMsg()          {}
func (MasterCoarseTuning) universalRealTimeMsg()        {}
func (GlobalParameterControl) universalRealTimeMsg()    {}
func (TimeCodeCueing) universalRealTimeMsg()            {}
func (MachineControlCommand) universalRealTimeMsg()     {}
func (MachineControlResponse) universalRealTimeMsg()    {}
func (TuningNoteChange) universalRealTimeMsg()          {}
func (ControllerDestination) universalRealTimeMsg()     {}
func (KeyBasedInstrumentControl) universalRealTimeMsg() {}

// ============================================================
// Encoding
// ============================================================

func appendUniversalRealTime(buf []byte, _ int, m UniversalRealTimeMsg) []byte {
	switch v := m.(type) {
	case FullTimeCode:
		buf = append(buf, 0x01, 0x01)
		return v.TimeCode.appendFullFrame(buf)
	case TimeCodeUserBits:
		buf = append(buf, 0x01, 0x02)
		return v.UserBits.appendTo(buf)
	case ShowControl:
		buf = append(buf, 0x02)
		return append(buf, v.Data...)
	case BarMarker:
		buf = append(buf, 0x03, 0x01)
		return appendU14(buf, clampI14(v.Bar))
	case RTTimeSignature:
		if v.Delayed {
			buf = append(buf, 0x03, 0x42)
		} else {
			buf = append(buf, 0x03, 0x02)
		}
		buf = append(buf, clampU7(uint8(4+len(v.Extra))))
		buf = append(buf, clampU7(v.Numerator), clampU7(v.Denominator),
			clampU7(v.ClocksPerClick), clampU7(v.ThirtySecondsPerQuarter))
		for _, b := range v.Extra {
			buf = append(buf, clampU7(b))
		}
		return buf
	case MasterVolume:
		return appendU14(append(buf, 0x04, 0x01), v.Volume)
	case MasterBalance:
		return appendU14(append(buf, 0x04, 0x02), v.Balance)
	case MasterFineTuning:
		return appendU14(append(buf, 0x04, 0x03), clampI14(v.Cents))
	case MasterCoarseTuning:
		// Two data bytes; the LSB is unused and sent as zero.
		return append(buf, 0x04, 0x04, 0x00, clampI7(v.Semitones))
	case GlobalParameterControl:
		buf = append(buf, 0x04, 0x05, clampU7(uint8(len(v.SlotPaths))),
			clampU7(v.ParamWidth), clampU7(v.ValueWidth))
		for _, sp := range v.SlotPaths {
			buf = append(buf, clampU7(sp[0]), clampU7(sp[1]))
		}
		for _, b := range v.Params {
			buf = append(buf, clampU7(b))
		}
		return buf
	case TimeCodeCueing:
		buf = append(buf, 0x05, byte(v.Kind)&0x7F)
		// Cueing event numbers are MSB-first on the wire.
		buf = appendU14MSB(buf, v.EventNumber)
		for _, b := range v.Info {
			buf = append(buf, clampU7(b))
		}
		return buf
	case MachineControlCommand:
		buf = append(buf, 0x06)
		return append(buf, v.Data...)
	case MachineControlResponse:
		buf = append(buf, 0x07)
		return append(buf, v.Data...)
	case TuningNoteChange:
		buf = append(buf, 0x08, 0x02, clampU7(v.Program), clampU7(uint8(len(v.Changes))))
		for _, c := range v.Changes {
			buf = c.appendTo(buf)
		}
		return buf
	case ControllerDestination:
		buf = append(buf, 0x09, byte(v.Source)&0x7F, byte(v.Channel&0x0F))
		if v.Source == SourceController {
			buf = append(buf, clampU7(v.Controller))
		}
		for _, d := range v.Destinations {
			buf = append(buf, clampU7(d[0]), clampU7(d[1]))
		}
		return buf
	case KeyBasedInstrumentControl:
		buf = append(buf, 0x0A, 0x01, byte(v.Channel&0x0F), clampU7(v.Note))
		for _, c := range v.Controls {
			buf = append(buf, clampU7(c[0]), clampU7(c[1]))
		}
		return buf
	}
	return buf
}

// ============================================================
// Decoding
// ============================================================

func decodeUniversalRealTime(r *reader) (UniversalRealTimeMsg, error) {
	sub1, err := r.u7()
	if err != nil {
		return nil, err
	}

	switch sub1 {
	case 0x01:
		return decodeRTTimeCode(r)
	case 0x02:
		return ShowControl{Data: r.rest()}, nil
	case 0x03:
		return decodeRTNotation(r)
	case 0x04:
		return decodeRTDeviceControl(r)
	case 0x05:
		return decodeRTCueing(r)
	case 0x06:
		return MachineControlCommand{Data: r.rest()}, nil
	case 0x07:
		return MachineControlResponse{Data: r.rest()}, nil
	case 0x08:
		return decodeRTTuning(r)
	case 0x09:
		return decodeControllerDestination(r)
	case 0x0A:
		return decodeKeyBasedInstrumentControl(r)
	}
	return nil, errInvalid("bad universal real-time sub-ID 0x%02X", sub1)
}

func decodeRTTimeCode(r *reader) (UniversalRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	switch sub2 {
	case 0x01:
		tc, err := readFullFrameTimeCode(r)
		if err != nil {
			return nil, err
		}
		return FullTimeCode{TimeCode: tc}, nil
	case 0x02:
		ub, err := readUserBits(r)
		if err != nil {
			return nil, err
		}
		return TimeCodeUserBits{UserBits: ub}, nil
	}
	return nil, errInvalid("bad time code sub-ID 0x%02X", sub2)
}

func decodeRTNotation(r *reader) (UniversalRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	switch sub2 {
	case 0x01:
		v, err := r.i14()
		if err != nil {
			return nil, err
		}
		return BarMarker{Bar: v}, nil
	case 0x02, 0x42:
		n, err := r.u7()
		if err != nil {
			return nil, err
		}
		if n < 4 {
			return nil, errInvalid("time signature length %d, need at least 4", n)
		}
		fields, err := r.take7(4)
		if err != nil {
			return nil, err
		}
		extra, err := r.take7(int(n) - 4)
		if err != nil {
			return nil, err
		}
		m := RTTimeSignature{
			Delayed:                 sub2 == 0x42,
			Numerator:               fields[0],
			Denominator:             fields[1],
			ClocksPerClick:          fields[2],
			ThirtySecondsPerQuarter: fields[3],
		}
		if len(extra) > 0 {
			m.Extra = extra
		}
		return m, nil
	}
	return nil, errInvalid("bad notation sub-ID 0x%02X", sub2)
}

func decodeRTDeviceControl(r *reader) (UniversalRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	switch sub2 {
	case 0x01:
		v, err := r.u14()
		if err != nil {
			return nil, err
		}
		return MasterVolume{Volume: v}, nil
	case 0x02:
		v, err := r.u14()
		if err != nil {
			return nil, err
		}
		return MasterBalance{Balance: v}, nil
	case 0x03:
		v, err := r.i14()
		if err != nil {
			return nil, err
		}
		return MasterFineTuning{Cents: v}, nil
	case 0x04:
		if _, err := r.u7(); err != nil { // unused LSB
			return nil, err
		}
		v, err := r.i7()
		if err != nil {
			return nil, err
		}
		return MasterCoarseTuning{Semitones: v}, nil
	case 0x05:
		header, err := r.take7(3)
		if err != nil {
			return nil, err
		}
		m := GlobalParameterControl{ParamWidth: header[1], ValueWidth: header[2]}
		for i := 0; i < int(header[0]); i++ {
			sp, err := r.take7(2)
			if err != nil {
				return nil, err
			}
			m.SlotPaths = append(m.SlotPaths, [2]uint8{sp[0], sp[1]})
		}
		if rest := r.rest(); len(rest) > 0 {
			m.Params = rest
		}
		return m, nil
	}
	return nil, errInvalid("bad device control sub-ID 0x%02X", sub2)
}

func decodeRTCueing(r *reader) (UniversalRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	if sub2 > uint8(CueEventName) {
		return nil, errInvalid("bad cueing sub-ID 0x%02X", sub2)
	}
	ev, err := r.u14MSB()
	if err != nil {
		return nil, err
	}
	m := TimeCodeCueing{Kind: CueingKind(sub2), EventNumber: ev}
	if rest := r.rest(); len(rest) > 0 {
		m.Info = rest
	}
	return m, nil
}

func decodeRTTuning(r *reader) (UniversalRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	if sub2 != 0x02 {
		return nil, errInvalid("bad real-time tuning sub-ID 0x%02X", sub2)
	}
	program, err := r.u7()
	if err != nil {
		return nil, err
	}
	count, err := r.u7()
	if err != nil {
		return nil, err
	}
	m := TuningNoteChange{Program: program}
	for i := 0; i < int(count); i++ {
		nt, err := readNoteTuning(r)
		if err != nil {
			return nil, err
		}
		m.Changes = append(m.Changes, nt)
	}
	return m, nil
}

func decodeControllerDestination(r *reader) (UniversalRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	if sub2 < uint8(SourceChannelPressure) || sub2 > uint8(SourceController) {
		return nil, errInvalid("bad controller destination source 0x%02X", sub2)
	}
	ch, err := r.u7()
	if err != nil {
		return nil, err
	}
	m := ControllerDestination{Source: ControlDestination(sub2), Channel: Channel(ch & 0x0F)}
	if m.Source == SourceController {
		cc, err := r.u7()
		if err != nil {
			return nil, err
		}
		m.Controller = cc
	}
	dests, err := readBytePairs(r)
	if err != nil {
		return nil, err
	}
	m.Destinations = dests
	return m, nil
}

func decodeKeyBasedInstrumentControl(r *reader) (UniversalRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	if sub2 != 0x01 {
		return nil, errInvalid("bad key-based instrument control sub-ID 0x%02X", sub2)
	}
	ch, err := r.u7()
	if err != nil {
		return nil, err
	}
	note, err := r.u7()
	if err != nil {
		return nil, err
	}
	controls, err := readBytePairs(r)
	if err != nil {
		return nil, err
	}
	return KeyBasedInstrumentControl{Channel: Channel(ch & 0x0F), Note: note, Controls: controls}, nil
}

// readBytePairs consumes the rest of the body as two-byte pairs.
func readBytePairs(r *reader) ([][2]uint8, error) {
	rest := r.rest()
	if len(rest)%2 != 0 {
		return nil, errInvalid("odd byte-pair list length %d", len(rest))
	}
	var pairs [][2]uint8
	for i := 0; i < len(rest); i += 2 {
		pairs = append(pairs, [2]uint8{rest[i], rest[i+1]})
	}
	return pairs, nil
}
