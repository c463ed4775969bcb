package midi

// The ControlChange payload universe. Three orthogonal kinds live under
// status 0xB: paired MSB/LSB controllers carrying 14-bit values,
// single-byte controllers, and RPN/NRPN parameter selection via CC 98-101
// with data entry via CC 6/38.

// Control is a control change payload.
type Control interface {
	control()
}

// ============================================================
// Paired MSB/LSB controllers (14-bit)
// ============================================================

// BankSelect is CC 0/32.
type BankSelect struct{ Value uint16 }

// ModWheel is CC 1/33.
type ModWheel struct{ Value uint16 }

// Breath is CC 2/34.
type Breath struct{ Value uint16 }

// Foot is CC 4/36.
type Foot struct{ Value uint16 }

// PortamentoTime is CC 5/37.
type PortamentoTime struct{ Value uint16 }

// DataEntry is CC 6/38, the value slot of RPN/NRPN parameter writes. A
// bare DataEntry surfaces when an entry arrives without a preceding
// parameter selection in the same run.
type DataEntry struct{ Value uint16 }

// Volume is CC 7/39.
type Volume struct{ Value uint16 }

// Balance is CC 8/40.
type Balance struct{ Value uint16 }

// Pan is CC 10/42.
type Pan struct{ Value uint16 }

// Expression is CC 11/43.
type Expression struct{ Value uint16 }

// Effect1 is CC 12/44.
type Effect1 struct{ Value uint16 }

// Effect2 is CC 13/45.
type Effect2 struct{ Value uint16 }

// GeneralPurpose1 through GeneralPurpose4 are CC 16-19 with LSB partners
// 48-51.
type GeneralPurpose1 struct{ Value uint16 }
type GeneralPurpose2 struct{ Value uint16 }
type GeneralPurpose3 struct{ Value uint16 }
type GeneralPurpose4 struct{ Value uint16 }

// ============================================================
// Single-byte controllers
// ============================================================

// Hold is CC 64, the damper pedal.
type Hold struct{ Value uint8 }

// Portamento is the CC 65 switch.
type Portamento struct{ On bool }

// Sostenuto is the CC 66 switch.
type Sostenuto struct{ On bool }

// SoftPedal is the CC 67 switch.
type SoftPedal struct{ On bool }

// Legato is the CC 68 switch.
type Legato struct{ On bool }

// Hold2 is CC 69.
type Hold2 struct{ Value uint8 }

// Sound controllers, CC 70-79.
type SoundVariation struct{ Value uint8 } // CC 70
type Timbre struct{ Value uint8 }         // CC 71
type ReleaseTime struct{ Value uint8 }    // CC 72
type AttackTime struct{ Value uint8 }     // CC 73
type Brightness struct{ Value uint8 }     // CC 74
type DecayTime struct{ Value uint8 }      // CC 75
type VibratoRate struct{ Value uint8 }    // CC 76
type VibratoDepth struct{ Value uint8 }   // CC 77
type VibratoDelay struct{ Value uint8 }   // CC 78
type SoundControl10 struct{ Value uint8 } // CC 79

// GeneralPurpose5 through GeneralPurpose8 are CC 80-83.
type GeneralPurpose5 struct{ Value uint8 }
type GeneralPurpose6 struct{ Value uint8 }
type GeneralPurpose7 struct{ Value uint8 }
type GeneralPurpose8 struct{ Value uint8 }

// PortamentoControl is CC 84; the value is the source note.
type PortamentoControl struct{ Note uint8 }

// HighResVelocity is CC 88, the velocity LSB carrier for the
// high-resolution note forms.
type HighResVelocity struct{ Value uint8 }

// Effects depth controllers, CC 91-95.
type Effects1Depth struct{ Value uint8 } // CC 91, reverb
type Effects2Depth struct{ Value uint8 } // CC 92, tremolo
type Effects3Depth struct{ Value uint8 } // CC 93, chorus
type Effects4Depth struct{ Value uint8 } // CC 94, celeste
type Effects5Depth struct{ Value uint8 } // CC 95, phaser

// DataIncrement and DataDecrement are CC 96/97.
type DataIncrement struct{ Value uint8 }
type DataDecrement struct{ Value uint8 }

// ============================================================
// Parameters and catch-alls
// ============================================================

// ParameterControl selects an RPN or NRPN parameter, optionally writing a
// data entry value in the same run; see Parameter.
type ParameterControl struct{ Param Parameter }

// Undefined carries a controller number this package assigns no meaning.
type Undefined struct {
	Control uint8
	Value   uint8
}

// UndefinedHighRes carries an MSB/LSB controller pair without an assigned
// meaning.
type UndefinedHighRes struct {
	Control1 uint8 // MSB controller number
	Control2 uint8 // LSB controller number
	Value    uint16
}

func (BankSelect) control()        {}
func (ModWheel) control()          {}
func (Breath) control()            {}
func (Foot) control()              {}
func (PortamentoTime) control()    {}
func (DataEntry) control()         {}
func (Volume) control()            {}
func (Balance) control()           {}
func (Pan) control()               {}
func (Expression) control()        {}
func (Effect1) control()           {}
func (Effect2) control()           {}
func (GeneralPurpose1) control()   {}
func (GeneralPurpose2) control()   {}
func (GeneralPurpose3) control()   {}
func (GeneralPurpose4) control()   {}
func (Hold) control()              {}
func (Portamento) control()        {}
func (Sostenuto) control()         {}
func (SoftPedal) control()         {}
func (Legato) control()            {}
func (Hold2) control()             {}
func (SoundVariation) control()    {}
func (Timbre) control()            {}
func (ReleaseTime) control()       {}
func (AttackTime) control()        {}
func (Brightness) control()        {}
func (DecayTime) control()         {}
func (VibratoRate) control()       {}
func (VibratoDepth) control()      {}
func (VibratoDelay) control()      {}
func (SoundControl10) control()    {}
func (GeneralPurpose5) control()   {}
func (GeneralPurpose6) control()   {}
func (GeneralPurpose7) control()   {}
func (GeneralPurpose8) control()   {}
func (PortamentoControl) control() {}
func (HighResVelocity) control()   {}
func (Effects1Depth) control()     {}
func (Effects2Depth) control()     {}
func (Effects3Depth) control()     {}
func (Effects4Depth) control()     {}
func (Effects5Depth) control()     {}
func (DataIncrement) control()     {}
func (DataDecrement) control()     {}
func (ParameterControl) control()  {}
func (Undefined) control()         {}
func (UndefinedHighRes) control()  {}

// ============================================================
// Parameters (RPN / NRPN)
// ============================================================

// Parameter identifies a registered or non-registered parameter. The bare
// forms select only; the *Entry forms select and then write the value via
// CC 6/38.
type Parameter interface {
	parameter()
}

// PitchBendSensitivity is RPN 00 00.
type PitchBendSensitivity struct{}
type PitchBendSensitivityEntry struct {
	Semitones uint8
	Cents     uint8
}

// FineTuning is RPN 00 01; the entry is a signed 14-bit offset in
// 100/8192 cent steps.
type FineTuning struct{}
type FineTuningEntry struct{ Value int16 }

// CoarseTuning is RPN 00 02; the entry is a signed 7-bit semitone offset.
type CoarseTuning struct{}
type CoarseTuningEntry struct{ Value int8 }

// TuningProgramSelect is RPN 00 03.
type TuningProgramSelect struct{}
type TuningProgramSelectEntry struct{ Program uint8 }

// TuningBankSelect is RPN 00 04.
type TuningBankSelect struct{}
type TuningBankSelectEntry struct{ Bank uint8 }

// ModulationDepthRange is RPN 00 05.
type ModulationDepthRange struct{}
type ModulationDepthRangeEntry struct{ Value uint16 }

// PolyphonicExpression is RPN 00 06, the MPE configuration message; the
// entry is the member channel count.
type PolyphonicExpression struct{}
type PolyphonicExpressionEntry struct{ Channels uint8 }

// ThreeDSoundParam enumerates the 3D sound controllers under RPN 3D xx.
type ThreeDSoundParam uint8

const (
	AzimuthAngle ThreeDSoundParam = iota
	ElevationAngle
	Gain
	DistanceRatio
	MaximumDistance
	GainAtMaximumDistance
	ReferenceDistanceRatio
	PanSpreadAngle
	RollAngle
)

// ThreeDSound selects one of the 3D sound parameters.
type ThreeDSound struct{ Param ThreeDSoundParam }
type ThreeDSoundEntry struct {
	Param ThreeDSoundParam
	Value uint16
}

// NullParameter is RPN 7F 7F, which deselects the current parameter.
type NullParameter struct{}

// Unregistered selects an NRPN by its 14-bit number.
type Unregistered struct{ Param uint16 }
type UnregisteredEntry struct {
	Param uint16
	Value uint16
}

func (PitchBendSensitivity) parameter()       {}
func (PitchBendSensitivityEntry) parameter()  {}
func (FineTuning) parameter()                 {}
func (FineTuningEntry) parameter()            {}
func (CoarseTuning) parameter()               {}
func (CoarseTuningEntry) parameter()          {}
func (TuningProgramSelect) parameter()        {}
func (TuningProgramSelectEntry) parameter()   {}
func (TuningBankSelect) parameter()           {}
func (TuningBankSelectEntry) parameter()      {}
func (ModulationDepthRange) parameter()       {}
func (ModulationDepthRangeEntry) parameter()  {}
func (PolyphonicExpression) parameter()       {}
func (PolyphonicExpressionEntry) parameter()  {}
func (ThreeDSound) parameter()                {}
func (ThreeDSoundEntry) parameter()           {}
func (NullParameter) parameter()              {}
func (Unregistered) parameter()               {}
func (UnregisteredEntry) parameter()          {}

// ============================================================
// Encoding
// ============================================================

func appendCC14(buf []byte, msbCC uint8, v uint16) []byte {
	v = clampU14(v)
	return append(buf, msbCC, byte(v>>7), msbCC+32, byte(v&0x7F))
}

func appendCC7(buf []byte, cc, v uint8) []byte {
	return append(buf, cc, clampU7(v))
}

// appendControl writes the data bytes of a control change; the 0xB status
// byte is the caller's business.
func appendControl(buf []byte, c Control) []byte {
	switch v := c.(type) {
	case BankSelect:
		return appendCC14(buf, 0, v.Value)
	case ModWheel:
		return appendCC14(buf, 1, v.Value)
	case Breath:
		return appendCC14(buf, 2, v.Value)
	case Foot:
		return appendCC14(buf, 4, v.Value)
	case PortamentoTime:
		return appendCC14(buf, 5, v.Value)
	case DataEntry:
		return appendCC14(buf, 6, v.Value)
	case Volume:
		return appendCC14(buf, 7, v.Value)
	case Balance:
		return appendCC14(buf, 8, v.Value)
	case Pan:
		return appendCC14(buf, 10, v.Value)
	case Expression:
		return appendCC14(buf, 11, v.Value)
	case Effect1:
		return appendCC14(buf, 12, v.Value)
	case Effect2:
		return appendCC14(buf, 13, v.Value)
	case GeneralPurpose1:
		return appendCC14(buf, 16, v.Value)
	case GeneralPurpose2:
		return appendCC14(buf, 17, v.Value)
	case GeneralPurpose3:
		return appendCC14(buf, 18, v.Value)
	case GeneralPurpose4:
		return appendCC14(buf, 19, v.Value)
	case Hold:
		return appendCC7(buf, 64, v.Value)
	case Portamento:
		return append(buf, 65, onByte(v.On))
	case Sostenuto:
		return append(buf, 66, onByte(v.On))
	case SoftPedal:
		return append(buf, 67, onByte(v.On))
	case Legato:
		return append(buf, 68, onByte(v.On))
	case Hold2:
		return appendCC7(buf, 69, v.Value)
	case SoundVariation:
		return appendCC7(buf, 70, v.Value)
	case Timbre:
		return appendCC7(buf, 71, v.Value)
	case ReleaseTime:
		return appendCC7(buf, 72, v.Value)
	case AttackTime:
		return appendCC7(buf, 73, v.Value)
	case Brightness:
		return appendCC7(buf, 74, v.Value)
	case DecayTime:
		return appendCC7(buf, 75, v.Value)
	case VibratoRate:
		return appendCC7(buf, 76, v.Value)
	case VibratoDepth:
		return appendCC7(buf, 77, v.Value)
	case VibratoDelay:
		return appendCC7(buf, 78, v.Value)
	case SoundControl10:
		return appendCC7(buf, 79, v.Value)
	case GeneralPurpose5:
		return appendCC7(buf, 80, v.Value)
	case GeneralPurpose6:
		return appendCC7(buf, 81, v.Value)
	case GeneralPurpose7:
		return appendCC7(buf, 82, v.Value)
	case GeneralPurpose8:
		return appendCC7(buf, 83, v.Value)
	case PortamentoControl:
		return appendCC7(buf, 84, v.Note)
	case HighResVelocity:
		return appendCC7(buf, highResVelocityCC, v.Value)
	case Effects1Depth:
		return appendCC7(buf, 91, v.Value)
	case Effects2Depth:
		return appendCC7(buf, 92, v.Value)
	case Effects3Depth:
		return appendCC7(buf, 93, v.Value)
	case Effects4Depth:
		return appendCC7(buf, 94, v.Value)
	case Effects5Depth:
		return appendCC7(buf, 95, v.Value)
	case DataIncrement:
		return appendCC7(buf, 96, v.Value)
	case DataDecrement:
		return appendCC7(buf, 97, v.Value)
	case ParameterControl:
		return appendParameter(buf, v.Param)
	case Undefined:
		return append(buf, clampU7(v.Control), clampU7(v.Value))
	case UndefinedHighRes:
		v14 := clampU14(v.Value)
		return append(buf, clampU7(v.Control1), byte(v14>>7),
			clampU7(v.Control2), byte(v14&0x7F))
	}
	return buf
}

func appendRPNSelect(buf []byte, msb, lsb uint8) []byte {
	return append(buf, 101, msb, 100, lsb)
}

func appendNRPNSelect(buf []byte, msb, lsb uint8) []byte {
	return append(buf, 99, msb, 98, lsb)
}

func appendEntry14(buf []byte, v uint16) []byte {
	v = clampU14(v)
	return append(buf, 6, byte(v>>7), 38, byte(v&0x7F))
}

func appendEntry7(buf []byte, v uint8) []byte {
	return append(buf, 6, clampU7(v))
}

func appendParameter(buf []byte, p Parameter) []byte {
	switch v := p.(type) {
	case PitchBendSensitivity:
		return appendRPNSelect(buf, 0, 0)
	case PitchBendSensitivityEntry:
		buf = appendRPNSelect(buf, 0, 0)
		return append(buf, 6, clampU7(v.Semitones), 38, clampU7(v.Cents))
	case FineTuning:
		return appendRPNSelect(buf, 0, 1)
	case FineTuningEntry:
		buf = appendRPNSelect(buf, 0, 1)
		return appendEntry14(buf, clampI14(v.Value))
	case CoarseTuning:
		return appendRPNSelect(buf, 0, 2)
	case CoarseTuningEntry:
		buf = appendRPNSelect(buf, 0, 2)
		return appendEntry7(buf, clampI7(v.Value))
	case TuningProgramSelect:
		return appendRPNSelect(buf, 0, 3)
	case TuningProgramSelectEntry:
		buf = appendRPNSelect(buf, 0, 3)
		return appendEntry7(buf, v.Program)
	case TuningBankSelect:
		return appendRPNSelect(buf, 0, 4)
	case TuningBankSelectEntry:
		buf = appendRPNSelect(buf, 0, 4)
		return appendEntry7(buf, v.Bank)
	case ModulationDepthRange:
		return appendRPNSelect(buf, 0, 5)
	case ModulationDepthRangeEntry:
		buf = appendRPNSelect(buf, 0, 5)
		return appendEntry14(buf, v.Value)
	case PolyphonicExpression:
		return appendRPNSelect(buf, 0, 6)
	case PolyphonicExpressionEntry:
		buf = appendRPNSelect(buf, 0, 6)
		return appendEntry7(buf, v.Channels)
	case ThreeDSound:
		return appendRPNSelect(buf, 0x3D, uint8(v.Param))
	case ThreeDSoundEntry:
		buf = appendRPNSelect(buf, 0x3D, uint8(v.Param))
		return appendEntry14(buf, v.Value)
	case NullParameter:
		return appendRPNSelect(buf, 0x7F, 0x7F)
	case Unregistered:
		n := clampU14(v.Param)
		return appendNRPNSelect(buf, byte(n>>7), byte(n&0x7F))
	case UnregisteredEntry:
		n := clampU14(v.Param)
		buf = appendNRPNSelect(buf, byte(n>>7), byte(n&0x7F))
		return appendEntry14(buf, v.Value)
	}
	return buf
}

// ============================================================
// Decoding and assembly
// ============================================================

// decodeControlChange assembles the semantic form of a raw (control,
// value) pair. With ComplexCC off every pair surfaces as Undefined and no
// state is committed.
func decodeControlChange(r *reader, ctx *ReceiverContext, ch Channel, control, value uint8) (Msg, error) {
	if !ctx.ComplexCC {
		return cc(ch, Undefined{Control: control, Value: value}), nil
	}

	switch {
	case control == highResVelocityCC:
		ctx.setPendingVelocity(ch, value)
		return cc(ch, HighResVelocity{Value: value}), nil

	case control < 32:
		ctx.discardPendingVelocity(ch)
		return decodePairedCC(r, ctx, ch, control, value), nil

	case control == 96:
		ctx.discardPendingVelocity(ch)
		return cc(ch, DataIncrement{Value: value}), nil

	case control == 97:
		ctx.discardPendingVelocity(ch)
		return cc(ch, DataDecrement{Value: value}), nil

	case control == 99 || control == 101:
		ctx.discardPendingVelocity(ch)
		return decodeParameter(r, ctx, ch, control, value), nil

	default:
		ctx.discardPendingVelocity(ch)
		if c, ok := singleByteControl(control, value); ok {
			return cc(ch, c), nil
		}
		return cc(ch, Undefined{Control: control, Value: value}), nil
	}
}

func cc(ch Channel, c Control) Msg {
	return ChannelVoice{Channel: ch, Msg: ControlChange{Control: c}}
}

// decodePairedCC handles controllers 0-31. When the matching +32 LSB is
// contiguous on the same channel the pair merges into one 14-bit message;
// otherwise the MSB stands alone with a zero LSB.
func decodePairedCC(r *reader, ctx *ReceiverContext, ch Channel, control, value uint8) Msg {
	if control == 6 {
		lsb, _ := peekCC(r, ctx, ch, 38, true)
		return cc(ch, DataEntry{Value: uint16(value)<<7 | uint16(lsb)})
	}

	lsb, merged := peekCC(r, ctx, ch, control+32, true)
	v14 := uint16(value)<<7 | uint16(lsb)

	if ctor, ok := pairedControl(control); ok {
		return cc(ch, ctor(v14))
	}
	if merged {
		return cc(ch, UndefinedHighRes{Control1: control, Control2: control + 32, Value: v14})
	}
	return cc(ch, Undefined{Control: control, Value: value})
}

func pairedControl(control uint8) (func(uint16) Control, bool) {
	switch control {
	case 0:
		return func(v uint16) Control { return BankSelect{Value: v} }, true
	case 1:
		return func(v uint16) Control { return ModWheel{Value: v} }, true
	case 2:
		return func(v uint16) Control { return Breath{Value: v} }, true
	case 4:
		return func(v uint16) Control { return Foot{Value: v} }, true
	case 5:
		return func(v uint16) Control { return PortamentoTime{Value: v} }, true
	case 7:
		return func(v uint16) Control { return Volume{Value: v} }, true
	case 8:
		return func(v uint16) Control { return Balance{Value: v} }, true
	case 10:
		return func(v uint16) Control { return Pan{Value: v} }, true
	case 11:
		return func(v uint16) Control { return Expression{Value: v} }, true
	case 12:
		return func(v uint16) Control { return Effect1{Value: v} }, true
	case 13:
		return func(v uint16) Control { return Effect2{Value: v} }, true
	case 16:
		return func(v uint16) Control { return GeneralPurpose1{Value: v} }, true
	case 17:
		return func(v uint16) Control { return GeneralPurpose2{Value: v} }, true
	case 18:
		return func(v uint16) Control { return GeneralPurpose3{Value: v} }, true
	case 19:
		return func(v uint16) Control { return GeneralPurpose4{Value: v} }, true
	}
	return nil, false
}

func singleByteControl(control, value uint8) (Control, bool) {
	switch control {
	case 64:
		return Hold{Value: value}, true
	case 65:
		return Portamento{On: value >= 0x40}, true
	case 66:
		return Sostenuto{On: value >= 0x40}, true
	case 67:
		return SoftPedal{On: value >= 0x40}, true
	case 68:
		return Legato{On: value >= 0x40}, true
	case 69:
		return Hold2{Value: value}, true
	case 70:
		return SoundVariation{Value: value}, true
	case 71:
		return Timbre{Value: value}, true
	case 72:
		return ReleaseTime{Value: value}, true
	case 73:
		return AttackTime{Value: value}, true
	case 74:
		return Brightness{Value: value}, true
	case 75:
		return DecayTime{Value: value}, true
	case 76:
		return VibratoRate{Value: value}, true
	case 77:
		return VibratoDepth{Value: value}, true
	case 78:
		return VibratoDelay{Value: value}, true
	case 79:
		return SoundControl10{Value: value}, true
	case 80:
		return GeneralPurpose5{Value: value}, true
	case 81:
		return GeneralPurpose6{Value: value}, true
	case 82:
		return GeneralPurpose7{Value: value}, true
	case 83:
		return GeneralPurpose8{Value: value}, true
	case 84:
		return PortamentoControl{Note: value}, true
	case 91:
		return Effects1Depth{Value: value}, true
	case 92:
		return Effects2Depth{Value: value}, true
	case 93:
		return Effects3Depth{Value: value}, true
	case 94:
		return Effects4Depth{Value: value}, true
	case 95:
		return Effects5Depth{Value: value}, true
	}
	return nil, false
}

// decodeParameter assembles an RPN (CC 101 then 100) or NRPN (CC 99 then
// 98) selection, optionally followed by a CC 6 / CC 38 data entry on the
// same channel. A selection MSB without its LSB partner degrades to
// Undefined.
func decodeParameter(r *reader, ctx *ReceiverContext, ch Channel, control, value uint8) Msg {
	var param Parameter
	switch control {
	case 101:
		lsb, ok := peekCC(r, ctx, ch, 100, true)
		if !ok {
			return cc(ch, Undefined{Control: control, Value: value})
		}
		param = rpnParameter(value, lsb)
	case 99:
		lsb, ok := peekCC(r, ctx, ch, 98, true)
		if !ok {
			return cc(ch, Undefined{Control: control, Value: value})
		}
		param = Unregistered{Param: uint16(value)<<7 | uint16(lsb)}
	}

	if _, isNull := param.(NullParameter); !isNull {
		if vmsb, ok := peekCC(r, ctx, ch, 6, true); ok {
			vlsb, _ := peekCC(r, ctx, ch, 38, true)
			param = parameterEntry(param, vmsb, vlsb)
		}
	}
	return cc(ch, ParameterControl{Param: param})
}

func rpnParameter(msb, lsb uint8) Parameter {
	switch msb {
	case 0:
		switch lsb {
		case 0:
			return PitchBendSensitivity{}
		case 1:
			return FineTuning{}
		case 2:
			return CoarseTuning{}
		case 3:
			return TuningProgramSelect{}
		case 4:
			return TuningBankSelect{}
		case 5:
			return ModulationDepthRange{}
		case 6:
			return PolyphonicExpression{}
		}
	case 0x3D:
		if lsb <= uint8(RollAngle) {
			return ThreeDSound{Param: ThreeDSoundParam(lsb)}
		}
	case 0x7F:
		if lsb == 0x7F {
			return NullParameter{}
		}
	}
	// Unknown RPNs are carried through the NRPN-style catch-all so the
	// selection is not lost.
	return Unregistered{Param: uint16(msb)<<7 | uint16(lsb)}
}

func parameterEntry(p Parameter, vmsb, vlsb uint8) Parameter {
	v14 := uint16(vmsb)<<7 | uint16(vlsb)
	switch v := p.(type) {
	case PitchBendSensitivity:
		return PitchBendSensitivityEntry{Semitones: vmsb, Cents: vlsb}
	case FineTuning:
		return FineTuningEntry{Value: int16(v14) - 8192}
	case CoarseTuning:
		return CoarseTuningEntry{Value: int8(int16(vmsb) - 64)}
	case TuningProgramSelect:
		return TuningProgramSelectEntry{Program: vmsb}
	case TuningBankSelect:
		return TuningBankSelectEntry{Bank: vmsb}
	case ModulationDepthRange:
		return ModulationDepthRangeEntry{Value: v14}
	case PolyphonicExpression:
		return PolyphonicExpressionEntry{Channels: vmsb}
	case ThreeDSound:
		return ThreeDSoundEntry{Param: v.Param, Value: v14}
	case Unregistered:
		return UnregisteredEntry{Param: v.Param, Value: v14}
	}
	return p
}
