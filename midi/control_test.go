package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complexCtx() *ReceiverContext {
	ctx := NewReceiverContext()
	ctx.ComplexCC = true
	return ctx
}

func TestControlChange_PairedAssembly(t *testing.T) {
	// B1 07 07 B1 27 68: Volume MSB then LSB with a repeated status byte.
	data := []byte{0xB1, 0x07, 0x07, 0xB1, 0x27, 0x68}
	m, n, err := DecodeWithContext(data, complexCtx())
	require.NoError(t, err)
	assert.Equal(t, len(data), n, "both halves consumed as one message")
	assert.Equal(t, ChannelVoice{Channel: Ch2, Msg: ControlChange{Control: Volume{Value: 1000}}}, m)
}

func TestControlChange_PairedAssemblyRunningForm(t *testing.T) {
	// Same pair as a running continuation: B1 07 07 27 68.
	data := []byte{0xB1, 0x07, 0x07, 0x27, 0x68}
	m, n, err := DecodeWithContext(data, complexCtx())
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, ChannelVoice{Channel: Ch2, Msg: ControlChange{Control: Volume{Value: 1000}}}, m)
}

func TestControlChange_LoneMSB(t *testing.T) {
	// An MSB with no LSB partner keeps a zero low half.
	m, n, err := DecodeWithContext([]byte{0xB0, 0x01, 0x40}, complexCtx())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: ControlChange{Control: ModWheel{Value: 0x40 << 7}}}, m)
}

func TestControlChange_ComplexCCOffSurfacesRaw(t *testing.T) {
	ctx := NewReceiverContext()
	data := []byte{0xB1, 0x07, 0x07, 0xB1, 0x27, 0x68}

	m, n, err := DecodeWithContext(data, ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "no merging with assembly off")
	assert.Equal(t, ChannelVoice{Channel: Ch2, Msg: ControlChange{Control: Undefined{Control: 0x07, Value: 0x07}}}, m)
}

func TestControlChange_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ctl  Control
	}{
		{"bank_select", BankSelect{Value: 130}},
		{"mod_wheel", ModWheel{Value: 0x3FFF}},
		{"data_entry", DataEntry{Value: 500}},
		{"pan", Pan{Value: 8192}},
		{"general_purpose_2", GeneralPurpose2{Value: 77}},
		{"hold", Hold{Value: 127}},
		{"portamento_on", Portamento{On: true}},
		{"sostenuto_off", Sostenuto{On: false}},
		{"brightness", Brightness{Value: 9}},
		{"general_purpose_8", GeneralPurpose8{Value: 3}},
		{"portamento_control", PortamentoControl{Note: 62}},
		{"effects_3_depth", Effects3Depth{Value: 64}},
		{"data_increment", DataIncrement{Value: 1}},
		{"data_decrement", DataDecrement{Value: 0}},
		{"undefined", Undefined{Control: 0x66, Value: 0x22}},
		{"undefined_high_res", UndefinedHighRes{Control1: 3, Control2: 35, Value: 4097}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ChannelVoice{Channel: Ch7, Msg: ControlChange{Control: tt.ctl}}
			enc := Encode(msg)
			got, n, err := DecodeWithContext(enc, complexCtx())
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, len(enc), n)
		})
	}
}

// ============================================================
// RPN / NRPN parameters
// ============================================================

func TestParameter_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
	}{
		{"pitch_bend_sensitivity", PitchBendSensitivity{}},
		{"pitch_bend_sensitivity_entry", PitchBendSensitivityEntry{Semitones: 2, Cents: 50}},
		{"fine_tuning", FineTuning{}},
		{"fine_tuning_entry", FineTuningEntry{Value: -100}},
		{"coarse_tuning_entry", CoarseTuningEntry{Value: -12}},
		{"tuning_program_entry", TuningProgramSelectEntry{Program: 5}},
		{"tuning_bank_entry", TuningBankSelectEntry{Bank: 2}},
		{"modulation_depth_entry", ModulationDepthRangeEntry{Value: 333}},
		{"polyphonic_expression_entry", PolyphonicExpressionEntry{Channels: 15}},
		{"three_d_sound", ThreeDSound{Param: Gain}},
		{"three_d_sound_entry", ThreeDSoundEntry{Param: PanSpreadAngle, Value: 900}},
		{"null_parameter", NullParameter{}},
		{"unregistered", Unregistered{Param: 0x1234}},
		{"unregistered_entry", UnregisteredEntry{Param: 0x1234, Value: 0x0FFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ChannelVoice{Channel: Ch1, Msg: ControlChange{Control: ParameterControl{Param: tt.param}}}
			enc := Encode(msg)
			got, n, err := DecodeWithContext(enc, complexCtx())
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, len(enc), n)
		})
	}
}

func TestParameter_UnknownRPNCarriesThrough(t *testing.T) {
	// RPN 12 34 is not assigned; the selection survives as a parameter
	// number rather than being dropped.
	data := []byte{0xB0, 101, 0x12, 100, 0x34}
	m, _, err := DecodeWithContext(data, complexCtx())
	require.NoError(t, err)
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: ControlChange{
		Control: ParameterControl{Param: Unregistered{Param: 0x12<<7 | 0x34}}}}, m)
}

func TestParameter_BareDataEntry(t *testing.T) {
	// A data-entry pair with no preceding selection surfaces as DataEntry.
	data := []byte{0xB0, 6, 0x03, 38, 0x68}
	m, n, err := DecodeWithContext(data, complexCtx())
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, ChannelVoice{Channel: Ch1, Msg: ControlChange{Control: DataEntry{Value: 0x03<<7 | 0x68}}}, m)
}

// ============================================================
// Channel mode
// ============================================================

func TestChannelMode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  ChannelModeMsg
	}{
		{"all_sound_off", AllSoundOff{}},
		{"reset_all_controllers", ResetAllControllers{}},
		{"local_control_on", LocalControl{On: true}},
		{"local_control_off", LocalControl{On: false}},
		{"all_notes_off", AllNotesOff{}},
		{"omni_on", OmniMode{On: true}},
		{"omni_off", OmniMode{On: false}},
		{"mono", PolyMode{Mono: true, Channels: 4}},
		{"poly", PolyMode{Mono: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ChannelMode{Channel: Ch9, Msg: tt.msg}
			enc := Encode(msg)
			got, n, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, len(enc), n)
		})
	}
}

func TestChannelMode_DecodedEvenWithComplexCCOff(t *testing.T) {
	// Controllers 120-127 are mode messages, not voice CCs, regardless of
	// assembly configuration.
	m, _, err := Decode([]byte{0xB0, 123, 0})
	require.NoError(t, err)
	assert.Equal(t, ChannelMode{Channel: Ch1, Msg: AllNotesOff{}}, m)
}
