package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSysEx_IdentityRequest(t *testing.T) {
	// F0 7E 7F 06 01 F7
	data := []byte{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7}
	m, n, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, SystemExclusive{Msg: UniversalNonRealTime{
		Device: AllCall, Msg: IdentityRequest{}}}, m)

	assert.Equal(t, data, Encode(m))
}

func TestSysEx_CommercialEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		msg  SysExMsg
	}{
		{"short_id", Commercial{ID: ManufacturerID{ID: 0x43}, Data: []byte{0x10, 0x4C, 0x00}}},
		{"extended_id", Commercial{ID: ManufacturerID{ID: 0x2011, Extended: true}, Data: []byte{0x01}}},
		{"non_commercial", NonCommercial{Data: []byte{0x01, 0x02, 0x03}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := Encode(SystemExclusive{Msg: tt.msg})
			got, n, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, SystemExclusive{Msg: tt.msg}, got)
			assert.Equal(t, len(enc), n)
		})
	}
}

func TestSysEx_MissingTerminator(t *testing.T) {
	_, _, err := Decode([]byte{0xF0, 0x43, 0x10})
	pe, ok := err.(*ParseError)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, NoEndOfSystemExclusiveFlag, pe.Kind)
}

func TestSysEx_CancelsRunningStatus(t *testing.T) {
	ctx := NewReceiverContext()
	_, n, err := DecodeWithContext([]byte{0x90, 0x3C, 0x64}, ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, _, err = DecodeWithContext([]byte{0xF0, 0x7D, 0xF7}, ctx)
	require.NoError(t, err)

	_, _, err = DecodeWithContext([]byte{0x3D, 0x64}, ctx)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ContextlessRunningStatus, pe.Kind)
}

// ============================================================
// Universal real-time
// ============================================================

func TestUniversalRealTime_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  UniversalRealTimeMsg
	}{
		{"full_time_code", FullTimeCode{TimeCode: TimeCode{
			Frames: 12, Seconds: 34, Minutes: 56, Hours: 7, CodeType: NDF30}}},
		{"user_bits", TimeCodeUserBits{UserBits: UserBits{
			Data: [4]uint8{0xAB, 0xCD, 0x12, 0x34}, Flags: 0x02}}},
		{"show_control", ShowControl{Data: []byte{0x01, 0x02, 0x0A}}},
		{"bar_marker", BarMarker{Bar: -3}},
		{"time_signature", RTTimeSignature{
			Numerator: 6, Denominator: 3, ClocksPerClick: 24, ThirtySecondsPerQuarter: 8}},
		{"time_signature_delayed", RTTimeSignature{Delayed: true,
			Numerator: 4, Denominator: 2, ClocksPerClick: 24, ThirtySecondsPerQuarter: 8,
			Extra: []uint8{3, 3}}},
		{"master_volume", MasterVolume{Volume: 16000}},
		{"master_balance", MasterBalance{Balance: 8192}},
		{"master_fine_tuning", MasterFineTuning{Cents: -512}},
		{"master_coarse_tuning", MasterCoarseTuning{Semitones: 12}},
		{"global_parameter_control", GlobalParameterControl{
			SlotPaths:  [][2]uint8{{0x01, 0x09}},
			ParamWidth: 1, ValueWidth: 1,
			Params: []uint8{0x00, 0x05}}},
		{"cueing_punch_in", TimeCodeCueing{Kind: CuePunchIn, EventNumber: 300}},
		{"cueing_event_name", TimeCodeCueing{Kind: CueEventName, EventNumber: 1,
			Info: []uint8{'t', 'a', 'k', 'e'}}},
		{"mmc_play", MachineControlCommand{Data: []byte{MMCPlay}}},
		{"mmc_response", MachineControlResponse{Data: []byte{0x01, 0x48}}},
		{"tuning_note_change", TuningNoteChange{Program: 3, Changes: []NoteTuning{
			{Note: 60, Tuning: Tuning{Semitone: 60, Fraction: 0x1000}},
			{Note: 61, Tuning: NoChange},
		}}},
		{"controller_destination", ControllerDestination{
			Source: SourceController, Channel: Ch3, Controller: 1,
			Destinations: [][2]uint8{{0x01, 0x40}}}},
		{"channel_pressure_destination", ControllerDestination{
			Source: SourceChannelPressure, Channel: Ch1,
			Destinations: [][2]uint8{{0x00, 0x7F}, {0x03, 0x20}}}},
		{"key_based_instrument_control", KeyBasedInstrumentControl{
			Channel: Ch10, Note: 38, Controls: [][2]uint8{{0x07, 0x64}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := SystemExclusive{Msg: UniversalRealTime{Device: 0x05, Msg: tt.msg}}
			enc := Encode(msg)
			assert.Equal(t, byte(0xF0), enc[0])
			assert.Equal(t, byte(0x7F), enc[1])
			assert.Equal(t, byte(0xF7), enc[len(enc)-1])

			got, n, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, len(enc), n)
		})
	}
}

// ============================================================
// Universal non-real-time
// ============================================================

func TestUniversalNonRealTime_RoundTrip(t *testing.T) {
	packet := SampleDumpPacket{PacketNumber: 5}
	for i := range packet.Data {
		packet.Data[i] = uint8(i % 0x80)
	}
	var reply TuningBulkDumpReply
	reply.Program = 9
	copy(reply.Name[:], "equal tempered  ")
	for i := range reply.Tunings {
		reply.Tunings[i] = Tuning{Semitone: uint8(i % 128), Fraction: uint16(i * 3 % 0x3FFF)}
	}

	tests := []struct {
		name string
		msg  UniversalNonRealTimeMsg
	}{
		{"sample_dump_header", SampleDumpHeader{
			SampleNumber: 10, Format: 16, SamplePeriod: 22675,
			SampleLength: 100000, LoopStart: 100, LoopEnd: 99000, LoopType: 1}},
		{"sample_dump_packet", packet},
		{"sample_dump_request", SampleDumpRequest{SampleNumber: 77}},
		{"cueing_setup", TimeCodeCueingSetup{Kind: CueCuePoint,
			TimeCode: HighResTimeCode{
				TimeCode:         TimeCode{Frames: 1, Seconds: 2, Minutes: 3, Hours: 4, CodeType: FPS24},
				FractionalFrames: 50},
			EventNumber: 9, Info: []uint8{0x10}}},
		{"loop_points_transmission", LoopPointsTransmission{
			SampleNumber: 1, LoopNumber: 2, LoopType: 0, LoopStart: 1000, LoopEnd: 2000}},
		{"loop_points_request", LoopPointsRequest{SampleNumber: 1, LoopNumber: 2}},
		{"extended_dump_header", ExtendedDumpHeader{
			SampleNumber: 3, Format: 24, SampleRate: 96000,
			SampleLength: 1 << 30, LoopStart: 0, LoopEnd: 1<<30 - 1,
			LoopType: 127, NumChannels: 2}},
		{"extended_loop_points", ExtendedLoopPoints{
			SampleNumber: 3, LoopNumber: 1, LoopType: 1,
			LoopStart: 1 << 22, LoopEnd: 1 << 23}},
		{"extended_loop_points_request", ExtendedLoopPointsRequest{SampleNumber: 3, LoopNumber: 1}},
		{"identity_request", IdentityRequest{}},
		{"identity_reply", IdentityReply{
			Manufacturer: ManufacturerID{ID: 0x41},
			Family:       0x0203, FamilyMember: 0x0405,
			SoftwareRevision: [4]uint8{1, 0, 0, 0}}},
		{"identity_reply_extended_id", IdentityReply{
			Manufacturer: ManufacturerID{ID: 0x2109, Extended: true},
			Family:       1, FamilyMember: 2}},
		{"file_dump_header", FileDumpHeader{
			SenderDevice: 3, Type: [4]byte{'M', 'I', 'D', 'I'},
			Length: 1234, Name: []byte("song.mid")}},
		{"file_dump_packet", FileDumpPacket{
			PacketNumber: 2, Data: []byte{0x00, 0xFF, 0x80, 0x7F, 0x55}}},
		{"file_dump_packet_empty", FileDumpPacket{PacketNumber: 3}},
		{"file_dump_request", FileDumpRequest{
			RequesterDevice: 4, Type: [4]byte{'M', 'I', 'D', 'I'}, Name: []byte("song.mid")}},
		{"tuning_bulk_dump_request", TuningBulkDumpRequest{Program: 9}},
		{"tuning_bulk_dump_reply", reply},
		{"gm_on", GeneralMidi{Mode: GMOn}},
		{"gm_off", GeneralMidi{Mode: GMOff}},
		{"gm2_on", GeneralMidi{Mode: GM2On}},
		{"file_reference", FileReference{Kind: FileRefOpen, Context: 1,
			Data: []byte("file://a")}},
		{"eof", EndOfFile{PacketNumber: 3}},
		{"wait", Wait{PacketNumber: 4}},
		{"cancel", Cancel{PacketNumber: 5}},
		{"nak", NAK{PacketNumber: 6}},
		{"ack", ACK{PacketNumber: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := SystemExclusive{Msg: UniversalNonRealTime{Device: 0x10, Msg: tt.msg}}
			enc := Encode(msg)
			got, n, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, len(enc), n)
		})
	}
}

func TestSysEx_ChecksumLaw(t *testing.T) {
	// For packet-style messages the byte before F7 is the XOR of every
	// byte between F0 and the checksum itself.
	packet := SampleDumpPacket{PacketNumber: 1}
	for i := range packet.Data {
		packet.Data[i] = uint8((i * 7) % 0x80)
	}
	msgs := []SysExMsg{
		UniversalNonRealTime{Device: 0x02, Msg: packet},
		UniversalNonRealTime{Device: 0x02, Msg: FileDumpPacket{
			PacketNumber: 2, Data: []byte{0x00, 0xFF, 0x80, 0x7F, 0x55}}},
	}
	for _, m := range msgs {
		enc := Encode(SystemExclusive{Msg: m})
		require.Greater(t, len(enc), 3)
		body := enc[1 : len(enc)-2]
		checksum := enc[len(enc)-2]
		assert.Equal(t, xorChecksum(body), checksum)
	}
}

func TestFileDumpPacket_EmptyEncodesDecodably(t *testing.T) {
	// Zero data bytes still produce a well-formed packet: one group
	// header, count byte zero.
	enc := Encode(SystemExclusive{Msg: UniversalNonRealTime{
		Device: 0x10, Msg: FileDumpPacket{PacketNumber: 1}}})
	assert.Equal(t, byte(0x00), enc[6], "count byte")

	got, n, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, len(enc), n)
	assert.Equal(t, SystemExclusive{Msg: UniversalNonRealTime{
		Device: 0x10, Msg: FileDumpPacket{PacketNumber: 1}}}, got)
}

func TestSysEx_RejectsStatusByteInFixedPayload(t *testing.T) {
	packet := SampleDumpPacket{PacketNumber: 1}
	enc := Encode(SystemExclusive{Msg: UniversalNonRealTime{Device: 0x02, Msg: packet}})

	// F0 7E dev 02 pn <data[0] ...>: corrupt a sample word byte.
	enc[5] = 0x85
	_, _, err := Decode(enc)
	pe, ok := err.(*ParseError)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, ByteOverflow, pe.Kind)
	assert.Equal(t, byte(0x85), pe.Byte)
}

func TestFileDumpData_Packing(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"one_byte_high_bit", []byte{0xFF}},
		{"seven_bytes", []byte{0x80, 0x01, 0x82, 0x03, 0x84, 0x05, 0x86}},
		{"partial_group", []byte{0xAA, 0x55, 0xCC}},
		{"max_packet", func() []byte {
			b := make([]byte, 112)
			for i := range b {
				b[i] = uint8(255 - i)
			}
			return b
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := packFileDumpData(tt.raw)
			for _, b := range packed {
				assert.Less(t, b, uint8(0x80), "packed bytes are 7-bit")
			}
			got := unpackFileDumpData(packed)
			if len(tt.raw) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.raw, got)
			}
			// Encoded length field law.
			if n := len(tt.raw); n > 0 {
				want := (n*8+6)/7 - 1
				assert.Equal(t, want, len(packed)-1)
			}
		})
	}
}

func TestManufacturerID_Wire(t *testing.T) {
	short := ManufacturerID{ID: 0x43}
	assert.Equal(t, []byte{0x43}, short.appendTo(nil))

	ext := ManufacturerID{ID: 0x2011, Extended: true}
	assert.Equal(t, []byte{0x00, 0x40, 0x11}, ext.appendTo(nil))
}
