package midi

// Universal non-real-time sysex (envelope 0xF0 0x7E): sample dump,
// cueing setup, identity, file dump, bulk tuning, General MIDI mode,
// file reference and the dump handshake messages.
//
// The three sample-dump messages (sub-IDs 01-03) predate the two-byte
// sub-ID convention and have no sub-ID2.

// UniversalNonRealTimeMsg is a universal non-real-time payload.
type UniversalNonRealTimeMsg interface {
	universalNonRealTimeMsg()
}

// SampleDumpHeader (sub-ID 01) opens a sample dump. SamplePeriod is in
// nanoseconds; the length and loop fields count words.
type SampleDumpHeader struct {
	SampleNumber uint16
	Format       uint8 // significant bits per word
	SamplePeriod uint32
	SampleLength uint32
	LoopStart    uint32
	LoopEnd      uint32
	LoopType     uint8
}

// SampleDumpPacket (sub-ID 02) carries 120 bytes of sample words and
// closes with a checksum.
type SampleDumpPacket struct {
	PacketNumber uint8
	Data         [120]uint8
}

// SampleDumpRequest (sub-ID 03) asks for a dump of one sample.
type SampleDumpRequest struct {
	SampleNumber uint16
}

// TimeCodeCueingSetup (sub-ID 04) installs a cueing event at a SMPTE
// address before the transport rolls; the real-time cueing message fires
// it later by event number.
type TimeCodeCueingSetup struct {
	Kind        CueingKind
	TimeCode    HighResTimeCode
	EventNumber uint16
	Info        []uint8
}

// LoopPointsTransmission (sub-ID 05 01) rewrites one loop of a sample.
type LoopPointsTransmission struct {
	SampleNumber uint16
	LoopNumber   uint16
	LoopType     uint8
	LoopStart    uint32
	LoopEnd      uint32
}

// LoopPointsRequest (sub-ID 05 02) asks for one loop's points.
type LoopPointsRequest struct {
	SampleNumber uint16
	LoopNumber   uint16
}

// ExtendedDumpHeader (sub-ID 05 05) is the wide-field dump header: the
// rate is in hertz rather than a period, and positions are 35-bit.
type ExtendedDumpHeader struct {
	SampleNumber uint16
	Format       uint8
	SampleRate   uint32
	SampleLength uint64
	LoopStart    uint64
	LoopEnd      uint64
	LoopType     uint8
	NumChannels  uint8
}

// ExtendedLoopPoints (sub-ID 05 07) is the 35-bit loop rewrite.
type ExtendedLoopPoints struct {
	SampleNumber uint16
	LoopNumber   uint16
	LoopType     uint8
	LoopStart    uint64
	LoopEnd      uint64
}

// ExtendedLoopPointsRequest (sub-ID 05 08).
type ExtendedLoopPointsRequest struct {
	SampleNumber uint16
	LoopNumber   uint16
}

// IdentityRequest (sub-ID 06 01) asks a device to identify itself.
type IdentityRequest struct{}

// IdentityReply (sub-ID 06 02) is the answer: manufacturer, 14-bit
// family and member codes, and a four-byte software revision.
type IdentityReply struct {
	Manufacturer     ManufacturerID
	Family           uint16
	FamilyMember     uint16
	SoftwareRevision [4]uint8
}

// FileDumpHeader (sub-ID 07 01) opens a file dump toward the requester.
type FileDumpHeader struct {
	SenderDevice DeviceID
	Type         [4]byte
	Length       uint32
	Name         []byte
}

// FileDumpPacket (sub-ID 07 02) carries up to 112 raw 8-bit bytes,
// packed seven-to-eight for the wire, and closes with a checksum.
type FileDumpPacket struct {
	PacketNumber uint8
	Data         []byte
}

// FileDumpRequest (sub-ID 07 03) asks a device for a named file.
type FileDumpRequest struct {
	RequesterDevice DeviceID
	Type            [4]byte
	Name            []byte
}

// TuningBulkDumpRequest (sub-ID 08 00) asks for one tuning program.
type TuningBulkDumpRequest struct {
	Program uint8
}

// TuningBulkDumpReply (sub-ID 08 01) is a whole tuning program: a
// 16-character name and one entry per note, closed with a checksum.
type TuningBulkDumpReply struct {
	Program uint8
	Name    [16]byte
	Tunings [128]Tuning
}

// GMMode selects a General MIDI system message.
type GMMode uint8

const (
	GMOn  GMMode = 0x01
	GMOff GMMode = 0x02
	GM2On GMMode = 0x03
)

// GeneralMidi (sub-ID 09) switches General MIDI mode on or off.
type GeneralMidi struct {
	Mode GMMode
}

// FileReferenceKind selects a file-reference operation.
type FileReferenceKind uint8

const (
	FileRefOpen           FileReferenceKind = 0x01
	FileRefSelectContents FileReferenceKind = 0x02
	FileRefOpenSelect     FileReferenceKind = 0x03
	FileRefClose          FileReferenceKind = 0x04
)

// FileReference (sub-ID 0B) opens, selects or closes a file by URL or
// local reference; Data is the operation-specific payload.
type FileReference struct {
	Kind    FileReferenceKind
	Context uint16
	Data    []byte
}

// Dump handshakes (sub-IDs 7B-7F). Each acknowledges or flow-controls
// one packet of an ongoing dump.
type EndOfFile struct{ PacketNumber uint8 }
type Wait struct{ PacketNumber uint8 }
type Cancel struct{ PacketNumber uint8 }
type NAK struct{ PacketNumber uint8 }
type ACK struct{ PacketNumber uint8 }

func (SampleDumpHeader) universalNonRealTimeMsg()          {}
func (SampleDumpPacket) universalNonRealTimeMsg()          {}
func (SampleDumpRequest) universalNonRealTimeMsg()         {}
func (TimeCodeCueingSetup) universalNonRealTimeMsg()       {}
func (LoopPointsTransmission) universalNonRealTimeMsg()    {}
func (LoopPointsRequest) universalNonRealTimeMsg()         {}
func (ExtendedDumpHeader) universalNonRealTimeMsg()        {}
func (ExtendedLoopPoints) universalNonRealTimeMsg()        {}
func (ExtendedLoopPointsRequest) universalNonRealTimeMsg() {}
func (IdentityRequest) universalNonRealTimeMsg()           {}
func (IdentityReply) universalNonRealTimeMsg()             {}
func (FileDumpHeader) universalNonRealTimeMsg()            {}
func (FileDumpPacket) universalNonRealTimeMsg()            {}
func (FileDumpRequest) universalNonRealTimeMsg()           {}
func (TuningBulkDumpRequest) universalNonRealTimeMsg()     {}
func (TuningBulkDumpReply) universalNonRealTimeMsg()       {}
func (GeneralMidi) universalNonRealTimeMsg()               {}
func (FileReference) universalNonRealTimeMsg()             {}
func (EndOfFile) universalNonRealTimeMsg()                 {}
func (Wait) universalNonRealTimeMsg()                      {}
func (Cancel) universalNonRealTimeMsg()                    {}
func (NAK) universalNonRealTimeMsg()                       {}
func (ACK) universalNonRealTimeMsg()                       {}

// ============================================================
// Encoding
// ============================================================

func appendUniversalNonRealTime(buf []byte, start int, m UniversalNonRealTimeMsg) []byte {
	switch v := m.(type) {
	case SampleDumpHeader:
		buf = appendU14(append(buf, 0x01), v.SampleNumber)
		buf = append(buf, clampU7(v.Format))
		buf = appendU21(buf, v.SamplePeriod)
		buf = appendU21(buf, v.SampleLength)
		buf = appendU21(buf, v.LoopStart)
		buf = appendU21(buf, v.LoopEnd)
		return append(buf, clampU7(v.LoopType))
	case SampleDumpPacket:
		buf = append(buf, 0x02, clampU7(v.PacketNumber))
		for _, b := range v.Data {
			buf = append(buf, b&0x7F)
		}
		return appendPacketChecksum(buf, start)
	case SampleDumpRequest:
		return appendU14(append(buf, 0x03), v.SampleNumber)
	case TimeCodeCueingSetup:
		buf = append(buf, 0x04, byte(v.Kind)&0x7F)
		buf = v.TimeCode.appendFullFrame(buf)
		// Cueing event numbers are MSB-first on the wire.
		buf = appendU14MSB(buf, v.EventNumber)
		for _, b := range v.Info {
			buf = append(buf, clampU7(b))
		}
		return buf
	case LoopPointsTransmission:
		buf = appendU14(append(buf, 0x05, 0x01), v.SampleNumber)
		buf = appendU14(buf, v.LoopNumber)
		buf = append(buf, clampU7(v.LoopType))
		buf = appendU21(buf, v.LoopStart)
		return appendU21(buf, v.LoopEnd)
	case LoopPointsRequest:
		buf = appendU14(append(buf, 0x05, 0x02), v.SampleNumber)
		return appendU14(buf, v.LoopNumber)
	case ExtendedDumpHeader:
		buf = appendU14(append(buf, 0x05, 0x05), v.SampleNumber)
		buf = append(buf, clampU7(v.Format))
		buf = appendU28(buf, v.SampleRate)
		buf = appendU35(buf, v.SampleLength)
		buf = appendU35(buf, v.LoopStart)
		buf = appendU35(buf, v.LoopEnd)
		return append(buf, clampU7(v.LoopType), clampU7(v.NumChannels))
	case ExtendedLoopPoints:
		buf = appendU14(append(buf, 0x05, 0x07), v.SampleNumber)
		buf = appendU14(buf, v.LoopNumber)
		buf = append(buf, clampU7(v.LoopType))
		buf = appendU35(buf, v.LoopStart)
		return appendU35(buf, v.LoopEnd)
	case ExtendedLoopPointsRequest:
		buf = appendU14(append(buf, 0x05, 0x08), v.SampleNumber)
		return appendU14(buf, v.LoopNumber)
	case IdentityRequest:
		return append(buf, 0x06, 0x01)
	case IdentityReply:
		buf = append(buf, 0x06, 0x02)
		buf = v.Manufacturer.appendTo(buf)
		buf = appendU14(buf, v.Family)
		buf = appendU14(buf, v.FamilyMember)
		for _, b := range v.SoftwareRevision {
			buf = append(buf, clampU7(b))
		}
		return buf
	case FileDumpHeader:
		buf = append(buf, 0x07, 0x01, clampU7(uint8(v.SenderDevice)))
		buf = append(buf, v.Type[0]&0x7F, v.Type[1]&0x7F, v.Type[2]&0x7F, v.Type[3]&0x7F)
		buf = appendU28(buf, v.Length)
		for _, b := range v.Name {
			buf = append(buf, b&0x7F)
		}
		return buf
	case FileDumpPacket:
		raw := v.Data
		if len(raw) > 112 {
			raw = raw[:112]
		}
		packed := packFileDumpData(raw)
		if len(packed) == 0 {
			// An empty packet still carries one group header so the
			// count byte (packed length minus one) stays in range.
			packed = []byte{0x00}
		}
		buf = append(buf, 0x07, 0x02, clampU7(v.PacketNumber), byte(len(packed)-1)&0x7F)
		buf = append(buf, packed...)
		return appendPacketChecksum(buf, start)
	case FileDumpRequest:
		buf = append(buf, 0x07, 0x03, clampU7(uint8(v.RequesterDevice)))
		buf = append(buf, v.Type[0]&0x7F, v.Type[1]&0x7F, v.Type[2]&0x7F, v.Type[3]&0x7F)
		for _, b := range v.Name {
			buf = append(buf, b&0x7F)
		}
		return buf
	case TuningBulkDumpRequest:
		return append(buf, 0x08, 0x00, clampU7(v.Program))
	case TuningBulkDumpReply:
		buf = append(buf, 0x08, 0x01, clampU7(v.Program))
		for _, b := range v.Name {
			buf = append(buf, b&0x7F)
		}
		for _, t := range v.Tunings {
			buf = t.appendTo(buf)
		}
		return appendPacketChecksum(buf, start)
	case GeneralMidi:
		return append(buf, 0x09, byte(v.Mode)&0x7F)
	case FileReference:
		buf = append(buf, 0x0B, byte(v.Kind)&0x7F)
		buf = appendU14(buf, v.Context)
		for _, b := range v.Data {
			buf = append(buf, b&0x7F)
		}
		return buf
	case EndOfFile:
		return append(buf, 0x7B, clampU7(v.PacketNumber))
	case Wait:
		return append(buf, 0x7C, clampU7(v.PacketNumber))
	case Cancel:
		return append(buf, 0x7D, clampU7(v.PacketNumber))
	case NAK:
		return append(buf, 0x7E, clampU7(v.PacketNumber))
	case ACK:
		return append(buf, 0x7F, clampU7(v.PacketNumber))
	}
	return buf
}

// packFileDumpData encodes raw 8-bit bytes as 8-byte wire groups: a
// header byte whose bit 6 holds the top bit of the first data byte, bit
// 5 the second and so on, followed by up to seven 7-bit data bytes.
func packFileDumpData(raw []byte) []byte {
	packed := make([]byte, 0, len(raw)+(len(raw)+6)/7)
	for i := 0; i < len(raw); i += 7 {
		chunk := raw[i:]
		if len(chunk) > 7 {
			chunk = chunk[:7]
		}
		var header byte
		for j, b := range chunk {
			if b&0x80 != 0 {
				header |= 1 << (6 - j)
			}
		}
		packed = append(packed, header)
		for _, b := range chunk {
			packed = append(packed, b&0x7F)
		}
	}
	return packed
}

func unpackFileDumpData(packed []byte) []byte {
	raw := make([]byte, 0, len(packed))
	for i := 0; i < len(packed); i += 8 {
		group := packed[i:]
		if len(group) > 8 {
			group = group[:8]
		}
		header := group[0]
		for j, b := range group[1:] {
			raw = append(raw, b|(header>>(6-j)&1)<<7)
		}
	}
	return raw
}

// ============================================================
// Decoding
// ============================================================

func decodeUniversalNonRealTime(r *reader) (UniversalNonRealTimeMsg, error) {
	sub1, err := r.u7()
	if err != nil {
		return nil, err
	}

	switch sub1 {
	case 0x01:
		return decodeSampleDumpHeader(r)
	case 0x02:
		return decodeSampleDumpPacket(r)
	case 0x03:
		n, err := r.u14()
		if err != nil {
			return nil, err
		}
		return SampleDumpRequest{SampleNumber: n}, nil
	case 0x04:
		return decodeCueingSetup(r)
	case 0x05:
		return decodeSampleDumpExtension(r)
	case 0x06:
		return decodeGeneralInformation(r)
	case 0x07:
		return decodeFileDump(r)
	case 0x08:
		return decodeBulkTuning(r)
	case 0x09:
		mode, err := r.u7()
		if err != nil {
			return nil, err
		}
		if mode < uint8(GMOn) || mode > uint8(GM2On) {
			return nil, errInvalid("bad General MIDI sub-ID 0x%02X", mode)
		}
		return GeneralMidi{Mode: GMMode(mode)}, nil
	case 0x0B:
		return decodeFileReference(r)
	case 0x7B, 0x7C, 0x7D, 0x7E, 0x7F:
		pn, err := r.u7()
		if err != nil {
			return nil, err
		}
		switch sub1 {
		case 0x7B:
			return EndOfFile{PacketNumber: pn}, nil
		case 0x7C:
			return Wait{PacketNumber: pn}, nil
		case 0x7D:
			return Cancel{PacketNumber: pn}, nil
		case 0x7E:
			return NAK{PacketNumber: pn}, nil
		default:
			return ACK{PacketNumber: pn}, nil
		}
	}
	return nil, errInvalid("bad universal non-real-time sub-ID 0x%02X", sub1)
}

func decodeSampleDumpHeader(r *reader) (UniversalNonRealTimeMsg, error) {
	var m SampleDumpHeader
	var err error
	if m.SampleNumber, err = r.u14(); err != nil {
		return nil, err
	}
	if m.Format, err = r.u7(); err != nil {
		return nil, err
	}
	if m.SamplePeriod, err = r.u21(); err != nil {
		return nil, err
	}
	if m.SampleLength, err = r.u21(); err != nil {
		return nil, err
	}
	if m.LoopStart, err = r.u21(); err != nil {
		return nil, err
	}
	if m.LoopEnd, err = r.u21(); err != nil {
		return nil, err
	}
	if m.LoopType, err = r.u7(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeSampleDumpPacket(r *reader) (UniversalNonRealTimeMsg, error) {
	pn, err := r.u7()
	if err != nil {
		return nil, err
	}
	data, err := r.take7(120)
	if err != nil {
		return nil, err
	}
	if _, err := r.u7(); err != nil { // checksum, recomputed on encode
		return nil, err
	}
	m := SampleDumpPacket{PacketNumber: pn}
	copy(m.Data[:], data)
	return m, nil
}

func decodeCueingSetup(r *reader) (UniversalNonRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	if sub2 > uint8(CueEventName) {
		return nil, errInvalid("bad cueing setup sub-ID 0x%02X", sub2)
	}
	tc, err := readHighResTimeCode(r)
	if err != nil {
		return nil, err
	}
	ev, err := r.u14MSB()
	if err != nil {
		return nil, err
	}
	m := TimeCodeCueingSetup{Kind: CueingKind(sub2), TimeCode: tc, EventNumber: ev}
	if rest := r.rest(); len(rest) > 0 {
		m.Info = rest
	}
	return m, nil
}

func decodeSampleDumpExtension(r *reader) (UniversalNonRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	sample, err := r.u14()
	if err != nil {
		return nil, err
	}

	switch sub2 {
	case 0x01:
		m := LoopPointsTransmission{SampleNumber: sample}
		if m.LoopNumber, err = r.u14(); err != nil {
			return nil, err
		}
		if m.LoopType, err = r.u7(); err != nil {
			return nil, err
		}
		if m.LoopStart, err = r.u21(); err != nil {
			return nil, err
		}
		if m.LoopEnd, err = r.u21(); err != nil {
			return nil, err
		}
		return m, nil
	case 0x02:
		loop, err := r.u14()
		if err != nil {
			return nil, err
		}
		return LoopPointsRequest{SampleNumber: sample, LoopNumber: loop}, nil
	case 0x05:
		m := ExtendedDumpHeader{SampleNumber: sample}
		if m.Format, err = r.u7(); err != nil {
			return nil, err
		}
		if m.SampleRate, err = r.u28(); err != nil {
			return nil, err
		}
		if m.SampleLength, err = r.u35(); err != nil {
			return nil, err
		}
		if m.LoopStart, err = r.u35(); err != nil {
			return nil, err
		}
		if m.LoopEnd, err = r.u35(); err != nil {
			return nil, err
		}
		if m.LoopType, err = r.u7(); err != nil {
			return nil, err
		}
		if m.NumChannels, err = r.u7(); err != nil {
			return nil, err
		}
		return m, nil
	case 0x07:
		m := ExtendedLoopPoints{SampleNumber: sample}
		if m.LoopNumber, err = r.u14(); err != nil {
			return nil, err
		}
		if m.LoopType, err = r.u7(); err != nil {
			return nil, err
		}
		if m.LoopStart, err = r.u35(); err != nil {
			return nil, err
		}
		if m.LoopEnd, err = r.u35(); err != nil {
			return nil, err
		}
		return m, nil
	case 0x08:
		loop, err := r.u14()
		if err != nil {
			return nil, err
		}
		return ExtendedLoopPointsRequest{SampleNumber: sample, LoopNumber: loop}, nil
	}
	return nil, errInvalid("bad sample dump extension sub-ID 0x%02X", sub2)
}

func decodeGeneralInformation(r *reader) (UniversalNonRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	switch sub2 {
	case 0x01:
		return IdentityRequest{}, nil
	case 0x02:
		var m IdentityReply
		if m.Manufacturer, err = readManufacturerID(r); err != nil {
			return nil, err
		}
		if m.Family, err = r.u14(); err != nil {
			return nil, err
		}
		if m.FamilyMember, err = r.u14(); err != nil {
			return nil, err
		}
		rev, err := r.take7(4)
		if err != nil {
			return nil, err
		}
		copy(m.SoftwareRevision[:], rev)
		return m, nil
	}
	return nil, errInvalid("bad general information sub-ID 0x%02X", sub2)
}

func decodeFileDump(r *reader) (UniversalNonRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	switch sub2 {
	case 0x01:
		device, err := r.u7()
		if err != nil {
			return nil, err
		}
		typ, err := r.take7(4)
		if err != nil {
			return nil, err
		}
		length, err := r.u28()
		if err != nil {
			return nil, err
		}
		m := FileDumpHeader{SenderDevice: DeviceID(device), Length: length}
		copy(m.Type[:], typ)
		if rest := r.rest(); len(rest) > 0 {
			m.Name = rest
		}
		return m, nil
	case 0x02:
		pn, err := r.u7()
		if err != nil {
			return nil, err
		}
		count, err := r.u7()
		if err != nil {
			return nil, err
		}
		packed, err := r.take7(int(count) + 1)
		if err != nil {
			return nil, err
		}
		if _, err := r.u7(); err != nil { // checksum
			return nil, err
		}
		m := FileDumpPacket{PacketNumber: pn}
		if data := unpackFileDumpData(packed); len(data) > 0 {
			m.Data = data
		}
		return m, nil
	case 0x03:
		device, err := r.u7()
		if err != nil {
			return nil, err
		}
		typ, err := r.take7(4)
		if err != nil {
			return nil, err
		}
		m := FileDumpRequest{RequesterDevice: DeviceID(device)}
		copy(m.Type[:], typ)
		if rest := r.rest(); len(rest) > 0 {
			m.Name = rest
		}
		return m, nil
	}
	return nil, errInvalid("bad file dump sub-ID 0x%02X", sub2)
}

func decodeBulkTuning(r *reader) (UniversalNonRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	switch sub2 {
	case 0x00:
		program, err := r.u7()
		if err != nil {
			return nil, err
		}
		return TuningBulkDumpRequest{Program: program}, nil
	case 0x01:
		program, err := r.u7()
		if err != nil {
			return nil, err
		}
		name, err := r.take7(16)
		if err != nil {
			return nil, err
		}
		m := TuningBulkDumpReply{Program: program}
		copy(m.Name[:], name)
		for i := range m.Tunings {
			if m.Tunings[i], err = readTuning(r); err != nil {
				return nil, err
			}
		}
		if _, err := r.u7(); err != nil { // checksum
			return nil, err
		}
		return m, nil
	}
	return nil, errInvalid("bad bulk tuning sub-ID 0x%02X", sub2)
}

func decodeFileReference(r *reader) (UniversalNonRealTimeMsg, error) {
	sub2, err := r.u7()
	if err != nil {
		return nil, err
	}
	if sub2 < uint8(FileRefOpen) || sub2 > uint8(FileRefClose) {
		return nil, errInvalid("bad file reference sub-ID 0x%02X", sub2)
	}
	ctx, err := r.u14()
	if err != nil {
		return nil, err
	}
	m := FileReference{Kind: FileReferenceKind(sub2), Context: ctx}
	if rest := r.rest(); len(rest) > 0 {
		m.Data = rest
	}
	return m, nil
}
