package smf

import (
	"encoding/binary"
	"io"
)

// Format is the SMF format word.
type Format uint16

const (
	// SingleTrack files hold one track.
	SingleTrack Format = 0
	// MultiTrack files hold simultaneous tracks of one song.
	MultiTrack Format = 1
	// MultiSong files hold independent single-track patterns.
	MultiSong Format = 2
)

// Division is the meaning of delta-time ticks, from the header's third
// word: either ticks per quarter note, or a SMPTE frame rate with ticks
// per frame.
type Division interface {
	division()
	appendTo(buf []byte) []byte
}

// TicksPerQuarterNote is the metrical division; 15 bits.
type TicksPerQuarterNote uint16

// TimeCodeDivision is the SMPTE division. FPS is 24, 25, 29 (drop-30)
// or 30 and is stored negated in two's complement on disk.
type TimeCodeDivision struct {
	FPS           uint8
	TicksPerFrame uint8
}

func (TicksPerQuarterNote) division() {}
func (TimeCodeDivision) division()    {}

func (d TicksPerQuarterNote) appendTo(buf []byte) []byte {
	return binary.BigEndian.AppendUint16(buf, uint16(d)&0x7FFF)
}

func (d TimeCodeDivision) appendTo(buf []byte) []byte {
	return append(buf, byte(-int8(d.FPS)), d.TicksPerFrame)
}

// Header is the MThd chunk. NumTracks is kept as stored rather than
// derived from the track list, so files whose header disagrees with
// their contents re-encode unchanged; constructors must set it.
type Header struct {
	Format    Format
	NumTracks uint16
	Division  Division
}

// File is a decoded Standard MIDI File.
type File struct {
	Header Header
	Tracks []Track
}

const headerChunkLen = 6

// Decode parses a complete Standard MIDI File. Failures return a
// *FileError carrying the offset and any tracks decoded before it.
func Decode(data []byte) (*File, error) {
	if len(data) < 8+headerChunkLen {
		return nil, fileErr(errUnexpectedEnd(), data, 0, nil, "header chunk")
	}
	if string(data[0:4]) != "MThd" {
		return nil, fileErr(errInvalidf("bad header tag %q", data[0:4]), data, 0, nil, "header chunk")
	}
	if l := binary.BigEndian.Uint32(data[4:8]); l != headerChunkLen {
		return nil, fileErr(errInvalidf("bad header length %d", l), data, 4, nil, "header chunk")
	}

	file := &File{Header: Header{
		Format:    Format(binary.BigEndian.Uint16(data[8:10])),
		NumTracks: binary.BigEndian.Uint16(data[10:12]),
		Division:  decodeDivision(data[12:14]),
	}}

	pos := 8 + headerChunkLen
	for pos < len(data) {
		if len(data)-pos < 8 {
			return nil, fileErr(errUnexpectedEnd(), data, pos, file, "chunk %d", len(file.Tracks))
		}
		var tag [4]byte
		copy(tag[:], data[pos:pos+4])
		length := int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		if len(data)-pos-8 < length {
			return nil, fileErr(errInvalidf("chunk length %d exceeds file", length),
				data, pos+4, file, "chunk %d", len(file.Tracks))
		}
		body := data[pos+8 : pos+8+length]

		if string(tag[:]) != "MTrk" {
			file.Tracks = append(file.Tracks, AlienChunk{Type: tag, Data: body})
			pos += 8 + length
			continue
		}
		track, off, err := decodeTrackEvents(body)
		if err != nil {
			return nil, fileErr(err, data, pos+8+off, file, "track %d", len(file.Tracks))
		}
		file.Tracks = append(file.Tracks, track)
		pos += 8 + length
	}
	return file, nil
}

func decodeDivision(word []byte) Division {
	if word[0]&0x80 != 0 {
		return TimeCodeDivision{FPS: uint8(-int8(word[0])), TicksPerFrame: word[1]}
	}
	return TicksPerQuarterNote(binary.BigEndian.Uint16(word))
}

// Encode serializes the file. Track chunk lengths are written as zero
// and back-patched once each body is closed.
func (f *File) Encode() []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, "MThd"...)
	buf = binary.BigEndian.AppendUint32(buf, headerChunkLen)
	buf = binary.BigEndian.AppendUint16(buf, uint16(f.Header.Format))
	buf = binary.BigEndian.AppendUint16(buf, f.Header.NumTracks)
	if f.Header.Division != nil {
		buf = f.Header.Division.appendTo(buf)
	} else {
		buf = TicksPerQuarterNote(0).appendTo(buf)
	}

	for _, t := range f.Tracks {
		buf = appendTrack(buf, t)
	}
	return buf
}

// EncodeTo writes the encoded file to w.
func (f *File) EncodeTo(w io.Writer) error {
	_, err := w.Write(f.Encode())
	return err
}
