// mididump - MIDI wire and file inspector
//
// Usage:
//
//	mididump file [file.mid]             Dump a Standard MIDI File
//	mididump stream [--complex-cc] [file]  Decode raw MIDI bytes and print
//	mididump version                     Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"midiwire/midi"
	"midiwire/smf"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	complexCC := false
	fileArg := ""
	for _, arg := range os.Args[2:] {
		switch {
		case arg == "--complex-cc":
			complexCC = true
		default:
			if arg != "-" {
				fileArg = arg
			}
		}
	}

	var input io.Reader = os.Stdin
	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	switch cmd {
	case "file":
		cmdFile(input)
	case "stream":
		cmdStream(input, complexCC)
	case "version", "-v", "--version":
		fmt.Printf("mididump %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func cmdFile(input io.Reader) {
	data, err := io.ReadAll(input)
	if err != nil {
		fatal("read input: %v", err)
	}
	file, err := smf.Decode(data)
	if err != nil {
		if fe, ok := err.(*smf.FileError); ok && fe.Partial != nil {
			fmt.Fprintf(os.Stderr, "mididump: %v\n", fe)
			fmt.Fprintf(os.Stderr, "dumping the %d tracks decoded before the failure\n",
				len(fe.Partial.Tracks))
			file = fe.Partial
		} else {
			fatal("%v", err)
		}
	}

	fmt.Printf("format %d, %d tracks, division %s\n",
		file.Header.Format, file.Header.NumTracks, divisionString(file.Header.Division))
	for i, t := range file.Tracks {
		switch v := t.(type) {
		case smf.AlienChunk:
			fmt.Printf("chunk %d: %q, %d bytes (not MTrk, preserved)\n", i, v.Type[:], len(v.Data))
		case smf.MIDITrack:
			fmt.Printf("track %d: %d events\n", i, len(v.Events))
			var tick uint64
			for _, ev := range v.Events {
				tick += uint64(ev.DeltaTime)
				fmt.Printf("  %8d  %s\n", tick, ev.Event)
			}
		}
	}
}

func cmdStream(input io.Reader, complexCC bool) {
	data, err := io.ReadAll(input)
	if err != nil {
		fatal("read input: %v", err)
	}

	ctx := midi.NewReceiverContext()
	ctx.ComplexCC = complexCC

	offset := 0
	for offset < len(data) {
		m, n, err := midi.DecodeWithContext(data[offset:], ctx)
		if err != nil {
			fatal("offset %d: %v", offset, err)
		}
		fmt.Printf("%6d  % X  %s\n", offset, data[offset:offset+n], m)
		offset += n
	}
}

func divisionString(d smf.Division) string {
	switch v := d.(type) {
	case smf.TicksPerQuarterNote:
		return fmt.Sprintf("%d ticks/quarter", uint16(v))
	case smf.TimeCodeDivision:
		return fmt.Sprintf("%d fps, %d ticks/frame", v.FPS, v.TicksPerFrame)
	default:
		return "unknown"
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `mididump - MIDI wire and file inspector

Usage:
  mididump file [file.mid]               Dump a Standard MIDI File
  mididump stream [--complex-cc] [file]  Decode raw MIDI bytes and print
  mididump version                       Print version info

Options:
  --complex-cc    Assemble CC pairs, RPN/NRPN and high-res velocity

If no file is given, reads from stdin.
`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "mididump: "+format+"\n", args...)
	os.Exit(1)
}
