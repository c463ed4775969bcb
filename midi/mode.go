package midi

// Channel mode messages share status 0xB with control change but use
// controller numbers 120-127.

// ChannelModeMsg is a channel mode payload.
type ChannelModeMsg interface {
	channelModeMsg()
}

// AllSoundOff (CC 120) silences all voices immediately.
type AllSoundOff struct{}

// ResetAllControllers (CC 121) restores controller defaults.
type ResetAllControllers struct{}

// LocalControl (CC 122) connects or disconnects the local keyboard.
type LocalControl struct {
	On bool
}

// AllNotesOff (CC 123) releases all sounding notes.
type AllNotesOff struct{}

// OmniMode (CC 124 off / CC 125 on) selects omni reception.
type OmniMode struct {
	On bool
}

// PolyMode (CC 126 mono / CC 127 poly) selects between monophonic and
// polyphonic operation. Channels is the mono channel count; 0 means "as
// many as the receiver supports".
type PolyMode struct {
	Mono     bool
	Channels uint8
}

func (AllSoundOff) channelModeMsg()         {}
func (ResetAllControllers) channelModeMsg() {}
func (LocalControl) channelModeMsg()        {}
func (AllNotesOff) channelModeMsg()         {}
func (OmniMode) channelModeMsg()            {}
func (PolyMode) channelModeMsg()            {}

// appendChannelMode writes one mode message. withStatus is false for
// RunningChannelMode.
func appendChannelMode(buf []byte, ch Channel, m ChannelModeMsg, withStatus bool) []byte {
	if withStatus {
		buf = append(buf, statusControlChange|byte(ch&0x0F))
	}
	switch v := m.(type) {
	case AllSoundOff:
		buf = append(buf, 120, 0)
	case ResetAllControllers:
		buf = append(buf, 121, 0)
	case LocalControl:
		buf = append(buf, 122, onByte(v.On))
	case AllNotesOff:
		buf = append(buf, 123, 0)
	case OmniMode:
		if v.On {
			buf = append(buf, 125, 0)
		} else {
			buf = append(buf, 124, 0)
		}
	case PolyMode:
		if v.Mono {
			buf = append(buf, 126, clampU7(v.Channels))
		} else {
			buf = append(buf, 127, 0)
		}
	}
	return buf
}

func decodeChannelMode(control, value uint8) (ChannelModeMsg, error) {
	switch control {
	case 120:
		return AllSoundOff{}, nil
	case 121:
		return ResetAllControllers{}, nil
	case 122:
		return LocalControl{On: value >= 0x40}, nil
	case 123:
		return AllNotesOff{}, nil
	case 124:
		return OmniMode{On: false}, nil
	case 125:
		return OmniMode{On: true}, nil
	case 126:
		return PolyMode{Mono: true, Channels: value}, nil
	case 127:
		return PolyMode{Mono: false}, nil
	}
	return nil, errInvalid("bad channel mode controller %d", control)
}

func onByte(on bool) byte {
	if on {
		return 0x7F
	}
	return 0
}
