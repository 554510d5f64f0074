package steep

import (
	"bytes"
	"unicode/utf8"
)

// Decoder turns raw input chunks into messages. The runtime feeds it every
// chunk the input reader delivers, in order, and forwards whatever messages
// it produces. Implementations may keep state across calls (escape sequences
// and pastes routinely span chunk boundaries).
type Decoder interface {
	Decode(chunk []byte) []Msg
}

// NewStandardDecoder returns a [Decoder] covering the common terminal input
// grammar: UTF-8 text, C0 control keys, CSI/SS3 cursor and function keys,
// alt-prefixed keys, and bracketed paste. Unrecognized escape sequences are
// dropped rather than leaked into the application as garbage runes.
//
// This is deliberately the common subset, not a terminfo database; programs
// talking to exotic terminals can supply their own Decoder.
func NewStandardDecoder() Decoder {
	return &standardDecoder{}
}

var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

// seqKeys maps complete escape sequences to keys.
var seqKeys = map[string]KeyType{
	"\x1b[A":  KeyUp,
	"\x1b[B":  KeyDown,
	"\x1b[C":  KeyRight,
	"\x1b[D":  KeyLeft,
	"\x1b[H":  KeyHome,
	"\x1b[F":  KeyEnd,
	"\x1b[Z":  KeyShiftTab,
	"\x1b[1~": KeyHome,
	"\x1b[2~": KeyInsert,
	"\x1b[3~": KeyDelete,
	"\x1b[4~": KeyEnd,
	"\x1b[5~": KeyPgUp,
	"\x1b[6~": KeyPgDown,
	"\x1b[7~": KeyHome,
	"\x1b[8~": KeyEnd,
	"\x1bOA":  KeyUp,
	"\x1bOB":  KeyDown,
	"\x1bOC":  KeyRight,
	"\x1bOD":  KeyLeft,
	"\x1bOH":  KeyHome,
	"\x1bOF":  KeyEnd,
	"\x1bOP":  KeyF1,
	"\x1bOQ":  KeyF2,
	"\x1bOR":  KeyF3,
	"\x1bOS":  KeyF4,
}

// ctrlKeys maps C0 bytes to keys, excluding the bytes with dedicated
// meanings (tab, enter, backspace, escape).
var ctrlKeys = map[byte]KeyType{
	0x01: KeyCtrlA,
	0x02: KeyCtrlB,
	0x03: KeyCtrlC,
	0x04: KeyCtrlD,
	0x05: KeyCtrlE,
	0x06: KeyCtrlF,
	0x07: KeyCtrlG,
	0x0b: KeyCtrlK,
	0x0c: KeyCtrlL,
	0x0e: KeyCtrlN,
	0x0f: KeyCtrlO,
	0x10: KeyCtrlP,
	0x11: KeyCtrlQ,
	0x12: KeyCtrlR,
	0x13: KeyCtrlS,
	0x14: KeyCtrlT,
	0x15: KeyCtrlU,
	0x16: KeyCtrlV,
	0x17: KeyCtrlW,
	0x18: KeyCtrlX,
	0x19: KeyCtrlY,
	0x1a: KeyCtrlZ,
}

// standardDecoder is a small state machine: pending holds bytes that could
// not be decoded yet (a split escape sequence, a split UTF-8 rune, or a
// paste still waiting for its end marker), pasting tracks bracketed-paste
// mode across chunks.
type standardDecoder struct {
	pending []byte
	pasting bool
}

func (d *standardDecoder) Decode(chunk []byte) []Msg {
	data := chunk
	if len(d.pending) > 0 {
		data = append(d.pending, chunk...)
		d.pending = nil
	}

	var msgs []Msg
	i := 0
	for i < len(data) {
		if d.pasting {
			idx := bytes.Index(data[i:], pasteEnd)
			if idx < 0 {
				// Paste still open; keep everything, including a
				// possible partial end marker, for the next chunk.
				d.pending = append(d.pending, data[i:]...)
				return msgs
			}
			msgs = append(msgs, PasteMsg(data[i:i+idx]))
			d.pasting = false
			i += idx + len(pasteEnd)
			continue
		}

		b := data[i]
		if b == 0x1b {
			msg, n, ok := d.decodeEscape(data[i:])
			if n == 0 {
				// Incomplete sequence; wait for more bytes.
				d.pending = append(d.pending, data[i:]...)
				return msgs
			}
			i += n
			if ok && msg != nil {
				msgs = append(msgs, msg)
			}
			continue
		}

		if key, ok := controlKey(b); ok {
			msgs = append(msgs, key)
			i++
			continue
		}
		if b < 0x20 || b == 0x7f {
			// Control byte with no mapping (NUL and friends).
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError {
			if !utf8.FullRune(data[i:]) {
				d.pending = append(d.pending, data[i:]...)
				return msgs
			}
			i += size
			continue
		}
		msgs = append(msgs, KeyMsg{Type: KeyRunes, Runes: []rune{r}})
		i += size
	}
	return msgs
}

// decodeEscape decodes one escape-prefixed token at the start of data, which
// is known to begin with ESC. It returns the message (nil for sequences that
// are consumed silently, such as the paste-start marker or an unknown CSI),
// the number of bytes consumed, and whether msg is valid. n == 0 means the
// sequence is incomplete and the caller should wait for more input.
func (d *standardDecoder) decodeEscape(data []byte) (Msg, int, bool) {
	if len(data) == 1 {
		// A read ending in a bare ESC is the escape key; waiting for a
		// continuation that may never come would swallow it.
		return KeyMsg{Type: KeyEscape}, 1, true
	}

	switch data[1] {
	case '[':
		j := 2
		for j < len(data) && (data[j] == ';' || (data[j] >= '0' && data[j] <= '9')) {
			j++
		}
		if j >= len(data) {
			return nil, 0, false
		}
		seq := string(data[:j+1])
		n := j + 1
		if bytes.Equal(data[:n], pasteStart) {
			d.pasting = true
			return nil, n, false
		}
		if key, ok := seqKeys[seq]; ok {
			return KeyMsg{Type: key}, n, true
		}
		return nil, n, false

	case 'O':
		if len(data) < 3 {
			return nil, 0, false
		}
		if key, ok := seqKeys[string(data[:3])]; ok {
			return KeyMsg{Type: key}, 3, true
		}
		return nil, 3, false

	case 0x1b:
		return KeyMsg{Type: KeyEscape}, 1, true

	default:
		// Alt-prefixed key.
		if key, ok := controlKey(data[1]); ok {
			key.Alt = true
			return key, 2, true
		}
		r, size := utf8.DecodeRune(data[1:])
		if r == utf8.RuneError {
			if !utf8.FullRune(data[1:]) {
				return nil, 0, false
			}
			return nil, 1 + size, false
		}
		return KeyMsg{Type: KeyRunes, Runes: []rune{r}, Alt: true}, 1 + size, true
	}
}

// controlKey maps a single byte to a named key, when it names one.
func controlKey(b byte) (KeyMsg, bool) {
	switch b {
	case '\r', '\n':
		return KeyMsg{Type: KeyEnter}, true
	case '\t':
		return KeyMsg{Type: KeyTab}, true
	case 0x08, 0x7f:
		return KeyMsg{Type: KeyBackspace}, true
	case ' ':
		return KeyMsg{Type: KeySpace, Runes: []rune{' '}}, true
	}
	if key, ok := ctrlKeys[b]; ok {
		return KeyMsg{Type: key}, true
	}
	return KeyMsg{}, false
}
