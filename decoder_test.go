package steep

import (
	"testing"
)

// decodeAll runs one chunk through a fresh decoder.
func decodeAll(t *testing.T, chunks ...[]byte) []Msg {
	t.Helper()
	d := NewStandardDecoder()
	var msgs []Msg
	for _, c := range chunks {
		msgs = append(msgs, d.Decode(c)...)
	}
	return msgs
}

func keyAt(t *testing.T, msgs []Msg, i int) KeyMsg {
	t.Helper()
	if i >= len(msgs) {
		t.Fatalf("want a key at index %d, have only %d messages", i, len(msgs))
	}
	key, ok := msgs[i].(KeyMsg)
	if !ok {
		t.Fatalf("message %d is %T, want KeyMsg", i, msgs[i])
	}
	return key
}

func TestDecoder_PlainRunes(t *testing.T) {
	msgs := decodeAll(t, []byte("hi"))
	if len(msgs) != 2 {
		t.Fatalf("decoded %d messages, want 2", len(msgs))
	}
	if got := keyAt(t, msgs, 0).String(); got != "h" {
		t.Errorf("first key = %q, want \"h\"", got)
	}
	if got := keyAt(t, msgs, 1).String(); got != "i" {
		t.Errorf("second key = %q, want \"i\"", got)
	}
}

func TestDecoder_NamedKeys(t *testing.T) {
	cases := []struct {
		input []byte
		want  KeyType
	}{
		{[]byte("\r"), KeyEnter},
		{[]byte("\n"), KeyEnter},
		{[]byte("\t"), KeyTab},
		{[]byte{0x7f}, KeyBackspace},
		{[]byte{0x03}, KeyCtrlC},
		{[]byte{0x1a}, KeyCtrlZ},
		{[]byte(" "), KeySpace},
		{[]byte("\x1b[A"), KeyUp},
		{[]byte("\x1b[B"), KeyDown},
		{[]byte("\x1b[C"), KeyRight},
		{[]byte("\x1b[D"), KeyLeft},
		{[]byte("\x1b[Z"), KeyShiftTab},
		{[]byte("\x1b[3~"), KeyDelete},
		{[]byte("\x1b[5~"), KeyPgUp},
		{[]byte("\x1b[6~"), KeyPgDown},
		{[]byte("\x1bOA"), KeyUp},
		{[]byte("\x1bOP"), KeyF1},
		{[]byte("\x1bOS"), KeyF4},
	}

	for _, tc := range cases {
		msgs := decodeAll(t, tc.input)
		if len(msgs) != 1 {
			t.Errorf("%q decoded to %d messages, want 1", tc.input, len(msgs))
			continue
		}
		if got := keyAt(t, msgs, 0).Type; got != tc.want {
			t.Errorf("%q decoded to key type %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestDecoder_AltKeys(t *testing.T) {
	msgs := decodeAll(t, []byte("\x1bx"))
	key := keyAt(t, msgs, 0)
	if !key.Alt || key.Type != KeyRunes || string(key.Runes) != "x" {
		t.Errorf("decoded %+v, want alt+x", key)
	}
	if got := key.String(); got != "alt+x" {
		t.Errorf("String() = %q, want \"alt+x\"", got)
	}

	msgs = decodeAll(t, []byte("\x1b\r"))
	key = keyAt(t, msgs, 0)
	if !key.Alt || key.Type != KeyEnter {
		t.Errorf("decoded %+v, want alt+enter", key)
	}
}

func TestDecoder_BareEscapeIsEscapeKey(t *testing.T) {
	msgs := decodeAll(t, []byte{0x1b})
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(msgs))
	}
	if got := keyAt(t, msgs, 0).Type; got != KeyEscape {
		t.Errorf("bare ESC decoded to %v, want KeyEscape", got)
	}
}

func TestDecoder_SequenceSplitAcrossChunks(t *testing.T) {
	// The CSI arrives in one chunk, the final byte in the next.
	msgs := decodeAll(t, []byte("\x1b["), []byte("A"))
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(msgs))
	}
	if got := keyAt(t, msgs, 0).Type; got != KeyUp {
		t.Errorf("split sequence decoded to %v, want KeyUp", got)
	}
}

func TestDecoder_RuneSplitAcrossChunks(t *testing.T) {
	raw := []byte("é") // two UTF-8 bytes
	msgs := decodeAll(t, raw[:1], raw[1:])
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(msgs))
	}
	if got := keyAt(t, msgs, 0).String(); got != "é" {
		t.Errorf("split rune decoded to %q, want \"é\"", got)
	}
}

func TestDecoder_BracketedPaste(t *testing.T) {
	msgs := decodeAll(t, []byte("\x1b[200~pasted text\x1b[201~x"))
	if len(msgs) != 2 {
		t.Fatalf("decoded %d messages, want 2", len(msgs))
	}
	paste, ok := msgs[0].(PasteMsg)
	if !ok {
		t.Fatalf("message 0 is %T, want PasteMsg", msgs[0])
	}
	if string(paste) != "pasted text" {
		t.Errorf("paste = %q, want \"pasted text\"", paste)
	}
	if got := keyAt(t, msgs, 1).String(); got != "x" {
		t.Errorf("key after paste = %q, want \"x\"", got)
	}
}

func TestDecoder_PasteSpansChunks(t *testing.T) {
	msgs := decodeAll(t,
		[]byte("\x1b[200~first "),
		[]byte("second"),
		[]byte("\x1b[201~"),
	)
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(msgs))
	}
	paste, ok := msgs[0].(PasteMsg)
	if !ok {
		t.Fatalf("message 0 is %T, want PasteMsg", msgs[0])
	}
	if string(paste) != "first second" {
		t.Errorf("paste = %q, want \"first second\"", paste)
	}
}

func TestDecoder_PasteContentNotDecodedAsKeys(t *testing.T) {
	// Control bytes inside a paste are content, not key presses.
	msgs := decodeAll(t, []byte("\x1b[200~a\tb\x1b[201~"))
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(msgs))
	}
	if paste := msgs[0].(PasteMsg); string(paste) != "a\tb" {
		t.Errorf("paste = %q, want \"a\\tb\"", paste)
	}
}

func TestDecoder_UnknownSequenceDropped(t *testing.T) {
	msgs := decodeAll(t, []byte("\x1b[99Xq"))
	if len(msgs) != 1 {
		t.Fatalf("decoded %d messages, want 1 (unknown CSI dropped)", len(msgs))
	}
	if got := keyAt(t, msgs, 0).String(); got != "q" {
		t.Errorf("key after unknown sequence = %q, want \"q\"", got)
	}
}
