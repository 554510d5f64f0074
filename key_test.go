package steep

import "testing"

func TestKeyMsg_String(t *testing.T) {
	cases := []struct {
		key  KeyMsg
		want string
	}{
		{KeyMsg{Type: KeyRunes, Runes: []rune("a")}, "a"},
		{KeyMsg{Type: KeyRunes, Runes: []rune("é")}, "é"},
		{KeyMsg{Type: KeyRunes, Runes: []rune("x"), Alt: true}, "alt+x"},
		{KeyMsg{Type: KeyEnter}, "enter"},
		{KeyMsg{Type: KeyCtrlC}, "ctrl+c"},
		{KeyMsg{Type: KeySpace, Runes: []rune(" ")}, " "},
		{KeyMsg{Type: KeyLeft, Alt: true}, "alt+left"},
		{KeyMsg{Type: KeyType(9999)}, "unknown"},
	}

	for _, tc := range cases {
		if got := tc.key.String(); got != tc.want {
			t.Errorf("KeyMsg%+v.String() = %q, want %q", tc.key, got, tc.want)
		}
	}
}
