package steep

// KeyType identifies the key in a [KeyMsg]. Printable input uses KeyRunes
// with the runes themselves in KeyMsg.Runes; everything else is a named key.
type KeyType int

const (
	// KeyRunes is printable input; the runes are in KeyMsg.Runes.
	KeyRunes KeyType = iota
	KeySpace
	KeyEnter
	KeyTab
	KeyShiftTab
	KeyBackspace
	KeyEscape
	KeyDelete
	KeyInsert

	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4

	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// keyNames maps named key types to their string form.
var keyNames = map[KeyType]string{
	KeySpace:     " ",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyShiftTab:  "shift+tab",
	KeyBackspace: "backspace",
	KeyEscape:    "esc",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyRight:     "right",
	KeyLeft:      "left",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyCtrlA:     "ctrl+a",
	KeyCtrlB:     "ctrl+b",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlD:     "ctrl+d",
	KeyCtrlE:     "ctrl+e",
	KeyCtrlF:     "ctrl+f",
	KeyCtrlG:     "ctrl+g",
	KeyCtrlK:     "ctrl+k",
	KeyCtrlL:     "ctrl+l",
	KeyCtrlN:     "ctrl+n",
	KeyCtrlO:     "ctrl+o",
	KeyCtrlP:     "ctrl+p",
	KeyCtrlQ:     "ctrl+q",
	KeyCtrlR:     "ctrl+r",
	KeyCtrlS:     "ctrl+s",
	KeyCtrlT:     "ctrl+t",
	KeyCtrlU:     "ctrl+u",
	KeyCtrlV:     "ctrl+v",
	KeyCtrlW:     "ctrl+w",
	KeyCtrlX:     "ctrl+x",
	KeyCtrlY:     "ctrl+y",
	KeyCtrlZ:     "ctrl+z",
}

// KeyMsg is one decoded key press.
type KeyMsg struct {
	Type  KeyType
	Runes []rune
	Alt   bool
}

// String renders the key the way keymap help text expects it: "a", "ctrl+c",
// "alt+left", and so on.
func (k KeyMsg) String() string {
	var s string
	if k.Alt {
		s = "alt+"
	}
	if k.Type == KeyRunes {
		return s + string(k.Runes)
	}
	if name, ok := keyNames[k.Type]; ok {
		return s + name
	}
	return s + "unknown"
}
