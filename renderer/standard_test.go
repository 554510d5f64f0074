package renderer

import (
	"bytes"
	"strings"
	"testing"
)

func TestStandard_RendersFrameText(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandard(&buf)
	r.Start()
	r.Render("hello")
	r.Stop()

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("output %q does not contain the frame", out)
	}
	if !strings.Contains(out, "\x1b[?25l") {
		t.Error("Start did not hide the cursor")
	}
	if !strings.Contains(out, "\x1b[?25h") {
		t.Error("Stop did not restore the cursor")
	}
}

func TestStandard_SecondFrameClearsFirst(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandard(&buf)
	r.Start()
	r.Render("one\ntwo")
	buf.Reset()
	r.Render("three")

	out := buf.String()
	if !strings.Contains(out, "\x1b[2K") {
		t.Error("previous frame's lines were not cleared")
	}
	if !strings.Contains(out, "\x1b[1A") {
		t.Error("renderer did not move up over the previous frame's second line")
	}
	if !strings.Contains(out, "three") {
		t.Errorf("output %q does not contain the new frame", out)
	}
}

func TestStandard_SkipsIdenticalFrame(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandard(&buf)
	r.Start()
	r.Render("same")
	buf.Reset()
	r.Render("same")

	if got := buf.String(); got != "" {
		t.Errorf("identical frame was re-rendered: %q", got)
	}
}

func TestStandard_TruncatesToWidth(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandard(&buf)
	r.Start()
	r.Resize(3, 10)
	r.Render("abcdef")

	out := buf.String()
	if strings.Contains(out, "abcdef") {
		t.Errorf("output %q was not truncated to the terminal width", out)
	}
	if !strings.Contains(out, "abc") {
		t.Errorf("output %q lost the visible prefix", out)
	}
}

func TestStandard_ResizeForcesRepaint(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandard(&buf)
	r.Start()
	r.Render("frame")
	r.Resize(80, 24)
	buf.Reset()
	r.Render("frame")

	if !strings.Contains(buf.String(), "frame") {
		t.Error("frame was not repainted after a resize")
	}
}

func TestStandard_AltScreen(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandard(&buf, WithAltScreen())
	r.Start()
	r.Render("inside")
	r.Stop()

	out := buf.String()
	if !strings.Contains(out, "\x1b[?1049h") {
		t.Error("Start did not enter the alternate screen")
	}
	if !strings.Contains(out, "\x1b[?1049l") {
		t.Error("Stop did not leave the alternate screen")
	}
}

func TestStandard_RenderBeforeStartDropped(t *testing.T) {
	var buf bytes.Buffer
	r := NewStandard(&buf)
	r.Render("early")

	if got := buf.String(); got != "" {
		t.Errorf("frame rendered before Start: %q", got)
	}
}
