package game

import (
	"testing"
	"time"
)

func TestInRect(t *testing.T) {
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{130, 50, true},
		{131, 50, false},
		{9, 30, false},
		{50, 51, false},
	}
	for _, tt := range tests {
		if got := inRect(tt.x, tt.y, 10, 10, 120, 40); got != tt.want {
			t.Errorf("inRect(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                                     "00:00",
		12*time.Second + 900*time.Millisecond: "00:12",
		75 * time.Second:                      "01:15",
	}
	for d, want := range tests {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestTextBuffer(t *testing.T) {
	var b textBuffer
	b.set("A\r\nB")
	if b.String() != "A\nB" {
		t.Fatalf("set normalised to %q", b.String())
	}

	b.insert('\n', 'あ')
	if got := b.lines(); len(got) != 3 || got[2] != "あ" {
		t.Fatalf("lines = %q", got)
	}

	if !b.backspace() || b.String() != "A\nB\n" {
		t.Fatalf("after backspace = %q, want a whole rune removed", b.String())
	}
	b.set("")
	if b.backspace() {
		t.Fatal("backspace on empty buffer reported a change")
	}
	if got := b.lines(); len(got) != 1 || got[0] != "" {
		t.Fatalf("empty lines = %q", got)
	}
}

func TestEditorSetText(t *testing.T) {
	e := newEditor("one\ntwo")
	if e.text() != "one\ntwo" {
		t.Fatalf("text = %q", e.text())
	}
	e.setText("three")
	if e.text() != "three" {
		t.Fatalf("text = %q", e.text())
	}
	p0, p1 := e.linePos(0), e.linePos(1)
	if p1.Y-p0.Y != 18 || p0.X != p1.X {
		t.Fatalf("line positions %+v %+v, want one line height apart", p0, p1)
	}
}
