package termkey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDecodeMouseButtonByte(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cb   int
		want Mouse
	}{
		{name: "left press", cb: 0, want: Mouse{Action: MousePress, Button: 1}},
		{name: "middle press", cb: 1, want: Mouse{Action: MousePress, Button: 2}},
		{name: "right press", cb: 2, want: Mouse{Action: MousePress, Button: 3}},
		{name: "release", cb: 3, want: Mouse{Action: MouseRelease}},
		{name: "left drag", cb: 0x20, want: Mouse{Action: MouseDrag, Button: 1}},
		{name: "wheel up", cb: 64, want: Mouse{Action: MousePress, Button: 4}},
		{name: "wheel down", cb: 65, want: Mouse{Action: MousePress, Button: 5}},
		{name: "button 8", cb: 128, want: Mouse{Action: MousePress, Button: 8}},
		{name: "shift", cb: 0x04, want: Mouse{Action: MousePress, Button: 1, Mod: ModShift}},
		{name: "alt", cb: 0x08, want: Mouse{Action: MousePress, Button: 1, Mod: ModAlt}},
		{name: "ctrl", cb: 0x10, want: Mouse{Action: MousePress, Button: 1, Mod: ModCtrl}},
		{name: "unknown", cb: 192, want: Mouse{Action: MouseUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.want.Line, tt.want.Column = 4, 9
			got := decodeMouse(tt.cb, 9, 4)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decodeMouse(%d) mismatch (-want +got):\n%s", tt.cb, diff)
			}
		})
	}
}

func TestMouseProtocols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		want     Mouse
		protocol MouseProtocol
	}{
		{
			name:     "x10 press",
			data:     "\x1b[M !!",
			want:     Mouse{Action: MousePress, Button: 1, Line: 1, Column: 1},
			protocol: MouseX10,
		},
		{
			name:     "x10 drag",
			data:     "\x1b[M@\"!",
			want:     Mouse{Action: MouseDrag, Button: 1, Line: 1, Column: 2},
			protocol: MouseX10,
		},
		{
			name:     "x10 release",
			data:     "\x1b[M##!",
			want:     Mouse{Action: MouseRelease, Line: 1, Column: 3},
			protocol: MouseX10,
		},
		{
			name:     "x10 ctrl press",
			data:     "\x1b[M0++",
			want:     Mouse{Action: MousePress, Button: 1, Mod: ModCtrl, Line: 11, Column: 11},
			protocol: MouseX10,
		},
		{
			name:     "rxvt press",
			data:     "\x1b[0;20;20M",
			want:     Mouse{Action: MousePress, Button: 1, Line: 20, Column: 20},
			protocol: MouseRXVT,
		},
		{
			name:     "sgr press",
			data:     "\x1b[<0;500;300M",
			want:     Mouse{Action: MousePress, Button: 1, Line: 300, Column: 500},
			protocol: MouseSGR,
		},
		{
			name:     "sgr release keeps button",
			data:     "\x1b[<2;5;6m",
			want:     Mouse{Action: MouseRelease, Button: 3, Line: 6, Column: 5},
			protocol: MouseSGR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New()
			assert.Equal(t, MouseNone, s.MouseProtocol())
			s.Push([]byte(tt.data))
			got := pollKey(t, s)
			if diff := cmp.Diff(Event(tt.want), got); diff != "" {
				t.Errorf("Poll(%q) mismatch (-want +got):\n%s", tt.data, diff)
			}
			assert.Equal(t, tt.protocol, s.MouseProtocol())
			requireStatus(t, s, StatusNone)
		})
	}
}

func TestX10MouseIncomplete(t *testing.T) {
	t.Parallel()

	s := New()
	s.Push([]byte("\x1b[M !"))
	requireStatus(t, s, StatusAgain)

	s.Push([]byte("!"))
	assert.Equal(t, Mouse{Action: MousePress, Button: 1, Line: 1, Column: 1}, pollKey(t, s))

	s.Push([]byte("\x1b[M !"))
	res, err := s.Force()
	assert.NoError(t, err)
	assert.Equal(t, StatusKey, res.Status)
	assert.Equal(t, UnknownCSI{}, res.Event)
	requireStatus(t, s, StatusNone)
}

func TestMouseStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Press", MousePress.String())
	assert.Equal(t, "Unknown", MouseUnknown.String())
	assert.Equal(t, "SGR", MouseSGR.String())
	assert.Equal(t, "None", MouseNone.String())
}
