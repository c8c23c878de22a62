package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/san-kum/fluidlab/internal/fluid"
)

func TestStateCodecRoundTrip(t *testing.T) {
	g := fluid.MustNew(9, fluid.DefaultParams())
	g.AddDensity(4, 4, 1, 0.5, 0.25)
	g.AddVelocity(2, 7, -3, 8)
	g.Step()
	want := g.SaveState()

	var buf bytes.Buffer
	if err := EncodeState(&buf, want); err != nil {
		t.Fatal(err)
	}
	if got := buf.Len(); got != 12+8*81*4 {
		t.Errorf("encoded %d bytes", got)
	}

	got, err := DecodeState(&buf)
	if err != nil {
		t.Fatal(err)
	}
	wf, gf := want.Fields(), got.Fields()
	for i := range wf {
		for j := range wf[i] {
			if wf[i][j] != gf[i][j] {
				t.Fatalf("field %s cell %d = %v, want %v", fluid.FieldNames[i], j, gf[i][j], wf[i][j])
			}
		}
	}

	fresh := fluid.MustNew(9, fluid.DefaultParams())
	if err := fresh.RestoreState(got); err != nil {
		t.Errorf("decoded state should restore: %v", err)
	}
}

func TestEncodeStateRejectsShortField(t *testing.T) {
	st := fluid.MustNew(4, fluid.DefaultParams()).SaveState()
	st.B = st.B[:3]
	if err := EncodeState(&bytes.Buffer{}, st); err == nil {
		t.Error("expected error for short field")
	}
}

func TestDecodeStateErrors(t *testing.T) {
	valid := func() []byte {
		var buf bytes.Buffer
		EncodeState(&buf, fluid.MustNew(4, fluid.DefaultParams()).SaveState())
		return buf.Bytes()
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"empty", func([]byte) []byte { return nil }},
		{"bad magic", func(b []byte) []byte {
			b[0] = 'X'
			return b
		}},
		{"bad version", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[4:], 99)
			return b
		}},
		{"zero size", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[8:], 0)
			return b
		}},
		{"huge size", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[8:], 1<<20)
			return b
		}},
		{"truncated", func(b []byte) []byte { return b[:len(b)-5] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeState(bytes.NewReader(tt.mutate(valid())))
			if !errors.Is(err, ErrBadState) {
				t.Errorf("expected ErrBadState, got %v", err)
			}
		})
	}
}
