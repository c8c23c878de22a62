package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/fluidlab/internal/fluid"
)

const stateVersion uint32 = 1

var (
	stateMagic = [4]byte{'F', 'L', 'S', 'T'}

	ErrBadState = errors.New("storage: malformed state file")
)

// maxStateSize bounds the side length read from a header so a corrupt file
// cannot trigger a huge allocation.
const maxStateSize = 1 << 12

type stateHeader struct {
	Magic   [4]byte
	Version uint32
	Size    uint32
}

// EncodeState writes st as a little-endian header (magic "FLST", version,
// size) followed by the eight fields in fluid.FieldNames order.
func EncodeState(w io.Writer, st fluid.State) error {
	cells := st.Size * st.Size
	for i, f := range st.Fields() {
		if len(f) != cells {
			return fmt.Errorf("storage: field %s has %d cells, want %d", fluid.FieldNames[i], len(f), cells)
		}
	}

	bw := bufio.NewWriter(w)
	hdr := stateHeader{Magic: stateMagic, Version: stateVersion, Size: uint32(st.Size)}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	for _, f := range st.Fields() {
		if err := binary.Write(bw, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func DecodeState(r io.Reader) (fluid.State, error) {
	br := bufio.NewReader(r)

	var hdr stateHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return fluid.State{}, fmt.Errorf("%w: header: %w", ErrBadState, err)
	}
	if hdr.Magic != stateMagic {
		return fluid.State{}, fmt.Errorf("%w: bad magic %q", ErrBadState, hdr.Magic[:])
	}
	if hdr.Version != stateVersion {
		return fluid.State{}, fmt.Errorf("%w: unsupported version %d", ErrBadState, hdr.Version)
	}
	if hdr.Size == 0 || hdr.Size > maxStateSize {
		return fluid.State{}, fmt.Errorf("%w: size %d", ErrBadState, hdr.Size)
	}

	n := int(hdr.Size)
	var fields [8][]float32
	for i := range fields {
		fields[i] = make([]float32, n*n)
		if err := binary.Read(br, binary.LittleEndian, fields[i]); err != nil {
			return fluid.State{}, fmt.Errorf("%w: field %s: %w", ErrBadState, fluid.FieldNames[i], err)
		}
	}

	return fluid.State{
		Size: n,
		Vx:   fields[0],
		Vy:   fields[1],
		Vx0:  fields[2],
		Vy0:  fields[3],
		R:    fields[4],
		G:    fields[5],
		B:    fields[6],
		S:    fields[7],
	}, nil
}
