package fluid

import (
	"errors"
	"testing"
)

func seeded(n int) *Grid {
	g := MustNew(n, Params{Dt: 0.1, Diffusion: 1e-4, Viscosity: 1e-5, Iterations: 4})
	g.AddDensity(n/2, n/2, 1, 0.5, 0.25)
	g.AddVelocity(n/2, n/2, 10, -5)
	g.Step()
	g.Step()
	return g
}

func TestSaveRestore_RoundTrip(t *testing.T) {
	g := seeded(16)
	before := g.SaveState()

	if err := g.RestoreState(g.SaveState()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	after := g.SaveState()
	for f, field := range before.Fields() {
		for i := range field {
			if field[i] != after.Fields()[f][i] {
				t.Fatalf("field %s cell %d: %v != %v", FieldNames[f], i, field[i], after.Fields()[f][i])
			}
		}
	}
}

func TestSaveState_Independent(t *testing.T) {
	g := seeded(12)
	snap := g.SaveState()
	orig := snap.R[g.IX(6, 6)]

	g.R[g.IX(6, 6)] += 100
	if snap.R[g.IX(6, 6)] != orig {
		t.Error("snapshot aliases grid memory")
	}

	if err := g.RestoreState(snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	snap.R[g.IX(6, 6)] = -1
	if g.R[g.IX(6, 6)] != orig {
		t.Error("restore kept a reference to the snapshot")
	}
}

func TestRestoreState_DimensionMismatch(t *testing.T) {
	small := seeded(8)
	big := seeded(16)
	want := big.SaveState()

	err := big.RestoreState(small.SaveState())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}

	bad := big.SaveState()
	bad.S = bad.S[:10]
	if err := big.RestoreState(bad); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch for short field, got %v", err)
	}

	got := big.SaveState()
	for i := range want.R {
		if got.R[i] != want.R[i] {
			t.Fatal("failed restore modified the grid")
		}
	}
}

func TestStateClone(t *testing.T) {
	s := seeded(8).SaveState()
	c := s.Clone()
	c.Vx[0] = 42
	if s.Vx[0] == 42 {
		t.Error("Clone shares memory with the source")
	}
	if c.Size != s.Size {
		t.Errorf("Clone size = %d, want %d", c.Size, s.Size)
	}
}
