package keymap

import (
	"testing"

	"icedeck/hal"
)

func testLayer(n int) Layer {
	l := make(Layer, n)
	for i := range l {
		l[i] = Media("PLAY", hal.ConsumerPlayPause)
	}
	return l
}

func TestNewValidatesLayerLength(t *testing.T) {
	if _, err := New(3, 3, testLayer(8)); err == nil {
		t.Fatal("expected error for short layer")
	}
	if _, err := New(3, 3); err == nil {
		t.Fatal("expected error for empty keymap")
	}
	if _, err := New(3, 3, testLayer(9)); err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestResolve(t *testing.T) {
	l := testLayer(9)
	l[5] = Chord("MUTE DC", hal.ModLeftCtrl|hal.ModLeftAlt, hal.KeyM)
	km, err := New(3, 3, l)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := km.Resolve(0, 1, 2) // index 1*3+2 = 5
	if got.Op != OpChord || got.Code != hal.KeyM {
		t.Fatalf("Resolve(0,1,2) = %+v", got)
	}
}

func TestResolveOutOfRangeLayerIsNoOp(t *testing.T) {
	km, err := New(3, 3, testLayer(9))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, layer := range []int{1, 7, -1} {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				if got := km.Resolve(layer, r, c); !got.IsNoOp() {
					t.Fatalf("Resolve(%d,%d,%d) = %+v, want NoOp", layer, r, c, got)
				}
			}
		}
	}
}
