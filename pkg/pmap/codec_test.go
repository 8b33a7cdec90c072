package pmap

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/philipparndt/pmapview/pkg/geometry"
)

func sampleMap() *Map {
	m := NewMap(42)
	m.AddTrapezoid(geometry.Trapezoid{XTL: -10, XTR: 10, XBR: 20, XBL: -20, YT: 5, YB: -5, Plane: 0})
	m.AddTrapezoid(geometry.Trapezoid{XTL: 100, XTR: 150, XBR: 150, XBL: 100, YT: 300, YB: 250, Plane: 4})
	return m
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleMap()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// header 16 bytes + 2 records of 28 bytes
	if buf.Len() != 16+2*28 {
		t.Errorf("unexpected encoded size %d", buf.Len())
	}

	m, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if m.FileID != 42 {
		t.Errorf("expected file id 42, got %d", m.FileID)
	}
	if m.TrapezoidCount() != 2 {
		t.Fatalf("expected 2 trapezoids, got %d", m.TrapezoidCount())
	}
	if m.Trapezoids[1] != sampleMap().Trapezoids[1] {
		t.Errorf("trapezoid mismatch: %v", m.Trapezoids[1])
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := append([]byte("NOPE"), make([]byte, 12)...)
	_, err := Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, NewMap(1)); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	data[4] = 9

	_, err := Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleMap()); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-5]

	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Error("expected error for truncated file")
	}
}

func TestMapStatistics(t *testing.T) {
	m := sampleMap()

	bbox := m.Bounds()
	if bbox.Min != geometry.NewVector2(-20, -5) || bbox.Max != geometry.NewVector2(150, 300) {
		t.Errorf("unexpected bounds %v", bbox)
	}
	counts := m.PlaneCounts()
	if counts[0] != 1 || counts[4] != 1 {
		t.Errorf("unexpected plane counts %v", counts)
	}
}

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "")

	if got := store.FileName(123); got != "MAP 0000000123.pmap" {
		t.Errorf("unexpected file name %q", got)
	}
	if err := Write(store.Path(42), sampleMap()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	m, err := store.Load(42)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.TrapezoidCount() != 2 {
		t.Errorf("expected 2 trapezoids, got %d", m.TrapezoidCount())
	}

	if _, err := store.Load(7); err == nil {
		t.Error("expected error for missing map")
	}
	if !store.Exists() {
		t.Error("store directory should exist")
	}
	if NewStore(filepath.Join(dir, "missing"), "").Exists() {
		t.Error("missing directory should not exist")
	}
}
