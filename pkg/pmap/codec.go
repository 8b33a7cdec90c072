package pmap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/pmapview/pkg/geometry"
)

// Magic starts every pathing map file
const Magic = "PMAP"

// Version is the only file version understood by this package
const Version uint32 = 1

var (
	ErrBadMagic           = errors.New("not a pathing map file")
	ErrUnsupportedVersion = errors.New("unsupported pathing map version")
)

type header struct {
	Magic   [4]byte
	Version uint32
	FileID  uint32
	Count   uint32
}

// record is the on-disk layout of one trapezoid
type record struct {
	YT, YB   float32
	XTL, XTR float32
	XBL, XBR float32
	Plane    int32
}

// Parse reads a pathing map file from disk
func Parse(filename string) (*Map, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(bufio.NewReader(file))
}

// Decode reads a pathing map from r
func Decode(r io.Reader) (*Map, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(h.Magic[:]) != Magic {
		return nil, ErrBadMagic
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	m := &Map{
		FileID:     h.FileID,
		Trapezoids: make([]geometry.Trapezoid, 0, min(h.Count, 1<<16)),
	}
	for i := uint32(0); i < h.Count; i++ {
		var rec record
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read trapezoid %d of %d: %w", i, h.Count, err)
		}
		m.AddTrapezoid(geometry.Trapezoid{
			XTL:   float64(rec.XTL),
			XTR:   float64(rec.XTR),
			XBR:   float64(rec.XBR),
			XBL:   float64(rec.XBL),
			YT:    float64(rec.YT),
			YB:    float64(rec.YB),
			Plane: int(rec.Plane),
		})
	}

	return m, nil
}

// Encode writes m in the pathing map format
func Encode(w io.Writer, m *Map) error {
	h := header{
		Version: Version,
		FileID:  m.FileID,
		Count:   uint32(len(m.Trapezoids)),
	}
	copy(h.Magic[:], Magic)

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, t := range m.Trapezoids {
		rec := record{
			YT:    float32(t.YT),
			YB:    float32(t.YB),
			XTL:   float32(t.XTL),
			XTR:   float32(t.XTR),
			XBL:   float32(t.XBL),
			XBR:   float32(t.XBR),
			Plane: int32(t.Plane),
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to write trapezoid %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// Write encodes m into filename, replacing any existing file
func Write(filename string, m *Map) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
