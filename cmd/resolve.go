package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/philipparndt/pmapview/internal/config"
	"github.com/philipparndt/pmapview/pkg/pmap"
)

// mapRef is a map named on the command line, either by file id or by path
type mapRef struct {
	Path   string
	FileID uint32
	IsID   bool
}

// resolveMap accepts an existing file path or a numeric file id (decimal
// or 0x hex) resolved below the data directory
func resolveMap(c *config.Config, arg string) (mapRef, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return mapRef{Path: arg}, nil
	}
	id, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return mapRef{}, fmt.Errorf("%q is neither a map file nor a file id", arg)
	}
	store := pmap.NewStore(c.Data.Dir, c.Data.Extension)
	return mapRef{Path: store.Path(uint32(id)), FileID: uint32(id), IsID: true}, nil
}

func loadMap(c *config.Config, arg string) (*pmap.Map, mapRef, error) {
	ref, err := resolveMap(c, arg)
	if err != nil {
		return nil, ref, err
	}
	m, err := pmap.Parse(ref.Path)
	if err != nil {
		return nil, ref, err
	}
	return m, ref, nil
}
