package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/pmapview/internal/config"
	"github.com/philipparndt/pmapview/internal/input"
	"github.com/philipparndt/pmapview/internal/render"
	"github.com/philipparndt/pmapview/pkg/extractor"
	"github.com/philipparndt/pmapview/pkg/geometry"
	"github.com/philipparndt/pmapview/pkg/pmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	batches [][]input.Event
	surface *render.RasterSurface
	log     []string
}

func newFakePlatform(batches ...[]input.Event) *fakePlatform {
	return &fakePlatform{batches: batches, surface: render.NewRasterSurface(64, 48)}
}

func (p *fakePlatform) PollEvents() []input.Event {
	p.log = append(p.log, "poll")
	if len(p.batches) == 0 {
		return nil
	}
	batch := p.batches[0]
	p.batches = p.batches[1:]
	return batch
}

func (p *fakePlatform) BeginFrame() {
	p.log = append(p.log, "begin")
}

func (p *fakePlatform) Surface() render.Surface {
	return p.surface
}

func (p *fakePlatform) DrawUI(*Viewer) {
	p.log = append(p.log, "ui")
}

func (p *fakePlatform) EndFrame() {
	p.log = append(p.log, "end")
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Window.Width = 64
	cfg.Window.Height = 48
	cfg.Data.Dir = filepath.Join(dir, "PMAPs")
	cfg.Data.Catalog = filepath.Join(dir, "mapinfo.csv")
	cfg.Watch.DebounceMS = 10
	return cfg
}

func writeCatalog(t *testing.T, cfg *config.Config, lines ...string) {
	t.Helper()
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(cfg.Data.Catalog, []byte(content), 0o644))
}

func writeMap(t *testing.T, cfg *config.Config, fileID uint32, planes ...int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.Data.Dir, 0o755))
	m := pmap.NewMap(fileID)
	for i, p := range planes {
		x := float64(i * 100)
		m.AddTrapezoid(geometry.Trapezoid{XTL: x, XTR: x + 50, XBR: x + 60, XBL: x - 10, YT: 50, YB: 0, Plane: p})
	}
	store := pmap.NewStore(cfg.Data.Dir, cfg.Data.Extension)
	require.NoError(t, pmap.Write(store.Path(fileID), m))
}

func TestRunStopsOnQuit(t *testing.T) {
	v := New(testConfig(t))
	p := newFakePlatform(
		[]input.Event{input.ButtonDown{Button: input.ButtonPrimary}, input.Move{Pos: geometry.NewVector2(10, 10), Delta: geometry.NewVector2(4, 0)}},
		[]input.Event{input.KeyUp{Key: "space"}},
		[]input.Event{input.Quit{}, input.KeyUp{Key: "c"}},
	)

	v.Run(p)

	assert.Equal(t, uint64(2), v.Frames())
	assert.Equal(t, []string{
		"poll", "begin", "ui", "end",
		"poll", "begin", "ui", "end",
		"poll",
	}, p.log)
	assert.True(t, v.State().Flags.Wireframe)
	assert.True(t, v.State().Flags.ShowOverlay, "events after quit in the same batch still apply")
	assert.Positive(t, v.State().Camera.Translate.X)
}

func TestFrameClearsDirty(t *testing.T) {
	v := New(testConfig(t))
	p := newFakePlatform([]input.Event{input.Wheel{DY: 1}})

	require.True(t, v.Frame(p))
	assert.False(t, v.State().Dirty)
	assert.InDelta(t, 0.000125, v.State().Camera.Scale, 1e-12)

	// frames render without any input
	require.True(t, v.Frame(p))
	assert.Equal(t, uint64(2), v.Frames())
}

func TestSelectMap(t *testing.T) {
	cfg := testConfig(t)
	writeCatalog(t, cfg,
		"1,First,100,10,20",
		"2,Missing,200,0,0",
	)
	writeMap(t, cfg, 100, 0, 2, 4)

	v := New(cfg)
	require.Equal(t, 2, v.Catalog().Len())
	assert.False(t, v.NeedsExtraction())

	require.NoError(t, v.SelectMap(0))
	assert.Equal(t, 3, v.State().Mesh.Len())
	assert.Equal(t, 4, v.State().Mesh.MaxPlane())
	assert.Equal(t, uint32(100), v.CurrentMap().FileID)

	err := v.SelectMap(1)
	require.Error(t, err)
	assert.Equal(t, 3, v.State().Mesh.Len(), "previous mesh stays")
	assert.True(t, v.Catalog().Entries[0].Selected, "selection follows the displayed map")
	assert.False(t, v.Catalog().Entries[1].Selected)

	assert.Error(t, v.SelectMap(5))
}

func TestJumpToSpawn(t *testing.T) {
	cfg := testConfig(t)
	writeCatalog(t, cfg, "1,First,100,10,20")
	writeMap(t, cfg, 100, 1)

	v := New(cfg)
	require.NoError(t, v.SelectMap(0))

	p := newFakePlatform([]input.Event{input.KeyUp{Key: "home"}})
	v.Frame(p)
	assert.Equal(t, geometry.NewVector2(-10, -20), v.State().Camera.Translate)
}

func TestJumpToSpawnAfterFailedSelect(t *testing.T) {
	cfg := testConfig(t)
	writeCatalog(t, cfg, "1,First,100,10,20", "2,Missing,200,300,400")
	writeMap(t, cfg, 100, 1)

	v := New(cfg)
	require.NoError(t, v.SelectMap(0))
	require.Error(t, v.SelectMap(1))

	v.JumpToSpawn()
	assert.Equal(t, geometry.NewVector2(-10, -20), v.State().Camera.Translate)
}

func TestFilterSurvivesReload(t *testing.T) {
	cfg := testConfig(t)
	writeCatalog(t, cfg, "1,Ascalon,100,0,0", "2,Kryta,200,0,0")

	v := New(cfg)
	assert.Equal(t, 1, v.SetFilter("kry"))
	_, err := v.Catalog().Select(1)
	require.NoError(t, err)

	writeCatalog(t, cfg, "2,Kryta,200,0,0", "1,Ascalon,100,0,0", "3,Kryta Coast,300,0,0")
	require.NoError(t, v.ReloadCatalog())

	assert.Equal(t, []int{0, 2}, v.Catalog().VisibleIndices())
	assert.Equal(t, "Kryta", v.Catalog().Selected().Name)
	assert.Equal(t, "kry", v.Filter())
}

func TestMissingCatalog(t *testing.T) {
	v := New(testConfig(t))
	assert.Equal(t, 0, v.Catalog().Len())
	assert.True(t, v.NeedsExtraction())
	assert.Error(t, v.ReloadCatalog())
}

func TestWatchReloads(t *testing.T) {
	cfg := testConfig(t)
	writeCatalog(t, cfg, "1,First,100,0,0")
	writeMap(t, cfg, 100, 1)

	v := New(cfg)
	defer v.Close()
	require.NoError(t, v.SelectMap(0))
	require.NoError(t, v.Watch())
	time.Sleep(50 * time.Millisecond)

	writeCatalog(t, cfg, "1,First,100,0,0", "2,Second,200,0,0")
	writeMap(t, cfg, 100, 1, 2, 3, 4)

	p := newFakePlatform()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		v.Frame(p)
		if v.Catalog().Len() == 2 && v.State().Mesh.Len() == 4 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	assert.Equal(t, 2, v.Catalog().Len())
	assert.Equal(t, 4, v.State().Mesh.Len())
	assert.True(t, v.Catalog().Entries[0].Selected)
}

func TestWatchFollowsDisplayedMap(t *testing.T) {
	cfg := testConfig(t)
	writeCatalog(t, cfg, "1,First,100,0,0", "2,Second,200,0,0")
	writeMap(t, cfg, 100, 1)
	writeMap(t, cfg, 200, 1, 2)

	v := New(cfg)
	defer v.Close()
	require.NoError(t, v.Watch())
	require.NoError(t, v.SelectMap(0))
	require.NoError(t, v.SelectMap(1))
	time.Sleep(50 * time.Millisecond)
	v.reloadMap.Store(false)

	// the previously shown map no longer triggers reloads
	writeMap(t, cfg, 100, 1, 1, 1)
	time.Sleep(200 * time.Millisecond)
	assert.False(t, v.reloadMap.Load())
	assert.True(t, v.reloadCatalog.Load(), "data directory changes reload the index")
}

// TestHelperProcess is the fake extractor used by the extraction test. It
// creates the data directory and writes a one line map index.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PMAPVIEW_HELPER_PROCESS") != "1" {
		return
	}
	if err := os.MkdirAll(os.Getenv("PMAPVIEW_HELPER_DATA"), 0o755); err != nil {
		os.Exit(2)
	}
	line := fmt.Sprintf("7,Extracted,%d,0,0\n", 700)
	if err := os.WriteFile(os.Getenv("PMAPVIEW_HELPER_CATALOG"), []byte(line), 0o644); err != nil {
		os.Exit(2)
	}
	os.Exit(0)
}

func TestExtraction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Extractor.Command = os.Args[0]
	cfg.Extractor.Args = []string{"-test.run=TestHelperProcess", "--", "-e", extractor.Placeholder}
	t.Setenv("PMAPVIEW_HELPER_PROCESS", "1")
	t.Setenv("PMAPVIEW_HELPER_DATA", cfg.Data.Dir)
	t.Setenv("PMAPVIEW_HELPER_CATALOG", cfg.Data.Catalog)

	dat := filepath.Join(t.TempDir(), "Gw.dat")
	require.NoError(t, os.WriteFile(dat, nil, 0o644))

	v := New(cfg)
	require.True(t, v.NeedsExtraction())
	assert.Error(t, v.StartExtraction(""))
	assert.Error(t, v.StartExtraction(filepath.Join(t.TempDir(), "missing.dat")))

	require.NoError(t, v.StartExtraction(dat))
	assert.Equal(t, extractor.Running, v.ExtractionStatus())
	assert.False(t, v.NeedsExtraction())
	assert.ErrorIs(t, v.StartExtraction(dat), extractor.ErrRunning)

	select {
	case <-v.ExtractionTask().Done():
	case <-time.After(10 * time.Second):
		t.Fatal("extractor did not finish")
	}

	// status changes are observed by the frame loop
	assert.Equal(t, extractor.Running, v.ExtractionStatus())
	v.Frame(newFakePlatform())
	assert.Equal(t, extractor.Succeeded, v.ExtractionStatus())
	assert.False(t, v.NeedsExtraction())
	require.Equal(t, 1, v.Catalog().Len())
	assert.Equal(t, "Extracted", v.Catalog().Entries[0].Name)
}
