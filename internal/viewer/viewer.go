// Package viewer runs the frame loop and coordinates map loading,
// extraction and file watching around it.
package viewer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/philipparndt/pmapview/internal/config"
	"github.com/philipparndt/pmapview/internal/input"
	"github.com/philipparndt/pmapview/internal/logger"
	"github.com/philipparndt/pmapview/internal/render"
	"github.com/philipparndt/pmapview/internal/scene"
	"github.com/philipparndt/pmapview/pkg/catalog"
	"github.com/philipparndt/pmapview/pkg/extractor"
	"github.com/philipparndt/pmapview/pkg/pmap"
	"github.com/philipparndt/pmapview/pkg/watcher"
)

// Viewer owns the scene state and everything that feeds it
type Viewer struct {
	cfg     *config.Config
	state   *scene.State
	control *input.Controller
	pass    render.Pass

	store   *pmap.Store
	catalog *catalog.Catalog
	filter  string
	current *pmap.Map
	source  string // path of the displayed map file

	task       *extractor.Task
	extraction extractor.Status

	fileWatcher   *watcher.FileWatcher
	watchingData  bool
	reloadCatalog atomic.Bool
	reloadMap     atomic.Bool

	frames uint64
}

// New creates a viewer and reads the map index. A missing index is logged
// and leaves the catalog empty.
func New(cfg *config.Config) *Viewer {
	st := scene.NewState(cfg.Window.Width, cfg.Window.Height, cfg.Camera.InitialScale)
	st.Overlay = scene.NewOverlay(cfg.Overlay.Radii, cfg.Overlay.Segments)

	v := &Viewer{
		cfg:     cfg,
		state:   st,
		store:   pmap.NewStore(cfg.Data.Dir, cfg.Data.Extension),
		catalog: &catalog.Catalog{},
	}
	v.control = input.NewController(st, input.Bindings{
		Wireframe: cfg.Keys.Wireframe,
		Overlay:   cfg.Keys.Overlay,
		Spawn:     cfg.Keys.Spawn,
	})
	v.control.OnSpawn = v.JumpToSpawn

	v.task = extractor.NewTask(cfg.Extractor.Command, cfg.Extractor.Args)
	v.task.SetDir(cfg.Extractor.Dir)

	if err := v.ReloadCatalog(); err != nil {
		logger.Warn("map index not loaded: %v", err)
	}
	return v
}

func (v *Viewer) State() *scene.State {
	return v.state
}

func (v *Viewer) Controller() *input.Controller {
	return v.control
}

func (v *Viewer) Config() *config.Config {
	return v.cfg
}

func (v *Viewer) Catalog() *catalog.Catalog {
	return v.catalog
}

func (v *Viewer) Store() *pmap.Store {
	return v.store
}

// CurrentMap returns the displayed map, or nil
func (v *Viewer) CurrentMap() *pmap.Map {
	return v.current
}

// Frames returns the number of rendered frames
func (v *Viewer) Frames() uint64 {
	return v.frames
}

// Run drives the frame loop until a quit event arrives
func (v *Viewer) Run(p Platform) {
	logger.Info("viewer started")
	for v.Frame(p) {
	}
	logger.Info("viewer stopped after %d frames", v.frames)
}

// Frame processes pending work and events and renders one frame. It
// returns false once the user asked to quit.
func (v *Viewer) Frame(p Platform) bool {
	v.pollExtraction()
	v.applyReloads()

	v.control.HandleAll(p.PollEvents())
	if v.control.Quitting() {
		return false
	}

	p.BeginFrame()
	v.pass.Draw(p.Surface(), v.state)
	p.DrawUI(v)
	p.EndFrame()

	v.state.Dirty = false
	v.frames++
	return true
}

// SelectMap selects catalog entry i and displays its map. On failure the
// previous map stays on screen.
func (v *Viewer) SelectMap(i int) error {
	entry, err := v.catalog.Entry(i)
	if err != nil {
		return err
	}
	if err := v.LoadFile(v.store.Path(entry.FileID)); err != nil {
		return fmt.Errorf("map %q: %w", entry.Name, err)
	}

	if _, err := v.catalog.Select(i); err != nil {
		return err
	}
	logger.Info("selected map %d %q (file %d)", entry.ID, entry.Name, entry.FileID)
	return nil
}

// LoadFile displays a map file directly
func (v *Viewer) LoadFile(path string) error {
	m, err := pmap.Parse(path)
	if err != nil {
		logger.Error("failed to load %v: %v", path, err)
		return err
	}
	previous := v.source
	v.current = m
	v.source = path
	v.state.Mesh.Load(m.Trapezoids)
	v.state.Dirty = true
	logger.Info("loaded %d trapezoids from %v (max plane %d)", m.TrapezoidCount(), filepath.Base(path), v.state.Mesh.MaxPlane())

	if v.fileWatcher != nil {
		if previous != "" && previous != path {
			v.fileWatcher.Unwatch(previous)
		}
		if err := v.fileWatcher.WatchFile(path, func(string) { v.reloadMap.Store(true) }); err != nil {
			logger.Warn("cannot watch %v: %v", path, err)
		}
	}
	return nil
}

// JumpToSpawn centers the camera on the selected entry's spawn point
func (v *Viewer) JumpToSpawn() {
	if sel := v.catalog.Selected(); sel != nil {
		v.state.Camera.CenterOn(sel.Spawn)
		logger.Debug("centered on spawn of %q at %v", sel.Name, sel.Spawn)
	}
}

// SetFilter shows only catalog entries matching query
func (v *Viewer) SetFilter(query string) int {
	v.filter = query
	return v.catalog.Filter(query)
}

func (v *Viewer) Filter() string {
	return v.filter
}

// ReloadCatalog reads the map index again, keeping the selection and the
// current filter
func (v *Viewer) ReloadCatalog() error {
	c, err := catalog.Load(v.cfg.Data.Catalog)
	if err != nil {
		return err
	}
	for _, s := range c.Skipped {
		logger.Warn("%v:%d skipped: %v", v.cfg.Data.Catalog, s.Line, s.Reason)
	}
	c.Restore(v.catalog)
	c.Filter(v.filter)
	v.catalog = c
	logger.Info("map index has %d entries", c.Len())
	return nil
}

// NeedsExtraction reports whether the map data has to be extracted first
func (v *Viewer) NeedsExtraction() bool {
	return !v.store.Exists() && v.extraction != extractor.Running
}

// StartExtraction runs the extractor on the given game data file
func (v *Viewer) StartExtraction(datPath string) error {
	if datPath == "" {
		return errors.New("no data file given")
	}
	if _, err := os.Stat(datPath); err != nil {
		return fmt.Errorf("data file: %w", err)
	}
	if err := v.task.Start(datPath); err != nil {
		return err
	}
	v.extraction = extractor.Running
	logger.Info("extracting %v: %v %v", datPath, v.cfg.Extractor.Command, v.task.Args(datPath))
	return nil
}

// ExtractionStatus returns the state of the last extraction as seen by
// the frame loop
func (v *Viewer) ExtractionStatus() extractor.Status {
	return v.extraction
}

// ExtractionTask exposes the task for progress display
func (v *Viewer) ExtractionTask() *extractor.Task {
	return v.task
}

func (v *Viewer) pollExtraction() {
	if v.extraction != extractor.Running {
		return
	}
	status := v.task.Poll()
	if status == extractor.Running {
		return
	}
	v.extraction = status

	switch status {
	case extractor.Succeeded:
		logger.Info("extraction finished in %v", v.task.Elapsed())
	default:
		logger.Error("extraction failed: %v\n%v", v.task.Err(), v.task.Output())
	}
	if err := v.ReloadCatalog(); err != nil {
		logger.Warn("map index not loaded: %v", err)
	}
	v.watchDataDir()
	v.state.Dirty = true
}

// Watch starts reloading the map index and the displayed map when they
// change on disk
func (v *Viewer) Watch() error {
	if v.fileWatcher != nil {
		return nil
	}
	fw, err := watcher.NewFileWatcher(v.cfg.Debounce())
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	fw.OnError(func(err error) {
		logger.Warn("watcher: %v", err)
	})
	if err := fw.WatchFile(v.cfg.Data.Catalog, func(string) { v.reloadCatalog.Store(true) }); err != nil {
		logger.Warn("cannot watch %v: %v", v.cfg.Data.Catalog, err)
	}
	v.fileWatcher = fw
	v.watchDataDir()
	if v.source != "" {
		if err := fw.WatchFile(v.source, func(string) { v.reloadMap.Store(true) }); err != nil {
			logger.Warn("cannot watch %v: %v", v.source, err)
		}
	}
	fw.Start()
	return nil
}

// watchDataDir reloads the map index when files appear in the data
// directory. The directory may only exist after an extraction.
func (v *Viewer) watchDataDir() {
	if v.fileWatcher == nil || v.watchingData || !v.store.Exists() {
		return
	}
	if err := v.fileWatcher.WatchDir(v.cfg.Data.Dir, func(string) { v.reloadCatalog.Store(true) }); err != nil {
		logger.Warn("cannot watch %v: %v", v.cfg.Data.Dir, err)
		return
	}
	v.watchingData = true
}

func (v *Viewer) applyReloads() {
	if v.reloadCatalog.Swap(false) {
		logger.Info("map index changed, reloading")
		if err := v.ReloadCatalog(); err != nil {
			logger.Warn("map index not reloaded: %v", err)
		}
	}
	if v.reloadMap.Swap(false) && v.source != "" {
		logger.Info("map file changed, reloading")
		_ = v.LoadFile(v.source)
	}
}

// Close stops file watching
func (v *Viewer) Close() error {
	if v.fileWatcher == nil {
		return nil
	}
	err := v.fileWatcher.Close()
	v.fileWatcher = nil
	v.watchingData = false
	return err
}
