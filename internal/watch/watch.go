// Package watch implements the drop-folder auto-importer. Each import
// stream has a subfolder under the watch root; CSV files placed there are
// run through the import pipeline and moved to an Uploaded subfolder on
// success. Failures stay in place so they can be corrected and re-dropped,
// with the reason recorded in the stream's error slot.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"gallerydesk/internal/core"
)

const (
	uploadedDir = "Uploaded"

	// settleDelay is how long a dropped file must go without further write
	// events before it is imported. Importing on the raw Create event would
	// read files still being copied in, and a truncated CSV whose prefix rows
	// all validate would be applied as if complete.
	settleDelay = 2 * time.Second
)

// Watcher imports CSV files dropped into per-stream folders.
type Watcher struct {
	root     string
	importer *core.Importer
	settle   time.Duration
}

// New creates a watcher over root. The per-stream subfolders are created if
// missing so a fresh deployment works without manual setup.
func New(root string, importer *core.Importer) (*Watcher, error) {
	for _, kind := range core.Kinds {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create watch folder for %s: %w", kind, err)
		}
	}
	return &Watcher{root: root, importer: importer, settle: settleDelay}, nil
}

// Run sweeps any files already present, then blocks processing filesystem
// events until the context is cancelled. Events do not trigger imports
// directly: each file is held in a pending set and imported only after it has
// been quiet for the settle window, so a writer still appending keeps
// deferring its own import.
func (w *Watcher) Run(ctx context.Context) error {
	w.Sweep()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Close()

	for _, kind := range core.Kinds {
		if err := fw.Add(filepath.Join(w.root, string(kind))); err != nil {
			return fmt.Errorf("watch %s folder: %w", kind, err)
		}
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if _, ok := kindForPath(w.root, event.Name); !ok || !isCSV(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case <-ticker.C:
			for _, path := range settled(pending, time.Now(), w.settle) {
				kind, ok := kindForPath(w.root, path)
				if !ok {
					continue
				}
				w.importFile(kind, path)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

// settled returns the pending paths whose last event is at least the settle
// window old, removing them from the set. Files still receiving writes keep
// refreshing their entry and stay pending.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var out []string
	for path, last := range pending {
		if now.Sub(last) >= settle {
			out = append(out, path)
			delete(pending, path)
		}
	}
	return out
}

// Sweep imports every CSV already sitting in the per-stream folders, in
// directory order. Useful on startup and directly callable from tests.
func (w *Watcher) Sweep() {
	for _, kind := range core.Kinds {
		dir := filepath.Join(w.root, string(kind))
		entries, err := os.ReadDir(dir)
		if err != nil {
			slog.Warn("sweep failed", "kind", kind, "error", err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !isCSV(entry.Name()) {
				continue
			}
			w.importFile(kind, filepath.Join(dir, entry.Name()))
		}
	}
}

// importFile runs one file through the pipeline and moves it to the
// Uploaded folder on success.
func (w *Watcher) importFile(kind core.Kind, path string) {
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("open dropped file", "kind", kind, "file", path, "error", err)
		return
	}

	result, err := w.importer.Import(kind, filepath.Base(path), f)
	f.Close()
	if err != nil {
		slog.Error("drop-folder import failed",
			"kind", kind,
			"file", filepath.Base(path),
			"error", err,
		)
		return
	}

	slog.Info("drop-folder import complete",
		"kind", kind,
		"file", result.FileName,
		"rows", result.Rows,
		"import_id", result.ImportID,
	)

	dest := filepath.Join(filepath.Dir(path), uploadedDir)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		slog.Warn("create Uploaded folder", "error", err)
		return
	}
	if err := os.Rename(path, filepath.Join(dest, filepath.Base(path))); err != nil {
		slog.Warn("move imported file", "file", path, "error", err)
	}
}

// kindForPath resolves which stream folder a path belongs to.
func kindForPath(root, path string) (core.Kind, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 2 {
		return "", false
	}
	return core.ParseKind(parts[0])
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
