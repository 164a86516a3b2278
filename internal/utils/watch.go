package utils

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FilesWatcher reports changes to a set of files. Changes are coalesced:
// Changed fires once per quiet period no matter how many events arrived.
//
// Directories are watched rather than the files themselves, since editors
// commonly replace a file by renaming over it.
type FilesWatcher struct {
	w        *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]struct{}
	dirs     map[string]struct{}
	debounce time.Duration
	changed  chan string
	done     chan struct{}
	OnError  func(error)
}

func NewFilesWatcher(debounce time.Duration) (*FilesWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FilesWatcher{
		w:        w,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		debounce: debounce,
		changed:  make(chan string, 1),
		done:     make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

// SetFiles replaces the watched set. Missing files are ignored.
func (fw *FilesWatcher) SetFiles(filenames []string) {
	files := make(map[string]struct{}, len(filenames))
	dirs := make(map[string]struct{})
	for _, f := range filenames {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for d := range fw.dirs {
		if _, ok := dirs[d]; !ok {
			// best effort, ignore errors
			_ = fw.w.Remove(d)
		}
	}
	for d := range dirs {
		if _, ok := fw.dirs[d]; ok {
			continue
		}
		if err := fw.w.Add(d); err != nil {
			Debug("watcher: cannot watch %s: %v", d, err)
			delete(dirs, d)
		}
	}

	fw.mu.Lock()
	fw.files = files
	fw.mu.Unlock()
	fw.dirs = dirs
}

// Changed delivers the path of a changed file after the debounce period.
func (fw *FilesWatcher) Changed() <-chan string {
	return fw.changed
}

func (fw *FilesWatcher) Close() error {
	close(fw.done)
	return fw.w.Close() // closes fw.w.{Events,Errors}
}

func (fw *FilesWatcher) watching(name string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, ok := fw.files[name]
	return ok
}

func (fw *FilesWatcher) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !fw.watching(ev.Name) {
				continue
			}
			pending = ev.Name
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			select {
			case fw.changed <- pending:
			default:
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			if fw.OnError != nil {
				fw.OnError(err)
			} else {
				Warn("watcher: %v", err)
			}
		}
	}
}
