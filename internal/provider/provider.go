// Package provider keeps a bookmark tree in sync with the store file it was
// parsed from.
//
// A Provider parses its store once on construction, then re-parses it every
// time the file is created or written. Each successful parse replaces the
// published tree atomically; a failed parse keeps the previous one.
package provider

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/parser"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by Reload after Close.
var ErrClosed = errors.New("provider closed")

// Option configures a Provider
type Option func(*Provider)

// WithLogger sets the logger for reload events
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithOnReload registers fn to be called with every newly published tree.
// fn runs on the goroutine that performed the reload and must not call Close.
func WithOnReload(fn func(root *models.Node)) Option {
	return func(p *Provider) {
		if fn != nil {
			p.onReload = append(p.onReload, fn)
		}
	}
}

// Provider publishes the current bookmark tree of one browser store
type Provider struct {
	name     string
	path     string
	parser   parser.FormatParser
	logger   *slog.Logger
	onReload []func(*models.Node)

	root      atomic.Pointer[models.Node]
	watcher   *fsnotify.Watcher
	mu        sync.Mutex // orders publishing against Close
	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{} // closed when the watch loop exits
}

// New parses the store at path and starts watching it for changes.
//
// Parse failures are logged and leave an empty tree; only failing to watch
// the store's directory is returned as an error.
func New(name, path string, p parser.FormatParser, opts ...Option) (*Provider, error) {
	prov := &Provider{
		name:   name,
		path:   path,
		parser: p,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(prov)
	}
	prov.logger = prov.logger.With("browser", name, "store", path)
	prov.root.Store(models.NewRoot())

	_ = prov.Reload()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("cannot watch %s: %w", filepath.Dir(path), err)
	}
	prov.watcher = watcher

	go prov.watch()
	return prov, nil
}

// Name returns the browser name the provider was created for
func (p *Provider) Name() string { return p.name }

// Path returns the watched store file
func (p *Provider) Path() string { return p.path }

// Root returns the current tree. It never returns nil and never blocks.
func (p *Provider) Root() *models.Node {
	return p.root.Load()
}

// Reload re-parses the store and publishes the result.
//
// On failure the previous tree stays published and the error is returned.
// Concurrent reloads are independent; the last one to finish wins.
func (p *Provider) Reload() error {
	if p.closed.Load() {
		return ErrClosed
	}

	root, err := p.parser.Parse(p.path)
	reloadsTotal.WithLabelValues(p.name, reloadResult(err)).Inc()
	if err != nil {
		if errors.Is(err, parser.ErrStoreNotFound) {
			p.logger.Warn("bookmark store not found", "error", err)
		} else {
			p.logger.Error("failed to reload bookmarks, keeping previous tree", "error", err)
		}
		return err
	}

	p.mu.Lock()
	if p.closed.Load() {
		p.mu.Unlock()
		p.logger.Debug("provider closed during reload, discarding tree")
		return ErrClosed
	}
	p.root.Store(root)
	p.mu.Unlock()

	folders, bookmarks := root.Count()
	treeNodes.WithLabelValues(p.name, string(models.ItemTypeFolder)).Set(float64(folders))
	treeNodes.WithLabelValues(p.name, string(models.ItemTypeBookmark)).Set(float64(bookmarks))
	lastReload.WithLabelValues(p.name).Set(float64(time.Now().Unix()))
	p.logger.Info("bookmarks loaded", "folders", folders, "bookmarks", bookmarks)

	for _, fn := range p.onReload {
		fn(root)
	}
	return nil
}

// Close stops watching the store. The last tree stays readable.
// Close does not wait for a parse in flight; its result is discarded.
func (p *Provider) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed.Store(true)
		p.mu.Unlock()
		err = p.watcher.Close()
	})
	return err
}

func (p *Provider) watch() {
	defer close(p.done)

	for {
		select {
		case ev, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if !p.isStoreChange(ev) {
				continue
			}
			p.drainEvents()
			p.logger.Debug("bookmark store changed", "event", ev.String())
			_ = p.Reload()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("file watcher error", "error", err)
		}
	}
}

// isStoreChange reports whether ev is a creation of, or write to, the store
// file or its write-ahead log.
func (p *Provider) isStoreChange(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(p.path)
	name := filepath.Base(ev.Name)
	return name == base || name == base+"-wal"
}

// drainEvents drops events already queued behind the one being handled, so
// a burst of writes triggers a single parse.
func (p *Provider) drainEvents() {
	for {
		select {
		case _, ok := <-p.watcher.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
