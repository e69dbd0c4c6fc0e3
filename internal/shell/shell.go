// Package shell is the orchestration side of the editor: it owns the window
// registry, opens and saves files on behalf of the per-window surfaces, and
// keeps one watch subscription per window.
package shell

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mithrel/firesale/internal/db"
	"github.com/mithrel/firesale/internal/dialog"
	"github.com/mithrel/firesale/internal/document"
	"github.com/mithrel/firesale/internal/fileio"
	"github.com/mithrel/firesale/internal/window"
	"github.com/mithrel/firesale/pkg/api"
)

// Dispatcher posts fn onto the host event loop. Callbacks from other
// goroutines (file watches, IPC) must go through it.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(fn func())

func (f DispatchFunc) Dispatch(fn func()) { f(fn) }

// Surface is the per-window side the shell pushes file messages to.
type Surface interface {
	FileOpened(path, content string, done func(accepted bool))
	FileChanged(path, content string)
}

// SurfaceFactory attaches a surface to a freshly created window.
type SurfaceFactory func(win *window.Window, main document.Main) Surface

// WatchFunc subscribes to changes of path.
type WatchFunc func(path string, onChange func(content string)) (window.Subscription, error)

// Options configures a Shell. Zero values select the defaults below.
type Options struct {
	Offset          int
	DocumentsDir    string
	OpenFilters     []dialog.FileFilter
	MarkdownFilters []dialog.FileFilter
	HTMLFilters     []dialog.FileFilter
	Policy          dialog.Policy
	// Store records recently opened documents; nil disables it.
	Store       *db.Store
	RecentLimit int
	Logger      *log.Logger
	Watch       WatchFunc
	// OnAllClosed runs after the last window is destroyed.
	OnAllClosed func()
}

var (
	DefaultOpenFilters     = []dialog.FileFilter{{Name: "Markdown files", Extensions: []string{"md", "markdown", "txt"}}}
	DefaultMarkdownFilters = []dialog.FileFilter{{Name: "Markdown files", Extensions: []string{"md", "markdown"}}}
	DefaultHTMLFilters     = []dialog.FileFilter{{Name: "HTML files", Extensions: []string{"html", "htm"}}}
)

// Shell implements document.Main for every window it creates.
type Shell struct {
	ctx        context.Context
	reg        *window.Registry
	host       dialog.Host
	dispatch   Dispatcher
	newSurface SurfaceFactory
	surfaces   map[window.ID]Surface
	opts       Options
	log        *log.Logger
}

var _ document.Main = (*Shell)(nil)

// New wires a shell to its host. ctx bounds recent-document bookkeeping.
func New(ctx context.Context, host dialog.Host, d Dispatcher, factory SurfaceFactory, opts Options) *Shell {
	if opts.OpenFilters == nil {
		opts.OpenFilters = DefaultOpenFilters
	}
	if opts.MarkdownFilters == nil {
		opts.MarkdownFilters = DefaultMarkdownFilters
	}
	if opts.HTMLFilters == nil {
		opts.HTMLFilters = DefaultHTMLFilters
	}
	if opts.Watch == nil {
		opts.Watch = func(path string, onChange func(string)) (window.Subscription, error) {
			return fileio.Watch(path, onChange)
		}
	}
	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	s := &Shell{
		ctx:        ctx,
		reg:        window.NewRegistry(opts.Offset),
		host:       host,
		dispatch:   d,
		newSurface: factory,
		surfaces:   make(map[window.ID]Surface),
		opts:       opts,
		log:        lg,
	}
	s.reg.OnClose(s.interceptClose)
	s.reg.OnClosed(s.windowClosed)
	return s
}

func (s *Shell) Registry() *window.Registry { return s.reg }

// Surface returns the surface attached to id.
func (s *Shell) Surface(id window.ID) (Surface, bool) {
	surf, ok := s.surfaces[id]
	return surf, ok
}

// CreateWindow opens a new window with an empty document and focuses it.
func (s *Shell) CreateWindow() *window.Window {
	w := s.reg.Create()
	s.surfaces[w.ID] = s.newSurface(w, s)
	s.reg.Show(w.ID)
	s.log.Printf("window created id=%d", w.ID)
	return w
}

// GetFileFromUser asks for a file and opens it in win. Cancel does nothing.
func (s *Shell) GetFileFromUser(win window.ID) {
	opts := dialog.OpenOptions{
		Title:       "Open File",
		DefaultPath: s.opts.DocumentsDir,
		Filters:     s.opts.OpenFilters,
	}
	s.host.ShowOpenDialog(win, opts, func(paths []string, canceled bool) {
		if canceled || len(paths) == 0 {
			return
		}
		_ = s.OpenFile(win, paths[0])
	})
}

// OpenFile reads path and offers it to the surface of win. Only once the
// surface accepts it is it recorded as the window's file and watched.
func (s *Shell) OpenFile(win window.ID, path string) error {
	surf, ok := s.surfaces[win]
	if !ok {
		return fmt.Errorf("open file: unknown window %d", win)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	content, err := fileio.Read(path)
	if err != nil {
		s.fail(win, "Could not open file", err)
		return err
	}
	surf.FileOpened(path, content, func(accepted bool) {
		if !accepted {
			return
		}
		s.opened(win, path, content)
	})
	return nil
}

func (s *Shell) opened(win window.ID, path, content string) {
	w, ok := s.reg.Get(win)
	if !ok {
		return
	}
	w.RepresentedFile = path
	s.log.Printf("opened file window=%d path=%q", win, path)
	s.addRecentDocument(path, content)
	s.startWatching(win, path)
}

func (s *Shell) addRecentDocument(path, content string) {
	if s.opts.Store == nil {
		return
	}
	if err := s.opts.Store.Remember(s.ctx, path, api.Digest(content), s.opts.RecentLimit); err != nil {
		s.log.Printf("recent document path=%q err=%v", path, err)
	}
}

func (s *Shell) startWatching(win window.ID, path string) {
	sub, err := s.opts.Watch(path, func(content string) {
		s.dispatch.Dispatch(func() { s.fileChanged(win, path, content) })
	})
	if err != nil {
		s.log.Printf("watch error window=%d path=%q err=%v", win, path, err)
		s.reg.StopWatching(win)
		return
	}
	s.reg.SetWatch(win, sub)
}

func (s *Shell) fileChanged(win window.ID, path, content string) {
	w, ok := s.reg.Get(win)
	if !ok || w.RepresentedFile != path {
		return
	}
	if surf, ok := s.surfaces[win]; ok {
		surf.FileChanged(path, content)
	}
}

// SaveMarkdown writes content to path, asking for a path when it is empty,
// and then reopens the file so the session matches the disk.
func (s *Shell) SaveMarkdown(win window.ID, path, content string) {
	if path != "" {
		s.writeMarkdown(win, path, content)
		return
	}
	opts := dialog.SaveOptions{
		Title:       "Save Markdown",
		DefaultPath: s.opts.DocumentsDir,
		Filters:     s.opts.MarkdownFilters,
	}
	s.host.ShowSaveDialog(win, opts, func(p string, canceled bool) {
		if canceled || p == "" {
			return
		}
		s.writeMarkdown(win, p, content)
	})
}

func (s *Shell) writeMarkdown(win window.ID, path, content string) {
	if err := fileio.Write(path, content); err != nil {
		s.fail(win, "Could not save file", err)
		return
	}
	_ = s.OpenFile(win, path)
}

// SaveHTML asks for a destination and writes html there unchanged.
func (s *Shell) SaveHTML(win window.ID, html string) {
	opts := dialog.SaveOptions{
		Title:       "Save HTML",
		DefaultPath: s.opts.DocumentsDir,
		Filters:     s.opts.HTMLFilters,
	}
	s.host.ShowSaveDialog(win, opts, func(p string, canceled bool) {
		if canceled || p == "" {
			return
		}
		if err := fileio.Write(p, html); err != nil {
			s.fail(win, "Could not export HTML", err)
		}
	})
}

// OpenExternal handles a file handed over by the OS or another process: a new
// window is created and the file opened in it.
func (s *Shell) OpenExternal(path string) (*window.Window, error) {
	w := s.CreateWindow()
	return w, s.OpenFile(w.ID, path)
}

// RequestClose closes win, asking first when it holds unsaved edits.
func (s *Shell) RequestClose(win window.ID) bool { return s.reg.Close(win) }

// Quit requests close of every window.
func (s *Shell) Quit() {
	for _, w := range s.reg.List() {
		s.reg.Close(w.ID)
	}
}

// Windows describes the live windows.
func (s *Shell) Windows() []api.WindowInfo {
	list := s.reg.List()
	out := make([]api.WindowInfo, 0, len(list))
	for _, w := range list {
		out = append(out, api.WindowInfo{ID: int(w.ID), Title: w.Title, Path: w.RepresentedFile, Edited: w.Edited})
	}
	return out
}

func (s *Shell) interceptClose(w *window.Window, ev *window.CloseEvent) {
	if !w.Edited {
		return
	}
	ev.PreventDefault()
	id := w.ID
	dialog.Confirm(s.host, id, s.opts.Policy.CloseUnsaved(), func() {
		s.reg.Destroy(id)
	})
}

func (s *Shell) windowClosed(w *window.Window) {
	delete(s.surfaces, w.ID)
	s.log.Printf("window closed id=%d", w.ID)
	if s.reg.Len() == 0 && s.opts.OnAllClosed != nil {
		s.opts.OnAllClosed()
	}
}

func (s *Shell) fail(win window.ID, title string, err error) {
	s.log.Printf("%s window=%d err=%v", title, win, err)
	s.host.ShowError(win, title, err)
}
