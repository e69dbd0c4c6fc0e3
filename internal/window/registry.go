package window

import (
	"log"
	"sort"
)

// DefaultOffset is how far a new window is shifted from the focused one.
const DefaultOffset = 20

// Registry tracks live windows, the focused one, and one watch subscription
// per window. It is not safe for concurrent use; the host event loop owns it.
type Registry struct {
	offset   int
	nextID   ID
	windows  map[ID]*Window
	watches  map[ID]Subscription
	focused  ID
	onClose  []func(*Window, *CloseEvent)
	onClosed []func(*Window)
}

// NewRegistry returns an empty registry. offset <= 0 selects DefaultOffset.
func NewRegistry(offset int) *Registry {
	if offset <= 0 {
		offset = DefaultOffset
	}
	return &Registry{
		offset:  offset,
		windows: make(map[ID]*Window),
		watches: make(map[ID]Subscription),
	}
}

// Create allocates a hidden window. If a window is focused the new one is
// placed offset units right and down of it; otherwise the host default is used.
// The new window becomes focused.
func (r *Registry) Create() *Window {
	r.nextID++
	w := &Window{ID: r.nextID}
	if cur := r.Focused(); cur != nil {
		w.X = cur.X + r.offset
		w.Y = cur.Y + r.offset
		w.Positioned = true
	}
	r.windows[w.ID] = w
	r.focused = w.ID
	return w
}

// Show marks a window visible once its initial content is loaded.
func (r *Registry) Show(id ID) {
	if w, ok := r.windows[id]; ok {
		w.Visible = true
	}
}

// Focus makes id the focused window. Unknown ids are ignored.
func (r *Registry) Focus(id ID) {
	if _, ok := r.windows[id]; ok {
		r.focused = id
	}
}

// Focused returns the focused window or nil.
func (r *Registry) Focused() *Window {
	return r.windows[r.focused]
}

func (r *Registry) Get(id ID) (*Window, bool) {
	w, ok := r.windows[id]
	return w, ok
}

// List returns live windows in creation order.
func (r *Registry) List() []*Window {
	out := make([]*Window, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Len() int { return len(r.windows) }

// OnClose registers a close intercept.
func (r *Registry) OnClose(fn func(*Window, *CloseEvent)) {
	r.onClose = append(r.onClose, fn)
}

// OnClosed registers a handler run after a window is destroyed.
func (r *Registry) OnClosed(fn func(*Window)) {
	r.onClosed = append(r.onClosed, fn)
}

// Close asks to close id. Close handlers may prevent it; otherwise the window
// is destroyed. It reports whether the window was destroyed.
func (r *Registry) Close(id ID) bool {
	w, ok := r.windows[id]
	if !ok {
		return false
	}
	ev := &CloseEvent{}
	for _, fn := range r.onClose {
		fn(w, ev)
	}
	if ev.DefaultPrevented() {
		return false
	}
	r.Destroy(id)
	return true
}

// Destroy removes id without consulting close handlers, closes its watch
// subscription, and runs closed handlers.
func (r *Registry) Destroy(id ID) {
	w, ok := r.windows[id]
	if !ok {
		return
	}
	delete(r.windows, id)
	r.StopWatching(id)
	if r.focused == id {
		r.focused = 0
		if list := r.List(); len(list) > 0 {
			r.focused = list[len(list)-1].ID
		}
	}
	for _, fn := range r.onClosed {
		fn(w)
	}
}

// SetWatch installs sub as the watch of id, closing any previous one.
// Subscriptions for unknown windows are closed immediately.
func (r *Registry) SetWatch(id ID, sub Subscription) {
	if _, ok := r.windows[id]; !ok {
		closeWatch(id, sub)
		return
	}
	r.StopWatching(id)
	r.watches[id] = sub
}

// StopWatching closes and forgets the watch of id, if any.
func (r *Registry) StopWatching(id ID) {
	sub, ok := r.watches[id]
	if !ok {
		return
	}
	delete(r.watches, id)
	closeWatch(id, sub)
}

// Watching reports whether id currently holds a watch subscription.
func (r *Registry) Watching(id ID) bool {
	_, ok := r.watches[id]
	return ok
}

// WatchCount returns the number of live subscriptions.
func (r *Registry) WatchCount() int { return len(r.watches) }

func closeWatch(id ID, sub Subscription) {
	if sub == nil {
		return
	}
	if err := sub.Close(); err != nil {
		log.Printf("close watch window=%d err=%v", id, err)
	}
}
