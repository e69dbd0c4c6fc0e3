package document

import (
	"strings"

	"github.com/mithrel/firesale/internal/dialog"
	"github.com/mithrel/firesale/internal/render"
	"github.com/mithrel/firesale/internal/window"
)

// Main is the orchestration side a window's surface invokes.
type Main interface {
	GetFileFromUser(win window.ID)
	CreateWindow() *window.Window
	OpenFile(win window.ID, path string) error
	SaveMarkdown(win window.ID, path, content string)
	SaveHTML(win window.ID, html string)
}

// DroppedFile is a file dragged onto the edit surface. Type is the declared
// MIME type, empty when unknown.
type DroppedFile struct {
	Path string
	Type string
}

// DragState is the accept/reject affordance shown while dragging.
type DragState int

const (
	DragNone DragState = iota
	DragAccept
	DragReject
)

// DefaultAcceptTypes are the drop MIME types opened without complaint.
var DefaultAcceptTypes = []string{"text/plain", ""}

// UnsupportedDropMessage is the alert shown for a rejected drop.
const UnsupportedDropMessage = "That file type is not supported"

// Options tunes a Controller.
type Options struct {
	Policy dialog.Policy
	// AcceptTypes overrides DefaultAcceptTypes when non-nil.
	AcceptTypes []string
	// Preview renders the terminal preview pane; nil leaves it empty.
	Preview func(markdown string) string
}

// Controller is the per-window surface: it owns the Document Session, runs the
// edit/render loop, and mediates file-opened and file-changed messages.
type Controller struct {
	win     *window.Window
	main    Main
	dialogs dialog.Host
	opts    Options

	session Session
	html    string
	preview string
	drag    DragState

	saveEnabled   bool
	revertEnabled bool

	onReplace []func(content string)
}

// NewController binds a surface to win. The window title is initialised.
func NewController(win *window.Window, main Main, dialogs dialog.Host, opts Options) *Controller {
	if opts.AcceptTypes == nil {
		opts.AcceptTypes = DefaultAcceptTypes
	}
	c := &Controller{win: win, main: main, dialogs: dialogs, opts: opts}
	c.renderMarkdown()
	c.updateUserInterface()
	return c
}

// OnReplace registers a hook run whenever the controller itself replaces the
// edited text (load, reload, revert) so the edit surface can follow.
func (c *Controller) OnReplace(fn func(content string)) {
	c.onReplace = append(c.onReplace, fn)
}

func (c *Controller) Window() *window.Window { return c.win }
func (c *Controller) Session() Session       { return c.session }
func (c *Controller) HTML() string           { return c.html }
func (c *Controller) Preview() string        { return c.preview }
func (c *Controller) SaveEnabled() bool      { return c.saveEnabled }
func (c *Controller) RevertEnabled() bool    { return c.revertEnabled }
func (c *Controller) Drag() DragState        { return c.drag }

// FileOpened handles the file-opened message. If the window holds unsaved
// edits that differ from content the user is asked first; done reports whether
// the session was replaced.
func (c *Controller) FileOpened(path, content string, done func(accepted bool)) {
	if done == nil {
		done = func(bool) {}
	}
	if c.session.IsEdited() && c.session.DiffersFrom(content) {
		c.dialogs.ShowMessageBox(c.win.ID, c.opts.Policy.OverwriteUnsaved(), func(response int) {
			if response != dialog.ConfirmButton {
				done(false)
				return
			}
			c.renderFile(path, content)
			done(true)
		})
		return
	}
	c.renderFile(path, content)
	done(true)
}

// FileChanged handles a change reported by the window's watch subscription.
func (c *Controller) FileChanged(path, content string) {
	if !c.session.DiffersFrom(content) {
		return
	}
	if !c.session.IsEdited() {
		c.renderFile(path, content)
		return
	}
	dialog.Confirm(c.dialogs, c.win.ID, c.opts.Policy.ExternalChange(), func() {
		c.renderFile(path, content)
	})
}

// Edit is called on every content change of the edit surface.
func (c *Controller) Edit(content string) {
	c.session.SetContent(content)
	c.renderMarkdown()
	c.updateUserInterface()
}

// Revert restores the last loaded text without asking.
func (c *Controller) Revert() {
	c.session.Revert()
	c.replaced()
	c.renderMarkdown()
	c.updateUserInterface()
}

// Refresh re-renders the preview, e.g. after the pane was resized.
func (c *Controller) Refresh() { c.renderMarkdown() }

// Save writes the edited text to the session path, asking for one if unset.
func (c *Controller) Save() {
	c.main.SaveMarkdown(c.win.ID, c.session.FilePath, c.session.Current)
}

// SaveHTML exports the rendered preview.
func (c *Controller) SaveHTML() { c.main.SaveHTML(c.win.ID, c.html) }

// Open asks the user for a file to open in this window.
func (c *Controller) Open() { c.main.GetFileFromUser(c.win.ID) }

// New opens another window.
func (c *Controller) New() { c.main.CreateWindow() }

// DragOver reports and records whether f would be accepted.
func (c *Controller) DragOver(f DroppedFile) DragState {
	if c.FileTypeSupported(f.Type) {
		c.drag = DragAccept
	} else {
		c.drag = DragReject
	}
	return c.drag
}

// DragLeave clears the drag affordance.
func (c *Controller) DragLeave() { c.drag = DragNone }

// Drop opens f in this window, or alerts when its type is unsupported.
func (c *Controller) Drop(f DroppedFile) {
	c.drag = DragNone
	if !c.FileTypeSupported(f.Type) {
		c.dialogs.ShowAlert(c.win.ID, UnsupportedDropMessage)
		return
	}
	// Failures are already reported to the user by Main.
	_ = c.main.OpenFile(c.win.ID, f.Path)
}

// FileTypeSupported checks a declared MIME type against the accepted list,
// ignoring parameters such as charset.
func (c *Controller) FileTypeSupported(mimeType string) bool {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, t := range c.opts.AcceptTypes {
		if mimeType == t {
			return true
		}
	}
	return false
}

func (c *Controller) renderFile(path, content string) {
	c.session.Load(path, content)
	c.replaced()
	c.renderMarkdown()
	c.updateUserInterface()
}

func (c *Controller) replaced() {
	for _, fn := range c.onReplace {
		fn(c.session.Current)
	}
}

func (c *Controller) renderMarkdown() {
	c.html = render.HTML(c.session.Current)
	if c.opts.Preview != nil {
		c.preview = c.opts.Preview(c.session.Current)
	}
}

func (c *Controller) updateUserInterface() {
	edited := c.session.IsEdited()
	c.win.Title = c.session.Title()
	c.win.Edited = edited
	c.saveEnabled = edited
	c.revertEnabled = edited
}
