package instance

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/firesale/internal/ipc"
	"github.com/mithrel/firesale/internal/shell"
	"github.com/mithrel/firesale/internal/window"
	"github.com/mithrel/firesale/pkg/api"
)

type fakeTarget struct {
	opened  []string
	windows int
	failOn  string
}

func (f *fakeTarget) OpenExternal(path string) (*window.Window, error) {
	if path == f.failOn {
		return nil, errors.New("boom")
	}
	f.opened = append(f.opened, path)
	f.windows++
	return &window.Window{ID: window.ID(f.windows)}, nil
}

func (f *fakeTarget) CreateWindow() *window.Window {
	f.windows++
	return &window.Window{ID: window.ID(f.windows)}
}

func (f *fakeTarget) Windows() []api.WindowInfo {
	out := make([]api.WindowInfo, 0, f.windows)
	for i := 1; i <= f.windows; i++ {
		out = append(out, api.WindowInfo{ID: i})
	}
	return out
}

var inline = shell.DispatchFunc(func(fn func()) { fn() })

func TestHandlerCommands(t *testing.T) {
	tgt := &fakeTarget{}
	var logs bytes.Buffer
	h := Handler(inline, tgt, log.New(&logs, "", 0))
	ctx := context.Background()

	assert.True(t, h(ctx, ipc.Message{Name: ipc.CmdPing}).OK)

	r := h(ctx, ipc.Message{Name: ipc.CmdFileOpen, Paths: []string{"/a.md", "/b.md"}})
	require.True(t, r.OK)
	assert.Equal(t, []string{"/a.md", "/b.md"}, tgt.opened)
	assert.Len(t, r.Windows, 2)

	r = h(ctx, ipc.Message{Name: ipc.CmdWindowNew})
	assert.True(t, r.OK)
	assert.Len(t, r.Windows, 3)

	r = h(ctx, ipc.Message{Name: ipc.CmdWindowList})
	assert.Len(t, r.Windows, 3)

	assert.False(t, h(ctx, ipc.Message{Name: ipc.CmdFileOpen}).OK)
	assert.False(t, h(ctx, ipc.Message{Name: "bogus"}).OK)
	assert.Contains(t, logs.String(), "unknown IPC cmd=bogus")
}

func TestHandlerOpenError(t *testing.T) {
	tgt := &fakeTarget{failOn: "/bad.md"}
	h := Handler(inline, tgt, log.New(&bytes.Buffer{}, "", 0))
	r := h(context.Background(), ipc.Message{Name: ipc.CmdFileOpen, Paths: []string{"/bad.md"}})
	assert.False(t, r.OK)
	assert.Equal(t, "boom", r.Msg)
}

func TestHandlerGivesUpWhenLoopStalls(t *testing.T) {
	stalled := shell.DispatchFunc(func(func()) {})
	h := Handler(stalled, &fakeTarget{}, log.New(&bytes.Buffer{}, "", 0))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	r := h(ctx, ipc.Message{Name: ipc.CmdWindowList})
	assert.False(t, r.OK)
}

func TestServeAndForward(t *testing.T) {
	runtimeDir, err := os.MkdirTemp("", "fsrun")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(runtimeDir) })
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, ok := Forward(ctx, ipc.Message{Name: ipc.CmdWindowList})
	assert.False(t, ok)

	// The handler runs closures on a single goroutine like the event loop does.
	loop := make(chan func(), 8)
	go func() {
		for fn := range loop {
			fn()
		}
	}()
	tgt := &fakeTarget{}
	go func() {
		_ = Serve(ctx, shell.DispatchFunc(func(fn func()) { loop <- fn }), tgt, log.New(&bytes.Buffer{}, "", 0))
	}()

	var r ipc.Response
	require.Eventually(t, func() bool {
		r, ok = Forward(ctx, ipc.Message{Name: ipc.CmdFileOpen, Paths: []string{"/x.md"}})
		return ok
	}, 3*time.Second, 20*time.Millisecond)
	assert.True(t, r.OK)
	assert.Len(t, r.Windows, 1)
}

func TestForwardReportsFailedRequest(t *testing.T) {
	runtimeDir, err := os.MkdirTemp("", "fsrun")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(runtimeDir) })
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pings are answered but the loop never runs anything.
	stalled := shell.DispatchFunc(func(func()) {})
	go func() {
		_ = Serve(ctx, stalled, &fakeTarget{}, log.New(&bytes.Buffer{}, "", 0))
	}()
	sock, err := ipc.SocketPath()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return ipc.Ping(ctx, sock) }, 3*time.Second, 20*time.Millisecond)

	rctx, rcancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer rcancel()
	r, ok := Forward(rctx, ipc.Message{Name: ipc.CmdFileOpen, Paths: []string{"/x.md"}})
	assert.True(t, ok)
	assert.False(t, r.OK)
	assert.NotEmpty(t, r.Msg)
}
