// Package instance keeps a single running editor per user: the first process
// serves a Unix socket and later invocations forward their files to it.
package instance

import (
	"context"
	"log"

	"github.com/mithrel/firesale/internal/ipc"
	"github.com/mithrel/firesale/internal/shell"
	"github.com/mithrel/firesale/internal/window"
	"github.com/mithrel/firesale/pkg/api"
)

// Target is the part of the shell reachable from other processes.
type Target interface {
	OpenExternal(path string) (*window.Window, error)
	CreateWindow() *window.Window
	Windows() []api.WindowInfo
}

// Handler answers IPC commands. Every command runs on the event loop through
// d; the handler waits for the result or for ctx.
func Handler(d shell.Dispatcher, t Target, lg *log.Logger) func(context.Context, ipc.Message) ipc.Response {
	if lg == nil {
		lg = log.Default()
	}
	return func(ctx context.Context, m ipc.Message) ipc.Response {
		lg.Printf("ipc cmd=%s", m.Name)
		switch m.Name {
		case ipc.CmdPing:
			return ipc.Response{OK: true, Msg: "pong"}
		case ipc.CmdFileOpen:
			if len(m.Paths) == 0 {
				return ipc.Response{OK: false, Msg: "missing paths"}
			}
			return onLoop(ctx, d, func() ipc.Response {
				for _, p := range m.Paths {
					if _, err := t.OpenExternal(p); err != nil {
						return ipc.Response{OK: false, Msg: err.Error(), Windows: t.Windows()}
					}
				}
				return ipc.Response{OK: true, Windows: t.Windows()}
			})
		case ipc.CmdWindowNew:
			return onLoop(ctx, d, func() ipc.Response {
				t.CreateWindow()
				return ipc.Response{OK: true, Windows: t.Windows()}
			})
		case ipc.CmdWindowList:
			return onLoop(ctx, d, func() ipc.Response {
				return ipc.Response{OK: true, Windows: t.Windows()}
			})
		default:
			lg.Printf("unknown IPC cmd=%s", m.Name)
			return ipc.Response{OK: false, Msg: "unknown command"}
		}
	}
}

func onLoop(ctx context.Context, d shell.Dispatcher, fn func() ipc.Response) ipc.Response {
	ch := make(chan ipc.Response, 1)
	d.Dispatch(func() { ch <- fn() })
	select {
	case r := <-ch:
		return r
	case <-ctx.Done():
		return ipc.Response{OK: false, Msg: ctx.Err().Error()}
	}
}

// Serve answers commands on the default socket until ctx is done.
func Serve(ctx context.Context, d shell.Dispatcher, t Target, lg *log.Logger) error {
	sock, err := ipc.SocketPath()
	if err != nil {
		return err
	}
	return ipc.Serve(ctx, sock, Handler(d, t, lg))
}

// Forward hands m to a running instance. It reports false when none answers,
// in which case the caller should start one itself. An instance that answers
// the ping but fails the request yields true with a failed Response.
func Forward(ctx context.Context, m ipc.Message) (ipc.Response, bool) {
	sock, err := ipc.SocketPath()
	if err != nil {
		return ipc.Response{}, false
	}
	if !ipc.Ping(ctx, sock) {
		return ipc.Response{}, false
	}
	r, err := ipc.Request(ctx, sock, m)
	if err != nil {
		return ipc.Response{OK: false, Msg: err.Error()}, true
	}
	return r, true
}
