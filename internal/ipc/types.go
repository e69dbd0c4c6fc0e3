package ipc

import "github.com/mithrel/firesale/pkg/api"

// Commands understood by a running instance.
const (
	CmdFileOpen   = "file.open"
	CmdWindowNew  = "window.new"
	CmdWindowList = "window.list"
	CmdPing       = "ping"
)

// Message is a command sent from the CLI to a running instance.
type Message struct {
	Name  string   `json:"name"`
	Paths []string `json:"paths,omitempty"`
}

// Response is the instance reply.
type Response struct {
	OK      bool             `json:"ok"`
	Msg     string           `json:"msg,omitempty"`
	Windows []api.WindowInfo `json:"windows,omitempty"`
}
