package transport

import (
	"context"
	"net"

	"google.golang.org/protobuf/proto"
)

// Handler processes a single protobuf request and returns a response.
type Handler interface {
	Handle(ctx context.Context, req any) (resp any, err error)
}

// ProtoTypes is implemented by handlers to supply empty request and response
// messages to decode into.
type ProtoTypes interface {
	ProtoTypes() (req, resp proto.Message)
}

// Server accepts connections and dispatches length-prefixed protobuf messages
// to a Handler.
type Server interface {
	// Serve blocks, handling requests until ctx is done or an error occurs.
	Serve(ctx context.Context, h Handler) error
}

// Client does one request/response round trip per call.
type Client interface {
	Do(ctx context.Context, req any) (resp any, err error)
}

// Listener abstracts how a server obtains a net.Listener.
type Listener interface {
	Listen(ctx context.Context) (net.Listener, error)
}
