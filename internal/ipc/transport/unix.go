package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"google.golang.org/protobuf/proto"
)

// requestTimeout bounds a single round trip when ctx has no deadline.
const requestTimeout = 30 * time.Second

// UnixListener listens on a Unix domain socket path.
type UnixListener struct{ Path string }

func (u UnixListener) Listen(ctx context.Context) (net.Listener, error) {
	// Remove stale socket
	_ = os.Remove(u.Path)
	l, err := net.Listen("unix", u.Path)
	if err != nil {
		return nil, err
	}
	_ = os.Chmod(u.Path, 0o600)
	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()
	return l, nil
}

// UnixServer implements Server for Unix sockets with length-prefixed protobuf.
type UnixServer struct{ L Listener }

func NewUnixServer(l Listener) *UnixServer { return &UnixServer{L: l} }

func (s *UnixServer) Serve(ctx context.Context, h Handler) error {
	pt, ok := h.(ProtoTypes)
	if !ok {
		return errors.New("transport: handler does not implement ProtoTypes")
	}
	l, err := s.L.Listen(ctx)
	if err != nil {
		return err
	}
	defer l.Close()
	errc := make(chan error, 1)
	go func() {
		for {
			c, err := l.Accept()
			if err != nil {
				errc <- err
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				_ = conn.SetDeadline(time.Now().Add(requestTimeout))
				resp, err := dispatchProto(ctx, conn, pt, h)
				if err != nil {
					return
				}
				_ = writeProto(conn, resp)
			}(c)
		}
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errc:
		// If context canceled shortly after, suppress spurious errors
		if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
			return nil
		}
		return err
	}
}

// dispatchProto reads one request, hands it to h and returns the response.
func dispatchProto(ctx context.Context, conn net.Conn, pt ProtoTypes, h Handler) (proto.Message, error) {
	req, _ := pt.ProtoTypes()
	if err := readProto(conn, req); err != nil {
		return nil, err
	}
	r, err := h.Handle(ctx, req)
	if err != nil {
		return nil, err
	}
	pm, ok := r.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("transport: response %T is not a proto.Message", r)
	}
	return pm, nil
}

// UnixClient implements Client for Unix sockets with length-prefixed protobuf.
type UnixClient struct{ Path string }

func NewUnixClient(path string) *UnixClient { return &UnixClient{Path: path} }

func (c *UnixClient) Do(ctx context.Context, req any) (any, error) {
	pmReq, ok := req.(proto.Message)
	if !ok {
		return nil, os.ErrInvalid
	}
	pmResp, ok := ctx.Value(respTypeKey{}).(proto.Message)
	if !ok || pmResp == nil {
		return nil, os.ErrInvalid
	}
	d := &net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", c.Path)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	dl := time.Now().Add(requestTimeout)
	if ctxdl, ok := ctx.Deadline(); ok {
		dl = ctxdl
	}
	_ = conn.SetDeadline(dl)
	if err := writeProto(conn, pmReq); err != nil {
		return nil, err
	}
	if err := readProto(conn, pmResp); err != nil {
		return nil, err
	}
	return pmResp, nil
}

// respTypeKey is a context key for passing an empty response message instance.
type respTypeKey struct{}

// WithResp allocates a response container to unmarshal into.
func WithResp(ctx context.Context, resp proto.Message) context.Context {
	return context.WithValue(ctx, respTypeKey{}, resp)
}
