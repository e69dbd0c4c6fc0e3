package ipc

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mithrel/firesale/internal/ipc/transport"
)

// Request sends a Message to a running instance and waits for its Response.
func Request(ctx context.Context, path string, m Message) (Response, error) {
	req, err := toPbMessage(m)
	if err != nil {
		return Response{}, err
	}
	c := transport.NewUnixClient(path)
	out, err := c.Do(transport.WithResp(ctx, &structpb.Struct{}), req)
	if err != nil {
		return Response{}, err
	}
	presp, ok := out.(*structpb.Struct)
	if !ok {
		return Response{}, fmt.Errorf("unexpected response type %T", out)
	}
	return fromPbResponse(presp), nil
}

// Ping reports whether an instance answers on path.
func Ping(ctx context.Context, path string) bool {
	r, err := Request(ctx, path, Message{Name: CmdPing})
	return err == nil && r.OK
}
