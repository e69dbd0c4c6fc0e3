package transport

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestCodecFraming(t *testing.T) {
	var buf bytes.Buffer
	in, err := structpb.NewStruct(map[string]any{"name": "ping"})
	require.NoError(t, err)
	require.NoError(t, writeProto(&buf, in))

	out := &structpb.Struct{}
	require.NoError(t, readProto(&buf, out))
	assert.True(t, proto.Equal(in, out))
}

type echo struct{}

func (echo) ProtoTypes() (proto.Message, proto.Message) {
	return &structpb.Struct{}, &structpb.Struct{}
}

func (echo) Handle(_ context.Context, req any) (any, error) {
	s := req.(*structpb.Struct)
	return structpb.NewStruct(map[string]any{"echo": s.GetFields()["name"].GetStringValue()})
}

func TestUnixRoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "fst")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	sock := filepath.Join(dir, "s.sock")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- NewUnixServer(UnixListener{Path: sock}).Serve(ctx, echo{}) }()

	req, err := structpb.NewStruct(map[string]any{"name": "hi"})
	require.NoError(t, err)
	var resp any
	require.Eventually(t, func() bool {
		resp, err = NewUnixClient(sock).Do(WithResp(ctx, &structpb.Struct{}), req)
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, "hi", resp.(*structpb.Struct).GetFields()["echo"].GetStringValue())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestClientRequiresResponseType(t *testing.T) {
	_, err := NewUnixClient("/nonexistent").Do(context.Background(), &structpb.Struct{})
	assert.ErrorIs(t, err, os.ErrInvalid)
}
