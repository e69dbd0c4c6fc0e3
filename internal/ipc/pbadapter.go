package ipc

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mithrel/firesale/internal/ipc/transport"
	"github.com/mithrel/firesale/pkg/api"
)

// pbHandler adapts a Message handler to the structpb envelope.
type pbHandler struct {
	fn func(context.Context, Message) Response
}

func (h pbHandler) ProtoTypes() (proto.Message, proto.Message) {
	return &structpb.Struct{}, &structpb.Struct{}
}

func (h pbHandler) Handle(ctx context.Context, req any) (any, error) {
	preq, ok := req.(*structpb.Struct)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T", req)
	}
	return toPbResponse(h.fn(ctx, fromPbMessage(preq)))
}

// PBHandler builds a transport.Handler around a Message handler.
func PBHandler(fn func(context.Context, Message) Response) transport.Handler {
	return pbHandler{fn: fn}
}

func toPbMessage(m Message) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"name":  m.Name,
		"paths": anyList(m.Paths),
	})
}

func fromPbMessage(s *structpb.Struct) Message {
	f := s.GetFields()
	m := Message{Name: f["name"].GetStringValue()}
	for _, v := range f["paths"].GetListValue().GetValues() {
		m.Paths = append(m.Paths, v.GetStringValue())
	}
	return m
}

func toPbResponse(r Response) (*structpb.Struct, error) {
	wins := make([]any, 0, len(r.Windows))
	for _, w := range r.Windows {
		wins = append(wins, map[string]any{
			"id":     w.ID,
			"title":  w.Title,
			"path":   w.Path,
			"edited": w.Edited,
		})
	}
	return structpb.NewStruct(map[string]any{
		"ok":      r.OK,
		"msg":     r.Msg,
		"windows": wins,
	})
}

func fromPbResponse(s *structpb.Struct) Response {
	f := s.GetFields()
	r := Response{OK: f["ok"].GetBoolValue(), Msg: f["msg"].GetStringValue()}
	for _, v := range f["windows"].GetListValue().GetValues() {
		w := v.GetStructValue().GetFields()
		r.Windows = append(r.Windows, api.WindowInfo{
			ID:     int(w["id"].GetNumberValue()),
			Title:  w["title"].GetStringValue(),
			Path:   w["path"].GetStringValue(),
			Edited: w["edited"].GetBoolValue(),
		})
	}
	return r
}

// anyList converts to the list form structpb accepts.
func anyList(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
