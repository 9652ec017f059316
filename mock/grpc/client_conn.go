// Package grpc provides a substitute for grpc.ClientConnInterface, the connection generated
// gRPC clients are built on.
package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/anoideaopen/substitute/core"
	"github.com/anoideaopen/substitute/core/action"
	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/matcher"
	"github.com/anoideaopen/substitute/core/session"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ErrNoReply is returned by Reply callbacks for calls without a reply argument.
var ErrNoReply = errors.New("call has no reply argument")

const (
	argMethod = 1
	argReply  = 3
)

var _ grpc.ClientConnInterface = (*ClientConn)(nil)

// ClientConn is a substitute for grpc.ClientConnInterface.
//
//	conn := grpc.NewClientConn(t)
//	err := conn.WhenInvoked("/fiat.FiatService/Balance").Do(grpc.Reply(&pb.BalanceResponse{Amount: "100"}))
//
//	client := pb.NewFiatServiceClient(conn)
type ClientConn struct {
	*core.Substitute
}

// NewClientConn returns a client connection substitute. Unconfigured calls succeed and leave
// the reply untouched.
func NewClientConn(t testing.TB, opts ...core.Option) *ClientConn {
	s, err := core.New[grpc.ClientConnInterface](opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	return &ClientConn{Substitute: s}
}

// Invoke performs a unary RPC and returns after the response is received
// into reply.
func (m *ClientConn) Invoke(ctx context.Context, method string, args any, reply any, opts ...grpc.CallOption) error {
	return m.Substitute.Invoke("Invoke", ctx, method, args, reply, opts).Err()
}

// NewStream begins a streaming RPC.
func (m *ClientConn) NewStream(
	ctx context.Context,
	desc *grpc.StreamDesc,
	method string,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	r := m.Substitute.Invoke("NewStream", ctx, desc, method, opts)
	return core.Out[grpc.ClientStream](r, 0), r.Err()
}

// WhenInvoked starts configuring unary calls of the full method name, e.g.
// "/package.Service/Method", for any request.
func (m *ClientConn) WhenInvoked(method string) *session.Session {
	return m.whenInvoked(method, matcher.AnyValue())
}

// WhenInvokedWith starts configuring unary calls of method with a request equal to req.
func (m *ClientConn) WhenInvokedWith(method string, req proto.Message) *session.Session {
	return m.whenInvoked(method, matcher.Equal(req))
}

func (m *ClientConn) whenInvoked(method string, req matcher.Matcher) *session.Session {
	return core.When(m, func(m *ClientConn) {
		_ = m.Invoke(context.Background(), method, nil, nil)
	}).WithArgs(
		matcher.AnyValue(),
		matcher.Equal(method),
		req,
		matcher.AnyValue(),
		matcher.AnyValue(),
	)
}

// InvokedCount returns the number of unary calls of method.
func (m *ClientConn) InvokedCount(method string) int {
	return m.ReceivedCount("Invoke", matcher.SpecificArguments(
		matcher.AnyValue(),
		matcher.Equal(method),
		matcher.AnyValue(),
		matcher.AnyValue(),
		matcher.AnyValue(),
	))
}

// Reply returns a callback that fills the reply of a unary call with msg. Protobuf replies of
// the same type are merged directly; other combinations are converted through JSON.
func Reply(msg any) action.CallbackFunc {
	return func(c *call.Call) error {
		if c.Member().Name() != "Invoke" {
			return fmt.Errorf("%w: %s", ErrNoReply, c.String())
		}

		reply := c.Arg(argReply)
		if reply == nil {
			return fmt.Errorf("%w: %s", ErrNoReply, c.String())
		}

		return fill(reply, msg)
	}
}

func fill(reply, msg any) error {
	replyMsg, replyIsProto := reply.(proto.Message)
	srcMsg, srcIsProto := msg.(proto.Message)

	if replyIsProto && srcIsProto &&
		replyMsg.ProtoReflect().Descriptor().FullName() == srcMsg.ProtoReflect().Descriptor().FullName() {
		proto.Reset(replyMsg)
		proto.Merge(replyMsg, srcMsg)
		return nil
	}

	var (
		raw []byte
		err error
	)
	if srcIsProto {
		raw, err = protojson.Marshal(srcMsg)
	} else {
		raw, err = json.Marshal(msg)
	}
	if err != nil {
		return fmt.Errorf("marshalling reply: %w", err)
	}

	if replyIsProto {
		return protojson.Unmarshal(raw, replyMsg)
	}

	return json.Unmarshal(raw, reply)
}

// Method returns the full method name of a call of Invoke or NewStream.
func Method(c *call.Call) string {
	switch c.Member().Name() {
	case "Invoke":
		return call.Arg[string](c, argMethod)
	case "NewStream":
		return call.Arg[string](c, 2)
	default:
		return ""
	}
}
