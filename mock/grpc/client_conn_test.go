package grpc_test

import (
	"context"
	"testing"

	"github.com/anoideaopen/substitute/core"
	mockgrpc "github.com/anoideaopen/substitute/mock/grpc"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const sayMethod = "/echo.Echo/Say"

func say(ctx context.Context, conn grpc.ClientConnInterface, in string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := conn.Invoke(ctx, sayMethod, wrapperspb.String(in), out); err != nil {
		return "", err
	}

	return out.GetValue(), nil
}

func TestClientConnUnconfigured(t *testing.T) {
	conn := mockgrpc.NewClientConn(t)

	out, err := say(context.Background(), conn, "ping")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 1, conn.InvokedCount(sayMethod))
	require.Equal(t, 0, conn.InvokedCount("/echo.Echo/Other"))

	stream, err := conn.NewStream(context.Background(), &grpc.StreamDesc{}, sayMethod)
	require.NoError(t, err)
	require.Nil(t, stream)
}

func TestClientConnReply(t *testing.T) {
	conn := mockgrpc.NewClientConn(t)
	require.NoError(t, conn.WhenInvoked(sayMethod).Do(mockgrpc.Reply(wrapperspb.String("pong"))))

	out, err := say(context.Background(), conn, "ping")
	require.NoError(t, err)
	require.Equal(t, "pong", out)

	calls := conn.ReceivedCalls()
	require.Len(t, calls, 1)
	require.Equal(t, sayMethod, mockgrpc.Method(calls[0]))
}

func TestClientConnReplyByRequest(t *testing.T) {
	conn := mockgrpc.NewClientConn(t)
	require.NoError(t, conn.WhenInvokedWith(sayMethod, wrapperspb.String("hello")).Do(mockgrpc.Reply("world")))

	out, err := say(context.Background(), conn, "hello")
	require.NoError(t, err)
	require.Equal(t, "world", out)

	out, err = say(context.Background(), conn, "bye")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestClientConnThrow(t *testing.T) {
	conn := mockgrpc.NewClientConn(t)
	require.NoError(t, conn.WhenInvoked(sayMethod).Throw(status.Error(codes.NotFound, "no such greeting")))

	_, err := say(context.Background(), conn, "ping")
	require.Error(t, err)
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestClientConnStreamThrow(t *testing.T) {
	conn := mockgrpc.NewClientConn(t)
	require.NoError(t, core.WhenForAnyArgs(conn, func(c *mockgrpc.ClientConn) {
		_, _ = c.NewStream(context.Background(), nil, "")
	}).Throw(status.Error(codes.Unavailable, "down")))

	stream, err := conn.NewStream(context.Background(), &grpc.StreamDesc{}, sayMethod)
	require.Nil(t, stream)
	require.Equal(t, codes.Unavailable, status.Code(err))
}
