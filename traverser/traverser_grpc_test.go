// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package traverser

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const testMaxDepth = 12

// serve starts an in-process traverser server and returns a client connected
// to it together with the channel closed by Shutdown.
func serve(t *testing.T) (TraverserClient, <-chan struct{}) {
	done := make(chan struct{})
	return dial(t, NewTraverserServer(done, testMaxDepth)), done
}

// dial serves srv in-process and returns a client connected to it.
func dial(t *testing.T, srv TraverserServer) TraverserClient {
	lis := bufconn.Listen(1 << 20)

	server := grpc.NewServer()
	RegisterTraverserServer(server, srv)
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("did not connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewTraverserClient(conn)
}

// collect gathers every line of a streamed walk.
func collect(t *testing.T, c TraverserClient, order Order, depth uint32) (lines []string, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for line, err := range c.Walk(ctx, order, depth) {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func TestTraverserServer(t *testing.T) {
	c, _ := serve(t)

	for order, want := range map[Order][]string{
		PREORDER:  {"1", "2", "3", "4", "5", "6", "7"},
		INORDER:   {"3", "2", "4", "1", "6", "5", "7"},
		POSTORDER: {"3", "4", "2", "6", "7", "5", "1"},
		SIDEWAYS:  {"    7", "  5", "    6", "1", "    4", "  2", "    3"},
	} {
		got, err := collect(t, c, order, 3)
		require.NoError(t, err)
		require.Equal(t, want, got, order.String())
	}

	got, err := collect(t, c, INORDER, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTraverserServerConcurrent(t *testing.T) {
	c, _ := serve(t)

	var wg sync.WaitGroup
	for depth := uint32(0); depth <= testMaxDepth; depth++ {
		wg.Add(1)
		go func(depth uint32) {
			defer wg.Done()
			lines, err := collect(t, c, PREORDER, depth)
			if err != nil {
				t.Errorf("could not walk: %v", err)
				return
			}
			if len(lines) != 1<<depth-1 {
				t.Errorf("depth %d: got %d lines", depth, len(lines))
			}
			for i, line := range lines {
				// pre-order lists the labels consecutively
				if want := strconv.Itoa(i + 1); line != want {
					t.Errorf("depth %d: got %q at %d, want %q", depth, line, i, want)
					return
				}
			}
		}(depth)
	}
	wg.Wait()
}

func TestTraverserServerCount(t *testing.T) {
	c, _ := serve(t)
	ctx := context.Background()

	for depth := uint32(0); depth <= testMaxDepth; depth++ {
		n, err := c.Count(ctx, depth)
		require.NoError(t, err)
		require.Equal(t, uint64(1)<<depth-1, n)
	}

	_, err := c.Count(ctx, testMaxDepth+1)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestTraverserServerMaxDepth(t *testing.T) {
	c, _ := serve(t)

	_, err := collect(t, c, SIDEWAYS, testMaxDepth+1)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = collect(t, c, Order(9), 1)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestTraverserServerNegativeMaxDepth(t *testing.T) {
	c := dial(t, NewTraverserServer(make(chan struct{}), -1))

	_, err := c.Count(context.Background(), 30)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	got, err := collect(t, c, INORDER, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

// endlessServer streams lines until the client goes away.
type endlessServer struct {
	TraverserServer
	released chan struct{}
}

func (s *endlessServer) Walk(_ Order, _ *wrapperspb.UInt32Value, stream WalkServer) error {
	defer close(s.released)
	for i := 0; ; i++ {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		default:
		}
		if err := stream.Send(wrapperspb.String(strconv.Itoa(i))); err != nil {
			return err
		}
	}
}

func TestTraverserClientStopEarly(t *testing.T) {
	srv := &endlessServer{released: make(chan struct{})}
	c := dial(t, srv)

	for line, err := range c.Walk(context.Background(), PREORDER, 1) {
		require.NoError(t, err)
		require.Equal(t, "0", line)
		break
	}

	select {
	case <-srv.released:
	case <-time.After(10 * time.Second):
		t.Fatal("stopping early did not release the stream")
	}
}

func TestTraverserServerShutdown(t *testing.T) {
	c, done := serve(t)
	ctx := context.Background()

	require.NoError(t, c.Shutdown(ctx))
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("shutdown did not close the done channel")
	}
	// a second call must not close the channel again
	require.NoError(t, c.Shutdown(ctx))
}
