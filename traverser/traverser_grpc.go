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
	"io"
	"iter"
	"sync"

	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes/empty"
	"github.com/yunusp/inv-bin-tree/internal/btree"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "traverser.Traverser"

// methods maps every order to the name of the streaming method serving it.
var methods = map[Order]string{
	PREORDER:  "PreOrder",
	INORDER:   "InOrder",
	POSTORDER: "PostOrder",
	SIDEWAYS:  "Print",
}

// TraverserServer is the server API for Traverser service.
//
// Every streaming method takes the depth of the tree to build and streams
// back the rendered lines.
type TraverserServer interface {
	// Walk builds a tree of the requested depth and streams its rendering in
	// the given order.
	Walk(Order, *wrapperspb.UInt32Value, WalkServer) error

	// Count returns the number of nodes of a tree of the requested depth.
	Count(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.UInt64Value, error)

	// Shutdown stops the server once the pending calls have finished.
	Shutdown(context.Context, *empty.Empty) (*empty.Empty, error)
}

// WalkServer is the server side of a streaming walk.
type WalkServer interface {
	Send(*wrapperspb.StringValue) error
	grpc.ServerStream
}

type walkServer struct {
	grpc.ServerStream
}

func (x *walkServer) Send(m *wrapperspb.StringValue) error {
	return x.ServerStream.SendMsg(m)
}

// traverserServer implements the server API for Traverser service.
type traverserServer struct {
	done     chan<- struct{}
	once     sync.Once
	maxDepth uint32
}

// NewTraverserServer creates a new traverser server.  Trees deeper than
// maxDepth are refused, and done is closed when Shutdown is called.  A
// negative maxDepth refuses every tree but the empty one.
func NewTraverserServer(done chan<- struct{}, maxDepth int) TraverserServer {
	maxDepth = max(maxDepth, 0)
	return &traverserServer{
		done:     done,
		maxDepth: uint32(maxDepth),
	}
}

// build builds a tree of the requested depth.
func (s *traverserServer) build(in *wrapperspb.UInt32Value) (*btree.Node[int64], error) {
	if s.maxDepth < in.GetValue() {
		return nil, status.Errorf(codes.InvalidArgument, "depth %d exceeds the limit of %d", in.GetValue(), s.maxDepth)
	}
	return btree.Build[int64](int(in.GetValue())), nil
}

func (s *traverserServer) Walk(order Order, in *wrapperspb.UInt32Value, stream WalkServer) error {
	glog.Infof("%s called with depth: %d", methods[order], in.GetValue())

	root, err := s.build(in)
	if err != nil {
		return err
	}

	for line := range New(order).Lines(root) {
		if err = stream.Send(wrapperspb.String(line)); err != nil {
			return err
		}
	}
	return nil
}

func (s *traverserServer) Count(ctx context.Context, in *wrapperspb.UInt32Value) (*wrapperspb.UInt64Value, error) {
	glog.Infof("Count called with depth: %d", in.GetValue())

	root, err := s.build(in)
	if err != nil {
		return nil, err
	}
	return wrapperspb.UInt64(uint64(root.Len())), nil
}

func (s *traverserServer) Shutdown(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	glog.Info("Shutdown called")
	defer glog.Flush()

	s.once.Do(func() {
		close(s.done)
	})

	return new(empty.Empty), nil
}

// RegisterTraverserServer registers the given implementation of Traverser
// service.
func RegisterTraverserServer(s grpc.ServiceRegistrar, srv TraverserServer) {
	s.RegisterService(&Traverser_ServiceDesc, srv)
}

// Traverser_ServiceDesc is the grpc.ServiceDesc for Traverser service.
var Traverser_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*TraverserServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Count",
			Handler:    countHandler,
		},
		{
			MethodName: "Shutdown",
			Handler:    shutdownHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    methods[PREORDER],
			Handler:       walkHandler(PREORDER),
			ServerStreams: true,
		},
		{
			StreamName:    methods[INORDER],
			Handler:       walkHandler(INORDER),
			ServerStreams: true,
		},
		{
			StreamName:    methods[POSTORDER],
			Handler:       walkHandler(POSTORDER),
			ServerStreams: true,
		},
		{
			StreamName:    methods[SIDEWAYS],
			Handler:       walkHandler(SIDEWAYS),
			ServerStreams: true,
		},
	},
}

func fullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

func walkHandler(order Order) grpc.StreamHandler {
	return func(srv interface{}, stream grpc.ServerStream) error {
		in := new(wrapperspb.UInt32Value)
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		return srv.(TraverserServer).Walk(order, in, &walkServer{stream})
	}
}

func countHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TraverserServer).Count(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("Count"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TraverserServer).Count(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func shutdownHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(empty.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TraverserServer).Shutdown(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("Shutdown"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TraverserServer).Shutdown(ctx, req.(*empty.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// TraverserClient is the client API for Traverser service.
type TraverserClient interface {
	// Walk streams the rendering of a tree of the given depth.  The sequence
	// ends at the first error, and the stream is released once ranging stops.
	Walk(ctx context.Context, order Order, depth uint32, opts ...grpc.CallOption) iter.Seq2[string, error]

	// Count returns the number of nodes of a tree of the given depth.
	Count(ctx context.Context, depth uint32, opts ...grpc.CallOption) (uint64, error)

	// Shutdown stops the server.
	Shutdown(ctx context.Context, opts ...grpc.CallOption) error
}

type traverserClient struct {
	cc grpc.ClientConnInterface
}

// NewTraverserClient creates a new client for Traverser service.
func NewTraverserClient(cc grpc.ClientConnInterface) TraverserClient {
	return &traverserClient{cc}
}

func (c *traverserClient) Walk(ctx context.Context, order Order, depth uint32, opts ...grpc.CallOption) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		method, ok := methods[order]
		if !ok {
			yield("", status.Errorf(codes.InvalidArgument, "invalid order %s", order))
			return
		}
		desc := &grpc.StreamDesc{
			StreamName:    method,
			ServerStreams: true,
		}
		stream, err := c.cc.NewStream(ctx, desc, fullMethod(method), opts...)
		if err != nil {
			yield("", err)
			return
		}
		if err = stream.SendMsg(wrapperspb.UInt32(depth)); err != nil {
			yield("", err)
			return
		}
		if err = stream.CloseSend(); err != nil {
			yield("", err)
			return
		}
		for {
			out := new(wrapperspb.StringValue)
			if err = stream.RecvMsg(out); err != nil {
				if err != io.EOF {
					yield("", err)
				}
				return
			}
			if !yield(out.GetValue(), nil) {
				return
			}
		}
	}
}

func (c *traverserClient) Count(ctx context.Context, depth uint32, opts ...grpc.CallOption) (uint64, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, fullMethod("Count"), wrapperspb.UInt32(depth), out, opts...); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *traverserClient) Shutdown(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, fullMethod("Shutdown"), new(empty.Empty), new(empty.Empty), opts...)
}
