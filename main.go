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

// Package main builds a sample binary tree with sequential labels and writes
// one of its renderings to the standard output, one value per line.  With
// -serve, it runs the Traverser gRPC service instead; the server may be
// stopped by the Shutdown call or by SIGINT/SIGTERM.
package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/yunusp/inv-bin-tree/internal/btree"
	"github.com/yunusp/inv-bin-tree/traverser"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func main() {
	depth := flag.Int("depth", 4, "The depth of the sample tree")
	order := flag.String("order", "in", "The rendering: pre, in, post or print")
	serveMode := flag.Bool("serve", false, "Serve the Traverser service instead of printing")
	port := flag.Int("p", 50051, "The server port")
	maxDepth := flag.Int("max-depth", 20, "The maximum depth of the trees served")
	flag.Parse()
	defer glog.Flush()

	if *serveMode {
		if err := serve(*port, *maxDepth); err != nil {
			glog.Fatalf("failed to serve: %v", err)
		}
		return
	}

	if err := run(os.Stdout, *depth, *order); err != nil {
		if hint := errors.FlattenHints(err); hint != "" {
			glog.Exitf("%v\nHINT: %s", err, hint)
		}
		glog.Exitf("%v", err)
	}
}

// run builds a tree of the given depth and writes the rendering with the
// given name to w.
func run(w io.Writer, depth int, name string) error {
	order, err := traverser.ParseOrder(name)
	if err != nil {
		return err
	}
	if depth < 0 {
		return errors.Newf("invalid depth %d", depth)
	}

	glog.V(1).Infof("building a tree of depth %d", depth)
	return traverser.Fprint(w, traverser.New(order), btree.Build[int64](depth))
}

func serve(port, maxDepth int) error {
	if maxDepth < 0 {
		return errors.Newf("invalid max depth %d", maxDepth)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}

	done := make(chan struct{})
	server := newServer()
	traverser.RegisterTraverserServer(server, traverser.NewTraverserServer(done, maxDepth))

	go func(done <-chan struct{}, server *grpc.Server) {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigs)

		select {
		case <-done:
		case sig := <-sigs:
			glog.Infof("received %v", sig)
		}
		server.GracefulStop()
	}(done, server)

	glog.Infof("server listening at %v", lis.Addr())

	return server.Serve(lis)
}

func newServer() *grpc.Server {
	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(recoverFrom)),
		),
		grpc.ChainStreamInterceptor(
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandler(recoverFrom)),
		),
	)
}

// recoverFrom turns a panic inside a call, such as a broken invariant of the
// tree algorithms, into an Internal error for that call only.
func recoverFrom(p interface{}) error {
	glog.Errorf("recovered from panic: %v", p)
	return status.Errorf(codes.Internal, "%v", p)
}
