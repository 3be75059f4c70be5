/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx plugs rescue classes into gRPC servers.
//
// A service implementation that implements rescue.Rescuable gets its handler
// errors dispatched to its class by the interceptors:
//
//	srv := grpc.NewServer(
//	    grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor(grpcx.WithDomain("gate.example.com"))),
//	    grpc.ChainStreamInterceptor(grpcx.StreamServerInterceptor(grpcx.WithDomain("gate.example.com"))),
//	)
//
// Errors that were rescued are normalized into a status with an
// errdetails.ErrorInfo describing the code, reason and class involved.
// Errors nobody rescued reach the client unchanged.
package grpcx
