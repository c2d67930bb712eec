// Package grpcsaid exposes SAID derivation and verification as a gRPC
// service. SADs cross the wire as JSON bytes because JSON is the one
// kind whose textual form preserves the key order the digest depends on.
package grpcsaid

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/said/sad"
	"xdao.co/said/said"
)

// Server serves the SAID gRPC service. Options apply to every request;
// zero values mean the library defaults (label "d", Blake3-256, JSON).
type Server struct {
	UnimplementedSAIDServer
	Options said.Options
}

func (s *Server) Saidify(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	m, err := sad.FromJSON(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "request is not a JSON object")
	}
	_, out, err := said.Saidify(m, s.opts())
	if err != nil {
		return nil, mapErr(err)
	}
	b, err := out.MarshalJSON()
	if err != nil {
		return nil, status.Error(codes.Internal, "cannot serialize SAD")
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Said(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	m, err := sad.FromJSON(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "request is not a JSON object")
	}
	qb, _, err := said.Saidify(m, s.opts())
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(qb), nil
}

func (s *Server) Verify(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	m, err := sad.FromJSON(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "request is not a JSON object")
	}
	o := s.opts()
	ok, err := said.Verify(m, said.VerifyOptions{Label: o.Label, Code: o.Code, Kind: o.Kind})
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(ok), nil
}

func (s *Server) opts() said.Options {
	if s == nil {
		return said.Options{}
	}
	return s.Options
}
