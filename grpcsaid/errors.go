package grpcsaid

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/said/said"
)

// mapErr converts a library error into a gRPC status. Structural input
// problems are the caller's fault; digest-size failures are not.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var e *said.Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}
	switch e.Kind {
	case said.KindDigest:
		return status.Error(codes.Internal, statusMsg(e))
	default:
		return status.Error(codes.InvalidArgument, statusMsg(e))
	}
}

// statusMsg keeps the stable RuleID visible to remote callers so they
// can branch without parsing prose.
func statusMsg(e *said.Error) string {
	if e.RuleID == "" {
		return e.Message
	}
	return e.RuleID + ": " + e.Message
}

// mapRPC strips the gRPC status wrapping from a client-side error.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	return fmt.Errorf("grpcsaid: %s", st.Message())
}
