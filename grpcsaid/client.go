package grpcsaid

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls the SAID gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client SAIDClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewSAIDClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Saidify submits a JSON SAD and returns the final SAD bytes with the
// SAID embedded.
func (c *Client) Saidify(sadJSON []byte) ([]byte, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	full, err := c.client.Saidify(ctx, wrapperspb.Bytes(sadJSON))
	if err != nil {
		return nil, mapRPC(err)
	}
	return full.GetValue(), nil
}

// Said submits a JSON SAD and returns only its qualified SAID.
func (c *Client) Said(sadJSON []byte) (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	qb, err := c.client.Said(ctx, wrapperspb.Bytes(sadJSON))
	if err != nil {
		return "", mapRPC(err)
	}
	return qb.GetValue(), nil
}

// Verify submits a JSON SAD and reports whether its embedded SAID
// checks out.
func (c *Client) Verify(sadJSON []byte) (bool, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Verify(ctx, wrapperspb.Bytes(sadJSON))
	if err != nil {
		return false, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
