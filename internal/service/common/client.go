//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/clock"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Client wraps a gRPC connection to the clock control API with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the clock.
	conn *grpc.ClientConn
	// actor identifies this client in request metadata, may be nil.
	actor *alarm.Actor
	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor sends actor with every call.
func WithActor(actor *alarm.Actor) Option {
	return func(c *Client) {
		c.actor = actor.Clone()
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errNotConnected is returned when a call is made on a client without a connection.
	errNotConnected = errors.New("client is not connected")
)

// Dial establishes a gRPC connection to the clock.
// Note: this uses insecure transport credentials; the control API is meant
// for a trusted network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alarm clock: %w", err)
	}

	client := &Client{
		conn:        conn,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetState retrieves the current clock state.
func (c *Client) GetState(ctx context.Context) (*alarm.State, error) {
	return c.call(ctx, api.MethodGetState, new(emptypb.Empty))
}

// Start starts the remote clock.
func (c *Client) Start(ctx context.Context) (*alarm.State, error) {
	return c.call(ctx, api.MethodStart, new(emptypb.Empty))
}

// Stop stops the remote clock.
func (c *Client) Stop(ctx context.Context) (*alarm.State, error) {
	return c.call(ctx, api.MethodStop, new(emptypb.Empty))
}

// ToggleFormat flips the remote display between 12 and 24-hour mode.
func (c *Client) ToggleFormat(ctx context.Context) (*alarm.State, error) {
	return c.call(ctx, api.MethodToggleFormat, new(emptypb.Empty))
}

// SetAlarm sets the remote alarm. Invalid input fails with codes.InvalidArgument.
func (c *Client) SetAlarm(ctx context.Context, input string) (*alarm.State, error) {
	return c.call(ctx, api.MethodSetAlarm, wrapperspb.String(input))
}

// ClearAlarm removes the remote alarm.
func (c *Client) ClearAlarm(ctx context.Context) (*alarm.State, error) {
	return c.call(ctx, api.MethodClearAlarm, new(emptypb.Empty))
}

// call invokes method and converts the reply.
func (c *Client) call(ctx context.Context, method string, request proto.Message) (*alarm.State, error) {
	if c == nil || c.conn == nil {
		return nil, errNotConnected
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response := new(structpb.Struct)

	if err := c.conn.Invoke(api.WithActor(callCtx, c.actor), api.FullMethod(method), request, response); err != nil {
		// Rejected alarms keep their domain meaning on this side of the wire.
		if status.Code(err) == codes.InvalidArgument {
			return nil, fmt.Errorf("%s: %w: %s", method, alarm.ErrInvalid, status.Convert(err).Message())
		}

		return nil, fmt.Errorf("%s: %w", method, err)
	}

	state, err := api.FromProtoState(response)
	if err != nil {
		return nil, fmt.Errorf("%s: decode state: %w", method, err)
	}

	return state, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
