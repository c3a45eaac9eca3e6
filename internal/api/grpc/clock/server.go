package clock

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	GetState(ctx context.Context) *alarm.State
	Start(ctx context.Context, actor *alarm.Actor) *alarm.State
	Stop(ctx context.Context, actor *alarm.Actor) *alarm.State
	ToggleFormat(ctx context.Context, actor *alarm.Actor) *alarm.State
	SetAlarm(ctx context.Context, actor *alarm.Actor, input string) (*alarm.State, error)
	ClearAlarm(ctx context.Context, actor *alarm.Actor) *alarm.State
}

// Server implements the ClockService gRPC API.
type Server struct {
	// service provides the business logic for clock operations.
	service Service
}

var _ ClockServiceServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetState returns the current clock state.
func (s *Server) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return respond(s.service.GetState(ctx))
}

// Start starts the tick source.
func (s *Server) Start(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return respond(s.service.Start(ctx, ActorFromContext(ctx)))
}

// Stop stops the tick source.
func (s *Server) Stop(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return respond(s.service.Stop(ctx, ActorFromContext(ctx)))
}

// ToggleFormat flips between 12 and 24-hour display.
func (s *Server) ToggleFormat(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return respond(s.service.ToggleFormat(ctx, ActorFromContext(ctx)))
}

// SetAlarm validates and stores the daily alarm.
func (s *Server) SetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	state, err := s.service.SetAlarm(ctx, ActorFromContext(ctx), strings.TrimSpace(req.GetValue()))
	if err != nil {
		if errors.Is(err, alarm.ErrInvalid) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		return nil, status.Error(codes.Internal, "unable to set alarm")
	}

	return respond(state)
}

// ClearAlarm removes the alarm.
func (s *Server) ClearAlarm(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return respond(s.service.ClearAlarm(ctx, ActorFromContext(ctx)))
}

// respond converts state into a response message.
func respond(state *alarm.State) (*structpb.Struct, error) {
	message, err := ToProtoState(state)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode state")
	}

	return message, nil
}
