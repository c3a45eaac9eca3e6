package clock

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Metadata keys carrying the caller identity.
const (
	metadataHostname = "x-actor-hostname"
	metadataUsername = "x-actor-username"
)

// WithActor attaches actor to outgoing RPC metadata.
func WithActor(ctx context.Context, actor *alarm.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		metadataHostname, actor.Hostname,
		metadataUsername, actor.Username,
	)
}

// ActorFromContext reads the caller identity from incoming RPC metadata.
// It returns nil when the caller did not identify itself.
func ActorFromContext(ctx context.Context) *alarm.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	hostname := first(md.Get(metadataHostname))
	username := first(md.Get(metadataUsername))

	if hostname == "" && username == "" {
		return nil
	}

	return &alarm.Actor{
		Hostname: hostname,
		Username: username,
	}
}

// first returns the first value or an empty string.
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
