package clock

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// LoggingInterceptor gives every call a logger derived from base, tagged with
// the method and caller, and logs the outcome.
func LoggingInterceptor(base *zap.SugaredLogger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		started := time.Now()

		ctx = logger.ToContext(ctx, base.With("method", info.FullMethod, "actor", ActorFromContext(ctx).String()))

		resp, err := handler(ctx, req)
		if err != nil {
			logger.WarnKV(ctx, "Call failed", "code", status.Code(err).String(), "error", err)

			return resp, err
		}

		logger.DebugKV(ctx, "Call served", "duration", time.Since(started).String())

		return resp, nil
	}
}
