package srv

import (
	"context"

	"github.com/sandevgo/lyla/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service and blocks until the first one returns or ctx is
// cancelled, then shuts all of them down. It returns the error of the
// service that ended the run, if any.
func Run(ctx context.Context, services ...Service) error {
	logger := log.FromCtx(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, len(services))
	for _, service := range services {
		go func(service Service) {
			err := service.Start(ctx)
			if err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msgf("%T stopped with error", service)
			}
			done <- err
		}(service)
	}

	var runErr error
	if len(services) > 0 {
		select {
		case runErr = <-done:
		case <-ctx.Done():
		}
	}

	cancel()
	ShutdownServices(ctx, services)
	return runErr
}

func ShutdownServices(ctx context.Context, services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
