package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sandevgo/lyla/internal/config"
	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/internal/prompt"
	"github.com/sandevgo/lyla/internal/providers/llm"
	"github.com/sandevgo/lyla/internal/service/conversation"
	"github.com/sandevgo/lyla/pkg/log"
	"github.com/sandevgo/lyla/pkg/retry"
	"github.com/sandevgo/lyla/pkg/srv"
)

// loadConfig reads <runtime>/.env into the environment and parses AppConfig.
func loadConfig(ctx context.Context) (*config.AppConfig, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}
	return config.LoadAppConfig()
}

// newSession wires the provider for model and the named profile into a session.
func newSession(ctx context.Context, cfg *config.AppConfig, profileName, model string) (*conversation.Session, error) {
	profiles, err := config.LoadProfiles(cfg.GetProfilesPath())
	if err != nil {
		return nil, err
	}
	profile, err := profiles.Get(profileName)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, cfg, model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	if err := probe(ctx, provider, retry.NewProbeConfig()); err != nil {
		// the runtime may come up later; every turn degrades to the fallback meanwhile
		log.FromCtx(ctx).Warn().Err(err).Msg("llm runtime is unreachable, replies will fall back until it is up")
	}

	chain := conversation.NewChain(prompt.NewTemplate(profile.Template), provider)
	return conversation.NewSession(profile, chain), nil
}

// sessionEnd is registered first so it shuts down last: it reports the
// session and flushes the log once the front end has stopped.
func sessionEnd(ctx context.Context, session *conversation.Session, flushLog func()) srv.Service {
	return srv.NewCleanup(func() error {
		log.FromCtx(ctx).Debug().
			Str("profile", session.Profile().Name).
			Int("turns", session.Transcript().Len()).
			Msg("session ended")
		flushLog()
		return nil
	})
}

// probe checks the runtime is reachable. Rejections such as a wrong base
// path or model endpoint are reported at once instead of retried.
func probe(ctx context.Context, provider core.AIProvider, cfg *retry.Config) error {
	logger := log.FromCtx(ctx)

	r := retry.NewRetrier(cfg).WithNotify(func(attempt int, err error, next time.Duration) {
		logger.Debug().Err(err).Int("attempt", attempt).Dur("next", next).Msg("llm runtime not ready")
	})
	return r.Do(ctx, func(ctx context.Context) error {
		err := provider.Ping(ctx)
		if llm.IsPermanent(err) {
			return retry.Permanent(err)
		}
		return err
	})
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
