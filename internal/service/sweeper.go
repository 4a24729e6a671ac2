package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/oauthstore/internal/logger"
	"github.com/dtroode/oauthstore/internal/model"
)

// SweepResult holds how many rows one sweep removed per relation.
type SweepResult struct {
	AuthorizationCodes int64
	AccessTokens       int64
	RefreshTokens      int64
}

// Total is the number of rows removed across all relations.
func (r SweepResult) Total() int64 {
	return r.AuthorizationCodes + r.AccessTokens + r.RefreshTokens
}

// Sweeper periodically removes expired codes and tokens. Reads already treat
// those rows as absent, so sweeping only reclaims space and never changes what
// a concurrent reader sees.
type Sweeper struct {
	codes    model.ExpiredCleaner
	access   model.ExpiredCleaner
	refresh  model.ExpiredCleaner
	interval time.Duration
	logger   *logger.Logger
}

func NewSweeper(
	codes model.ExpiredCleaner,
	access model.ExpiredCleaner,
	refresh model.ExpiredCleaner,
	interval time.Duration,
	logger *logger.Logger,
) *Sweeper {
	return &Sweeper{
		codes:    codes,
		access:   access,
		refresh:  refresh,
		interval: interval,
		logger:   logger,
	}
}

// SweepOnce cleans the three relations concurrently. A failure in one does not
// stop the others; all failures are joined into the returned error.
func (s *Sweeper) SweepOnce(ctx context.Context) (SweepResult, error) {
	var (
		res  SweepResult
		errs [3]error
		g    errgroup.Group
	)

	targets := []struct {
		name    string
		cleaner model.ExpiredCleaner
		count   *int64
	}{
		{"authorization_codes", s.codes, &res.AuthorizationCodes},
		{"access_tokens", s.access, &res.AccessTokens},
		{"refresh_tokens", s.refresh, &res.RefreshTokens},
	}

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			n, err := target.cleaner.CleanupExpired(ctx)
			if err != nil {
				s.logger.Error("Sweeper: failed to clean up expired rows",
					"relation", target.name,
					"error", err.Error())
				errs[i] = fmt.Errorf("sweep %s: %w", target.name, err)
				return nil
			}
			*target.count = n
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Debug("Sweeper: sweep finished",
		"authorization_codes", res.AuthorizationCodes,
		"access_tokens", res.AccessTokens,
		"refresh_tokens", res.RefreshTokens)

	return res, errors.Join(errs[:]...)
}

// Run sweeps immediately and then on every interval tick until ctx is done.
// Sweep errors are logged and do not stop the loop.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("sweeper interval must be positive, got %s", s.interval)
	}

	s.logger.Info("Sweeper: started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if res, err := s.SweepOnce(ctx); err == nil && res.Total() > 0 {
			s.logger.Info("Sweeper: removed expired rows", "total", res.Total())
		}

		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return nil
		case <-ticker.C:
		}
	}
}
