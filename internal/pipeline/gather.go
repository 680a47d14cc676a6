package pipeline

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"dermis/internal/careplan"
	"dermis/internal/catalog"
	"dermis/internal/profile"
	"dermis/internal/recommend"
	id "dermis/pkg/domain"
	dErrors "dermis/pkg/domain-errors"
	"dermis/pkg/platform/sentinel"
)

// inputs holds everything the pipeline reads before the pure core runs.
type inputs struct {
	prior      *profile.SkinProfile
	rules      *recommend.RuleSet
	templates  []careplan.Template
	catalogRef catalog.Ref
}

// gather fetches the profile snapshot, rule set, template set, and catalog
// reference in parallel with shared cancellation. A missing prior profile is
// not an error (first submission); everything else is.
func (s *Service) gather(ctx context.Context, userID id.UserID) (*inputs, error) {
	ctx, cancel := context.WithTimeout(ctx, gatherTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	in := &inputs{}

	g.Go(func() error {
		start := time.Now()
		prior, err := s.profiles.Latest(ctx, userID)
		s.metrics.ObserveGatherLatency("profile", time.Since(start))
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "profile fetch failed")
		}
		in.prior = prior
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		set, err := s.rules.Rules(ctx)
		s.metrics.ObserveGatherLatency("rules", time.Since(start))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "rule set fetch failed")
		}
		in.rules = set
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		templates, err := s.templates.Templates(ctx)
		s.metrics.ObserveGatherLatency("templates", time.Since(start))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "template set fetch failed")
		}
		in.templates = templates
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		ref, err := s.catalog.Ref(ctx)
		s.metrics.ObserveGatherLatency("catalog", time.Since(start))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog ref fetch failed")
		}
		in.catalogRef = ref
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}
