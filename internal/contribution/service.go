package contribution

import (
	"context"
	"encoding/json"
	"log/slog"

	errors "github.com/frahmantamala/donation-gateway/internal"
	contributionmodel "github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
)

// RepositoryAPI is the persistence surface the service needs. Both settle
// operations run inside a single transaction in the implementation.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*contributionmodel.Contribution, error)
	GetByCorrelationKey(ctx context.Context, key string) (*contributionmodel.Contribution, error)
	Create(ctx context.Context, contrib *contributionmodel.Contribution) error
	MarkCompleted(ctx context.Context, id int64, externalRef string, gatewayResponse json.RawMessage) (*contributionmodel.Contribution, error)
	MarkCancelled(ctx context.Context, id int64, reason string) (*contributionmodel.Contribution, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*contributionmodel.Contribution, error) {
	contrib, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrContributionNotFound
	}
	return contrib, nil
}

func (s *Service) GetByCorrelationKey(ctx context.Context, key string) (*contributionmodel.Contribution, error) {
	contrib, err := s.repo.GetByCorrelationKey(ctx, key)
	if err != nil {
		return nil, errors.ErrContributionNotFound
	}
	return contrib, nil
}

func (s *Service) Create(ctx context.Context, contrib *contributionmodel.Contribution) error {
	if contrib.Status == "" {
		contrib.Status = contributionmodel.StatusPending
	}
	if err := s.repo.Create(ctx, contrib); err != nil {
		s.logger.Error("contribution: create failed",
			"correlation_key", contrib.CorrelationKey, "error", err)
		return errors.NewInternalError("failed to create contribution", err)
	}
	return nil
}

// Complete settles a contribution as paid. Replays return the stored record
// unchanged.
func (s *Service) Complete(ctx context.Context, id int64, externalRef string, gatewayResponse json.RawMessage) (*contributionmodel.Contribution, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrContributionNotFound
	}
	if current.IsCompleted() {
		return current, nil
	}
	if current.Status == contributionmodel.StatusCancelled {
		return nil, errors.NewConflictError("contribution already cancelled", errors.ErrCodeAlreadyHandled)
	}

	updated, err := s.repo.MarkCompleted(ctx, id, externalRef, gatewayResponse)
	if err != nil {
		s.logger.Error("contribution: completion failed",
			"contribution_id", id, "error", err)
		return nil, errors.NewInternalError("failed to complete contribution", err)
	}
	return updated, nil
}

// Cancel marks a pending contribution cancelled with the given reason.
// Settled records are left alone: repeating a cancellation changes nothing,
// and a completed contribution can never be flipped back to cancelled.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*contributionmodel.Contribution, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrContributionNotFound
	}
	if current.Status == contributionmodel.StatusCancelled || current.IsCompleted() {
		return current, nil
	}

	updated, err := s.repo.MarkCancelled(ctx, id, reason)
	if err != nil {
		s.logger.Error("contribution: cancellation failed",
			"contribution_id", id, "error", err)
		return nil, errors.NewInternalError("failed to cancel contribution", err)
	}
	return updated, nil
}
