package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/fleetops/fleet_billing_app/internal/middleware"
	"github.com/fleetops/fleet_billing_app/internal/utils/recurrence"
)

// DefaultWriteBatchSize caps how many statements go into one atomic write
// group against the store.
const DefaultWriteBatchSize = 400

// recurrenceService keeps a profile's future ledger schedule fully derived
// from its current definition. The schedule is never incrementally patched:
// stale future rows are removed and fresh ones upserted by their
// (profile, due date) key, so a partially applied run converges on retry.
type recurrenceService struct {
	settings
	profileRepo   portsrepo.RecurrenceRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryWithTx
	horizonMonths int
	batchSize     int
}

// NewRecurrenceService creates a new RecurrenceService.
func NewRecurrenceService(profileRepo portsrepo.RecurrenceRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryWithTx, horizonMonths, batchSize int, opts ...Option) portssvc.RecurrenceSvcFacade {
	if horizonMonths <= 0 {
		horizonMonths = recurrence.DefaultHorizonMonths
	}
	if batchSize <= 0 {
		batchSize = DefaultWriteBatchSize
	}
	return &recurrenceService{
		settings:      applyOptions(opts),
		profileRepo:   profileRepo,
		ledgerRepo:    ledgerRepo,
		horizonMonths: horizonMonths,
		batchSize:     batchSize,
	}
}

var _ portssvc.RecurrenceSvcFacade = (*recurrenceService)(nil)

// GetProfileByID retrieves a specific profile scoped to the account.
func (s *recurrenceService) GetProfileByID(ctx context.Context, accountID, profileID string) (*domain.RecurrenceProfile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile %s: %w", profileID, err)
	}
	if profile.AccountID != accountID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return profile, nil
}

// ListProfiles retrieves all profiles for an account.
func (s *recurrenceService) ListProfiles(ctx context.Context, accountID string) ([]domain.RecurrenceProfile, error) {
	profiles, err := s.profileRepo.ListProfilesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// SaveProfile upserts the profile and rewrites its future schedule.
// Past and paid entries are never touched; only pending rows with a due
// date strictly after now are rederived.
func (s *recurrenceService) SaveProfile(ctx context.Context, accountID, profileID string, req dto.SaveRecurrenceProfileRequest, actorID string) (*dto.SaveProfileResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateProfileRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	profile := domain.RecurrenceProfile{
		ProfileID:   profileID,
		AccountID:   accountID,
		Description: req.Description,
		Amount:      req.Amount,
		Direction:   req.Direction,
		Frequency:   req.Frequency,
		CategoryID:  req.CategoryID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	// The weekday filter only means something for daily profiles.
	if req.Frequency == domain.Daily {
		for _, wd := range req.Weekdays {
			profile.Weekdays = append(profile.Weekdays, time.Weekday(wd))
		}
	}

	if profile.ProfileID == "" {
		profile.ProfileID = uuid.NewString()
	} else {
		existing, err := s.profileRepo.FindProfileByID(ctx, profile.ProfileID)
		switch {
		case err == nil:
			if existing.AccountID != accountID {
				return nil, apperrors.ErrNotFound
			}
			profile.CreatedAt = existing.CreatedAt
			profile.CreatedBy = existing.CreatedBy
		case errors.Is(err, apperrors.ErrNotFound):
			// New profile with a caller-chosen id.
		default:
			return nil, fmt.Errorf("failed to find profile %s: %w", profile.ProfileID, err)
		}
	}

	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile %s: %w", profile.ProfileID, err)
	}

	removed, written, err := s.rewriteFutureSchedule(ctx, profile, now, actorID)
	if err != nil {
		return nil, err
	}

	logger.Info("Profile schedule reconciled",
		slog.String("profile_id", profile.ProfileID),
		slog.Int("entries_written", written),
		slog.Int64("entries_removed", removed),
	)
	return &dto.SaveProfileResult{
		Profile:        profile,
		EntriesWritten: written,
		EntriesRemoved: removed,
	}, nil
}

// DeleteProfile removes the profile and every future pending entry linked
// to it, leaving paid and past entries as history.
func (s *recurrenceService) DeleteProfile(ctx context.Context, accountID, profileID string, actorID string) (*dto.DeleteProfileResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile %s: %w", profileID, err)
	}
	if profile.AccountID != accountID {
		return nil, apperrors.ErrNotFound
	}

	if err := s.profileRepo.DeleteProfile(ctx, profileID); err != nil {
		return nil, fmt.Errorf("failed to delete profile %s: %w", profileID, err)
	}

	removed, err := s.ledgerRepo.DeleteFuturePendingByProfile(ctx, profileID, s.now(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete future entries for profile %s: %w", profileID, err)
	}

	logger.Info("Profile deleted", slog.String("profile_id", profileID), slog.Int64("entries_removed", removed))
	return &dto.DeleteProfileResult{EntriesRemoved: removed}, nil
}

// rewriteFutureSchedule derives the fresh schedule, removes future pending
// rows that are no longer part of it and upserts the rest by key. Deletion
// is issued before insertion so a mid-sequence failure leaves at most a
// sparse schedule, never a stale one; rerunning converges.
func (s *recurrenceService) rewriteFutureSchedule(ctx context.Context, profile domain.RecurrenceProfile, now time.Time, actorID string) (int64, int, error) {
	drafts := recurrence.Schedule(profile, now, s.horizonMonths)

	future := make([]domain.LedgerEntry, 0, len(drafts))
	keepDueDates := make([]time.Time, 0, len(drafts))
	for _, draft := range drafts {
		if !draft.DueDate.After(now) {
			continue
		}
		draft.EntryID = uuid.NewString()
		draft.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		}
		future = append(future, draft)
		keepDueDates = append(keepDueDates, draft.DueDate)
	}

	removed, err := s.ledgerRepo.DeleteFuturePendingByProfile(ctx, profile.ProfileID, now, keepDueDates)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete stale entries for profile %s: %w", profile.ProfileID, err)
	}

	if err := s.ledgerRepo.UpsertScheduleEntries(ctx, future, s.batchSize); err != nil {
		return 0, 0, fmt.Errorf("failed to upsert schedule for profile %s: %w", profile.ProfileID, err)
	}
	scheduleEntriesWritten.Add(float64(len(future)))

	return removed, len(future), nil
}

func validateProfileRequest(req dto.SaveRecurrenceProfileRequest) error {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}
	return nil
}
