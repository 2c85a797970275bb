package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ciex/motor/internal/domain/movement"
	idb "github.com/ciex/motor/internal/infra/database"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")

// MovementConfig is the administrator-editable part of a movement.
type MovementConfig struct {
	Name          string
	CycleStart    time.Time
	CycleDuration int
	CycleBuffer   int
}

type AdminService struct {
	movementRepo    movement.Repository
	adminTelegramID int64
}

func NewAdminService(mr movement.Repository, adminID int64) *AdminService {
	return &AdminService{
		movementRepo:    mr,
		adminTelegramID: adminID,
	}
}

// IsAdmin reports whether the given Telegram ID belongs to the configured admin.
func (s *AdminService) IsAdmin(telegramID int64) bool {
	return telegramID == s.adminTelegramID
}

// CreateMovement validates the configuration and stores a new movement without members.
func (s *AdminService) CreateMovement(ctx context.Context, performingAdminID int64, cfg MovementConfig) (*movement.Movement, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}

	m := &movement.Movement{
		Name:          cfg.Name,
		CycleStart:    movement.Date(cfg.CycleStart),
		CycleDuration: cfg.CycleDuration,
		CycleBuffer:   cfg.CycleBuffer,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.movementRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create movement in repository: %w", err)
	}
	return m, nil
}

// UpdateMovementConfig replaces the name and cycle configuration of an existing movement.
func (s *AdminService) UpdateMovementConfig(ctx context.Context, performingAdminID int64, movementID int64, cfg MovementConfig) (*movement.Movement, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}

	m, err := s.movementRepo.GetByID(ctx, movementID)
	if err != nil {
		if errors.Is(err, idb.ErrMovementNotFound) {
			return nil, idb.ErrMovementNotFound
		}
		return nil, fmt.Errorf("failed to get movement %d for update: %w", movementID, err)
	}

	m.Name = cfg.Name
	m.CycleStart = movement.Date(cfg.CycleStart)
	m.CycleDuration = cfg.CycleDuration
	m.CycleBuffer = cfg.CycleBuffer
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.movementRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update movement %d in repository: %w", movementID, err)
	}
	return m, nil
}

func (s *AdminService) GetMovement(ctx context.Context, performingAdminID int64, movementID int64) (*movement.Movement, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}
	return s.movementRepo.GetByID(ctx, movementID)
}

func (s *AdminService) ListMovements(ctx context.Context, performingAdminID int64) ([]*movement.Movement, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}
	return s.movementRepo.ListAll(ctx)
}
