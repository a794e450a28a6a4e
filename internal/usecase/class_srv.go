package usecase

import (
	"context"
	"fmt"
	"time"

	"fitbook/internal/data/entity"
	"fitbook/internal/data/repository"
	"fitbook/internal/dto/request"
	"fitbook/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClassService interface {
	CreateClass(ctx context.Context, req *request.CreateClassRequest) (*response.ClassSessionResponse, error)
	GetClass(ctx context.Context, classID uuid.UUID) (*response.ClassSessionResponse, error)
	ListClasses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ClassSessionResponse], error)
}

type classService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewClassService(repo *repository.Repository, log *zap.Logger) ClassService {
	return &classService{
		repo: repo,
		log:  log.With(zap.String("service", "class")),
	}
}

func (s *classService) CreateClass(ctx context.Context, req *request.CreateClassRequest) (*response.ClassSessionResponse, error) {
	studioID, err := uuid.Parse(req.StudioID)
	if err != nil {
		return nil, fmt.Errorf("invalid studio ID format %s: %w", req.StudioID, err)
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_at %s: %w", req.StartsAt, err)
	}

	now := time.Now()
	class := &entity.ClassSession{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StudioID:    studioID,
		Title:       req.Title,
		StartsAt:    startsAt,
		DurationMin: req.DurationMin,
		MaxCapacity: req.MaxCapacity,
		CreditCost:  req.CreditCost,
		Difficulty:  entity.Difficulty(req.Difficulty),
	}

	if err := s.repo.Class.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}

	s.log.Info("Class session created",
		zap.String("class_id", class.ID.String()),
		zap.String("studio_id", req.StudioID),
		zap.String("title", req.Title),
		zap.Int("max_capacity", req.MaxCapacity),
		zap.Int("credit_cost", req.CreditCost),
	)

	resp := response.ClassSessionToResponse(class)
	return &resp, nil
}

func (s *classService) GetClass(ctx context.Context, classID uuid.UUID) (*response.ClassSessionResponse, error) {
	class, err := s.repo.Class.FindByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return nil, fmt.Errorf("class %s: %w", classID.String(), ErrNotFound)
	}

	resp := response.ClassSessionToResponse(class)
	return &resp, nil
}

func (s *classService) ListClasses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ClassSessionResponse], error) {
	classes, err := s.repo.Class.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	total, err := s.repo.Class.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count classes: %w", err)
	}

	classResponses := make([]response.ClassSessionResponse, len(classes))
	for i, class := range classes {
		classResponses[i] = response.ClassSessionToResponse(class)
	}

	return response.NewPaginatedResponse(classResponses, req.Page, req.PerPage, total), nil
}
