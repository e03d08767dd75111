package service

import (
	"context"

	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
)

// ProctorService handles proctor account logic.
type ProctorService struct {
	proctorRepo *repository.ProctorRepository
}

// NewProctorService creates a new ProctorService.
func NewProctorService(proctorRepo *repository.ProctorRepository) *ProctorService {
	return &ProctorService{proctorRepo: proctorRepo}
}

// GetByEmail retrieves a proctor by email.
func (s *ProctorService) GetByEmail(ctx context.Context, email string) (*model.Proctor, error) {
	return s.proctorRepo.GetByEmail(ctx, email)
}

// GetByID retrieves a proctor by primary key.
func (s *ProctorService) GetByID(ctx context.Context, id int) (*model.Proctor, error) {
	return s.proctorRepo.GetByID(ctx, id)
}

// Create inserts a new proctor account.
func (s *ProctorService) Create(ctx context.Context, proctor *model.Proctor) error {
	return s.proctorRepo.Create(ctx, proctor)
}
