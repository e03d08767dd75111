package service

import (
	"context"

	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
)

// StudentService handles student account logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// GetByStudentNumber retrieves a student by their login identifier.
func (s *StudentService) GetByStudentNumber(ctx context.Context, studentNumber string) (*model.Student, error) {
	return s.studentRepo.GetByStudentNumber(ctx, studentNumber)
}

// GetByID retrieves a student by primary key.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// Create inserts a new student account.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	return s.studentRepo.Create(ctx, student)
}
