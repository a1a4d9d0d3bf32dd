package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/dilvane/internal/generator"
	"github.com/vytor/dilvane/internal/models"
)

// MockLessonGenerator is a mock implementation of services.LessonGenerator
type MockLessonGenerator struct {
	mock.Mock
}

func (m *MockLessonGenerator) Generate(ctx context.Context, in generator.Input) ([]models.Exercise, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}
