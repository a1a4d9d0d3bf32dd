package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/dilvane/internal/errors"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/services"
	"github.com/vytor/dilvane/internal/testutil/mocks"
)

func TestUpdateSettings_MergesFields(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := services.NewUserService(users)
	ctx := context.Background()

	users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, NativeLanguage: "English", CEFRLevel: "A1"}, nil)
	users.On("UpdateSettings", ctx, int64(1), models.Settings{NativeLanguage: "English", CEFRLevel: "B2"}).Return(nil)

	got, err := svc.UpdateSettings(ctx, 1, models.Settings{CEFRLevel: "b2"})
	require.NoError(t, err)
	assert.Equal(t, "English", got.NativeLanguage)
	assert.Equal(t, "B2", got.CEFRLevel)
	users.AssertExpectations(t)
}

func TestUpdateSettings_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   models.Settings
	}{
		{name: "unsupported language", in: models.Settings{NativeLanguage: "Klingon"}},
		{name: "unknown level", in: models.Settings{CEFRLevel: "D1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepository)
			users.On("Get", mock.Anything, int64(1)).Return(&models.User{ID: 1, NativeLanguage: "English", CEFRLevel: "A1"}, nil)

			_, err := services.NewUserService(users).UpdateSettings(context.Background(), 1, tt.in)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
			users.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetSettings_UnknownUser(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("Get", mock.Anything, int64(9)).Return(nil, nil)

	_, err := services.NewUserService(users).GetSettings(context.Background(), 9)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}
