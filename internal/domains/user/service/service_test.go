package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tourizto/config"
	"tourizto/infras/otel/mocks"
	userMocks "tourizto/internal/domains/user/mocks"
	"tourizto/internal/domains/user/model"
	"tourizto/internal/domains/user/model/dto"
	"tourizto/internal/domains/user/service"
	cacheMocks "tourizto/shared/cache/mocks"
	gDto "tourizto/shared/dto"
	"tourizto/shared/failure"
)

func newService(t *testing.T) (*userMocks.MockUser, *cacheMocks.MockRedisCache, service.User) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := userMocks.NewMockUser(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, cache, service.New(repo, cfg, cache, mocks.NewOtel())
}

func TestUserService_GetAll(t *testing.T) {
	repo, cache, svc := newService(t)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)
	repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{
			{ID: "u-1", Name: "Asha", Role: "user", Status: "active"},
			{ID: "u-2", Name: "Ravi", Role: "admin", Status: "active"},
		}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Users, 2)
}

func TestUserService_Get(t *testing.T) {
	t.Run("returns user without password", func(t *testing.T) {
		repo, cache, svc := newService(t)

		cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "u-1", Name: "Asha", Email: "asha@example.com", Password: "secret-hash"}, nil)

		res, err := svc.Get(context.Background(), "u-1")

		assert.NoError(t, err)
		assert.Equal(t, "asha@example.com", res.Email)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		repo, cache, svc := newService(t)

		cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_UpdateStatus(t *testing.T) {
	t.Run("updates an existing user", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.UpdateStatus(context.Background(), dto.UpdateUserStatusRequest{Status: "suspended"}, "u-1")

		assert.NoError(t, err)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.UpdateStatus(context.Background(), dto.UpdateUserStatusRequest{Status: "suspended"}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
