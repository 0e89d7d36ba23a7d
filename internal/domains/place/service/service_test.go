package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tourizto/config"
	"tourizto/infras/otel/mocks"
	s3Mocks "tourizto/infras/s3/mocks"
	placeMocks "tourizto/internal/domains/place/mocks"
	"tourizto/internal/domains/place/model"
	"tourizto/internal/domains/place/model/dto"
	"tourizto/internal/domains/place/service"
	cacheMocks "tourizto/shared/cache/mocks"
	"tourizto/shared/failure"
)

type fixture struct {
	repo  *placeMocks.MockPlace
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Place
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:  placeMocks.NewMockPlace(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "tourizto-media"

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func TestPlaceService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			req := dto.CreatePlaceRequest{
				Name:     "Rajwada Palace",
				Category: "heritage",
				Location: "Rajwada, Indore",
			}

			err := f.svc.Create(context.Background(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlaceService_Get(t *testing.T) {
	t.Run("returns place on cache miss", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Place{ID: "p-1", Name: "Rajwada Palace"}, nil)

		res, err := f.svc.Get(context.Background(), "p-1")

		assert.NoError(t, err)
		assert.Equal(t, "Rajwada Palace", res.Name)
	})

	t.Run("unknown place is not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Place{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPlaceService_UploadImage(t *testing.T) {
	header := &multipart.FileHeader{
		Filename: "rajwada.jpg",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
	}

	t.Run("uploads file and returns url", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().
			UploadFile(gomock.Any(), "tourizto-media", model.EntityName, gomock.Any(), header, "rajwada.jpg").
			Return("https://cdn.example.com/place/rajwada.jpg", nil)

		res, err := f.svc.UploadImage(context.Background(), dto.UploadImageRequest{Image: header})

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/place/rajwada.jpg", res.URL)
		assert.Equal(t, "rajwada.jpg", res.FileName)
	})

	t.Run("upload failure surfaces as error", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 unavailable"))

		_, err := f.svc.UploadImage(context.Background(), dto.UploadImageRequest{Image: header})

		assert.Error(t, err)
	})
}

func TestPlaceService_DeleteImagesFromS3(t *testing.T) {
	t.Run("deletes every resolvable object", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().
			GetObjectNameFromURL("tourizto-media", "https://cdn.example.com/place/a.jpg").
			Return("a.jpg")
		f.s3.EXPECT().
			DeleteFile(gomock.Any(), "tourizto-media", model.EntityName, "a.jpg").
			Return(nil)

		err := f.svc.DeleteImagesFromS3(context.Background(), dto.DeleteImagesRequest{
			ImageURLs: []string{"https://cdn.example.com/place/a.jpg"},
		})

		assert.NoError(t, err)
	})

	t.Run("reports urls that failed to delete", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().
			GetObjectNameFromURL(gomock.Any(), gomock.Any()).
			Return("a.jpg")
		f.s3.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("s3 unavailable"))

		err := f.svc.DeleteImagesFromS3(context.Background(), dto.DeleteImagesRequest{
			ImageURLs: []string{"https://cdn.example.com/place/a.jpg"},
		})

		assert.ErrorIs(t, err, service.ErrDeleteImagesFromS3)
	})
}
