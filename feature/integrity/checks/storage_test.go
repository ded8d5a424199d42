package checks

import (
	"context"
	"errors"
	"testing"

	"kb-admin/core/storage"
	"kb-admin/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func prefixIs(prefix string) any {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == prefix })
}

func TestCheckStorage(t *testing.T) {
	folders := []string{"knowledge-base/reports/", "knowledge-base/standards/"}

	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "kb").Return(false, nil)

		missing, err := CheckStorage(context.Background(), client, "kb", folders)
		assert.ErrorIs(t, err, storage.ErrBucketMissing)
		assert.EqualError(t, err, "bucket does not exist: kb")
		assert.Equal(t, folders, missing)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "kb").Return(false, errors.New("dial tcp"))

		_, err := CheckStorage(context.Background(), client, "kb", folders)
		assert.ErrorContains(t, err, "dial tcp")
	})

	t.Run("Reports Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "kb").Return(true, nil)
		client.On("ListObjects", mock.Anything, "kb", prefixIs("knowledge-base/reports/")).Return(mocks.Objects())
		client.On("ListObjects", mock.Anything, "kb", prefixIs("knowledge-base/standards/")).
			Return(mocks.Objects(minio.ObjectInfo{Key: "knowledge-base/standards/"}))

		missing, err := CheckStorage(context.Background(), client, "kb", folders)
		assert.NoError(t, err)
		assert.Equal(t, []string{"knowledge-base/reports/"}, missing)
	})
}

func TestFixStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "kb", "knowledge-base/reports/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := FixStorage(context.Background(), client, "kb", zap.NewNop(), []string{"knowledge-base/reports/"})
	assert.NoError(t, err)
	client.AssertExpectations(t)

	failing := new(mocks.Client)
	failing.On("PutObject", mock.Anything, "kb", mock.Anything, mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))
	err = FixStorage(context.Background(), failing, "kb", zap.NewNop(), []string{"a/"})
	assert.ErrorContains(t, err, "denied")
}
