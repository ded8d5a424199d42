package storage_test

import (
	"context"
	"errors"
	"testing"

	"kb-admin/core/storage"
	"kb-admin/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFolderPath(t *testing.T) {
	assert.Equal(t, "kb/reports/", storage.FolderPath("/kb/", "reports"))
	assert.Equal(t, "reports/", storage.FolderPath("", "reports"))
	assert.Equal(t, "", storage.FolderPath("", "/"))
}

func TestFolderExists(t *testing.T) {
	ctx := context.Background()

	t.Run("Present", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "kb", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
			return o.Prefix == "docs/reports/"
		})).Return(mocks.Objects(minio.ObjectInfo{Key: "docs/reports/"}))

		ok, err := storage.FolderExists(ctx, client, "kb", "docs/reports/")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "kb", mock.Anything).Return(mocks.Objects())

		ok, err := storage.FolderExists(ctx, client, "kb", "docs/reports/")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ListError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "kb", mock.Anything).
			Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("access denied")}))

		_, err := storage.FolderExists(ctx, client, "kb", "docs/reports/")
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestCreateFolder(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "kb", "docs/standards/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, storage.CreateFolder(context.Background(), client, "kb", "docs/standards"))
	client.AssertExpectations(t)
}

func TestObjectExists(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "kb", "a.pdf", mock.Anything).Return(minio.ObjectInfo{Key: "a.pdf"}, nil)
	client.On("StatObject", mock.Anything, "kb", "b.pdf", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})
	client.On("StatObject", mock.Anything, "kb", "c.pdf", mock.Anything).
		Return(minio.ObjectInfo{}, errors.New("timeout"))

	ok, err := storage.ObjectExists(ctx, client, "kb", "a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = storage.ObjectExists(ctx, client, "kb", "b.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = storage.ObjectExists(ctx, client, "kb", "c.pdf")
	assert.Error(t, err)
}
