package services

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")
	jpegHeader = []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00")
)

type fakeObjectStore struct {
	keys        []string
	contentType string
	deleted     []string
	err         error
}

func (f *fakeObjectStore) Put(
	ctx context.Context,
	key string,
	r io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.contentType = contentType
	return "http://minio.local/cleanhub/" + key, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func newTestStorage(store ObjectStore) *StorageService {
	return &StorageService{store: store, log: logger.New("storageService")}
}

func TestDetectImageType(t *testing.T) {
	contentType, extension, ok := DetectImageType(pngHeader)
	assert.True(t, ok)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, "png", extension)

	_, extension, ok = DetectImageType(jpegHeader)
	assert.True(t, ok)
	assert.Equal(t, "jpg", extension)

	_, _, ok = DetectImageType([]byte("GIF89a......"))
	assert.False(t, ok)

	_, _, ok = DetectImageType([]byte("just some text"))
	assert.False(t, ok)
}

func TestDecodeDataURL(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	data, err := DecodeDataURL("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	data, err = DecodeDataURL(encoded)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	_, err = DecodeDataURL("data:image/png," + encoded)
	assert.Error(t, err)

	_, err = DecodeDataURL("not base64!!")
	assert.Error(t, err)
}

func TestStorageService_UploadPropertyImage(t *testing.T) {
	store := &fakeObjectStore{}
	service := newTestStorage(store)
	propertyID := uuid.New()

	url, err := service.UploadPropertyImage(context.Background(), propertyID, pngHeader)

	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(store.keys[0], "properties/"+propertyID.String()+"/"))
	assert.True(t, strings.HasSuffix(store.keys[0], ".png"))
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, "http://minio.local/cleanhub/"+store.keys[0], url)
}

func TestStorageService_UploadPropertyImage_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		sentinel error
		message  string
	}{
		{"empty", nil, types.ErrValidation, "Image is empty."},
		{"too large", append(pngHeader, make([]byte, MAX_IMAGE_SIZE)...), types.ErrValidation, "Image exceeds the 10MB limit."},
		{"wrong type", []byte("GIF89a......"), types.ErrValidation, "Only JPEG and PNG images are allowed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeObjectStore{}
			_, err := newTestStorage(store).UploadPropertyImage(context.Background(), uuid.New(), tt.data)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, types.ErrorMessage(err))
			assert.Empty(t, store.keys)
		})
	}
}

func TestStorageService_UploadPropertyImage_StoreFailure(t *testing.T) {
	service := newTestStorage(&fakeObjectStore{err: errors.New("connection refused")})

	_, err := service.UploadPropertyImage(context.Background(), uuid.New(), jpegHeader)

	assert.ErrorIs(t, err, types.ErrUpstream)
	assert.Equal(t, "Failed to upload image.", types.ErrorMessage(err))
}

func TestStorageService_NotConfigured(t *testing.T) {
	service := newTestStorage(nil)

	_, err := service.UploadPropertyImage(context.Background(), uuid.New(), pngHeader)

	assert.ErrorIs(t, err, types.ErrUpstream)
	assert.Equal(t, "Image storage is not configured.", types.ErrorMessage(err))
}

func TestStorageService_RemoveByURL(t *testing.T) {
	store := &fakeObjectStore{}
	service := newTestStorage(store)

	service.RemoveByURL(context.Background(), "http://minio.local/cleanhub/properties/abc/def.png")
	service.RemoveByURL(context.Background(), "http://elsewhere.local/avatar.png")

	assert.Equal(t, []string{"properties/abc/def.png"}, store.deleted)
}
