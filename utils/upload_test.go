package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedImageFile(t *testing.T) {
	assert.True(t, AllowedImageFile("meal.jpg"))
	assert.True(t, AllowedImageFile("MEAL.JPEG"))
	assert.True(t, AllowedImageFile("photo.png"))
	assert.True(t, AllowedImageFile("anim.webp"))
	assert.False(t, AllowedImageFile("notes.txt"))
	assert.False(t, AllowedImageFile("script.sh"))
	assert.False(t, AllowedImageFile("noext"))
}

func multipartImage(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["photo"][0]
}

func TestSaveUploadedImage(t *testing.T) {
	dir := t.TempDir()
	fh := multipartImage(t, "dinner.jpg", []byte("jpeg-bytes"))

	path, err := SaveUploadedImage(fh, dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".jpg", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestSaveUploadedImage_RejectsBadExtension(t *testing.T) {
	fh := multipartImage(t, "payload.exe", []byte("nope"))

	_, err := SaveUploadedImage(fh, t.TempDir())
	assert.Error(t, err)
}

func TestSaveUploadedImage_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	fh := multipartImage(t, "same.png", []byte("png"))

	a, err := SaveUploadedImage(fh, dir)
	require.NoError(t, err)
	b, err := SaveUploadedImage(fh, dir)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}