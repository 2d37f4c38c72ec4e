package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadAttachment(t *testing.T) {
	store := new(objectStoreMock)
	svc := NewAttachmentService(store)
	ctx := context.Background()
	body := strings.NewReader("png-bytes")

	store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "attachments/") && strings.HasSuffix(key, "/plan.png")
	}), "image/png", int64(9), body).Return("https://files.example.com/attachments/k/plan.png", nil).Once()

	att, err := svc.UploadAttachment(ctx, UploadAttachmentRequest{
		Filename:    "../../etc/plan.png",
		ContentType: "image/png",
		Size:        9,
		Body:        body,
	})
	require.NoError(t, err)
	assert.Equal(t, "plan.png", att.Filename)
	assert.Equal(t, "image/png", att.ContentType)
	assert.Equal(t, int64(9), att.Size)
	assert.Equal(t, "https://files.example.com/attachments/k/plan.png", att.URL)
	store.AssertExpectations(t)
}

func TestUploadAttachmentRejected(t *testing.T) {
	store := new(objectStoreMock)
	svc := NewAttachmentService(store)

	cases := map[string]UploadAttachmentRequest{
		"no name":  {Filename: "", Size: 10, Body: strings.NewReader("x")},
		"empty":    {Filename: "a.txt", Size: 0, Body: strings.NewReader("")},
		"too big":  {Filename: "a.txt", Size: MaxAttachmentSize + 1, Body: strings.NewReader("x")},
		"dot name": {Filename: "..", Size: 1, Body: strings.NewReader("x")},
	}
	for name, req := range cases {
		_, err := svc.UploadAttachment(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadAttachmentStoreFailure(t *testing.T) {
	store := new(objectStoreMock)
	svc := NewAttachmentService(store)
	store.On("Put", mock.Anything, mock.Anything, "application/octet-stream", int64(3), mock.Anything).Return("", errors.New("bucket unavailable")).Once()

	_, err := svc.UploadAttachment(context.Background(), UploadAttachmentRequest{Filename: "a.bin", Size: 3, Body: strings.NewReader("abc")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", sanitizeFilename(`C:\Users\ali\report.pdf`))
	assert.Equal(t, "a b.txt", sanitizeFilename(" a b.txt "))
	assert.Equal(t, "", sanitizeFilename("/"))
	assert.Equal(t, "ab", sanitizeFilename("a\nb"))
}
