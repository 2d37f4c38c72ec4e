package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"crm/internal/model"

	"github.com/google/uuid"
)

// MaxAttachmentSize is the largest file accepted for upload (20 MiB).
const MaxAttachmentSize int64 = 20 << 20

// ObjectStore persists uploaded files and returns where they can be fetched.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error)
}

type UploadAttachmentRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type AttachmentService interface {
	UploadAttachment(ctx context.Context, req UploadAttachmentRequest) (model.Attachment, error)
}

type attachmentService struct {
	store ObjectStore
}

func NewAttachmentService(store ObjectStore) AttachmentService {
	return &attachmentService{store: store}
}

func (s *attachmentService) UploadAttachment(ctx context.Context, req UploadAttachmentRequest) (model.Attachment, error) {
	filename := sanitizeFilename(req.Filename)
	if filename == "" {
		return model.Attachment{}, newValidationError("file name is required")
	}
	if req.Size <= 0 {
		return model.Attachment{}, newValidationError("file is empty")
	}
	if req.Size > MaxAttachmentSize {
		return model.Attachment{}, newValidationError("file exceeds the %d MiB limit", MaxAttachmentSize>>20)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "attachments/" + uuid.NewString() + "/" + filename
	objectURL, err := s.store.Put(ctx, key, contentType, req.Size, req.Body)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("failed to store attachment: %w", err)
	}

	return model.Attachment{
		URL:         objectURL,
		Filename:    filename,
		ContentType: contentType,
		Size:        req.Size,
	}, nil
}

// sanitizeFilename drops directories and characters that would split the object key.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
}
