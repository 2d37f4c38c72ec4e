package handler

import (
	"errors"
	"io"
	"net/http"

	"crm/internal/service"
	"crm/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// sniffLen is how many leading bytes are used to detect the content type.
	sniffLen = 512
	// multipartOverhead leaves room for form boundaries and part headers.
	multipartOverhead = 1 << 20
)

type AttachmentHandler struct {
	attachmentService service.AttachmentService
	logger            zerolog.Logger
}

func NewAttachmentHandler(attachmentService service.AttachmentService, logger zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService, logger: logger}
}

func (h *AttachmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/attachments", h.UploadAttachment)
}

// UploadAttachment stores a file and returns the reference to put into an activity
// @Summary      Upload attachment
// @Tags         attachments
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload"
// @Success      201   {object}  model.Attachment
// @Failure      400   {object}  response.ErrorBody
// @Router       /api/attachments [post]
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxAttachmentSize+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, response.Error("file exceeds the upload limit"))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error("file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to read upload")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(file, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			writeServiceError(c, h.logger, err, "Failed to read upload")
			return
		}
		contentType = http.DetectContentType(head[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			writeServiceError(c, h.logger, err, "Failed to read upload")
			return
		}
	}

	attachment, err := h.attachmentService.UploadAttachment(c.Request.Context(), service.UploadAttachmentRequest{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to store attachment")
		return
	}

	c.JSON(http.StatusCreated, attachment)
}
