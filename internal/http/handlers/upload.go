package handlers

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
	"github.com/yungbote/portfolio-backend/internal/platform/apierr"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

const (
	maxUploadFiles    = 10
	maxUploadFileSize = 10 << 20
)

type UploadHandler struct {
	log     *logger.Logger
	uploads services.UploadService
}

func NewUploadHandler(log *logger.Logger, uploads services.UploadService) *UploadHandler {
	return &UploadHandler{log: log.With("handler", "UploadHandler"), uploads: uploads}
}

// POST /api/uploads/images (multipart, field "files")
//
// Files are uploaded in form order. On the first failure the response is the
// error plus the URLs stored before it.
func (h *UploadHandler) UploadImages(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		response.RespondError(c, fmt.Errorf("multipart form: %w: %w", perrors.ErrInvalidArgument, err))
		return
	}
	fileHeaders := c.Request.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		response.RespondError(c, fmt.Errorf("no files: %w", perrors.ErrInvalidArgument))
		return
	}
	if len(fileHeaders) > maxUploadFiles {
		response.RespondError(c, fmt.Errorf("at most %d files: %w", maxUploadFiles, perrors.ErrInvalidArgument))
		return
	}

	files := make([][]byte, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > maxUploadFileSize {
			response.RespondError(c, fmt.Errorf("%s exceeds %d bytes: %w", fh.Filename, maxUploadFileSize, perrors.ErrInvalidArgument))
			return
		}
		f, err := fh.Open()
		if err != nil {
			h.log.Error("cannot open file for reading", "error", err)
			response.RespondError(c, fmt.Errorf("open %s: %w: %w", fh.Filename, perrors.ErrInvalidArgument, err))
			return
		}
		raw, err := io.ReadAll(io.LimitReader(f, maxUploadFileSize+1))
		_ = f.Close()
		if err != nil {
			response.RespondError(c, fmt.Errorf("read %s: %w: %w", fh.Filename, perrors.ErrInvalidArgument, err))
			return
		}
		files = append(files, raw)
	}

	urls, err := h.uploads.UploadImages(c.Request.Context(), files)
	if err != nil {
		h.log.Warn("UploadImages stopped", "uploaded", len(urls), "error", err)
		ae := apierr.From(err)
		c.AbortWithStatusJSON(ae.Status, gin.H{
			"error": response.APIError{Message: err.Error(), Code: ae.Code},
			"urls":  urls,
		})
		return
	}
	response.RespondOK(c, gin.H{"urls": urls})
}

