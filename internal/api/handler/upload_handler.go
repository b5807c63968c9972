package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bloghub/blog-api/internal/api/identity"
	"github.com/bloghub/blog-api/internal/api/metrics"
)

// allowed image MIME types as reported by content sniffing.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// ImageSaver persists an uploaded image and returns its public path.
type ImageSaver interface {
	Save(originalName string, src io.Reader) (string, error)
}

// ImageCleaner schedules best-effort removal of a stale image.
type ImageCleaner interface {
	Enqueue(path string)
}

// UploadHandler serves the image upload side channel next to GraphQL.
type UploadHandler struct {
	store   ImageSaver
	cleaner ImageCleaner
	logger  zerolog.Logger
}

func NewUploadHandler(store ImageSaver, cleaner ImageCleaner, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{store: store, cleaner: cleaner, logger: logger}
}

type uploadResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath,omitempty"`
}

// Upload stores one PNG/JPEG image from a multipart form.
//
// @Summary      Upload a post image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        image    formData  file    false  "Image file (png or jpeg)"
// @Param        oldPath  formData  string  false  "Previously stored image path to replace"
// @Success      200  {object}  uploadResponse  "no file provided"
// @Success      201  {object}  uploadResponse
// @Failure      401  {object}  uploadResponse
// @Failure      422  {object}  uploadResponse
// @Router       /post_image [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, ok := identity.FromContext(c.Request().Context()); !ok {
		metrics.UploadsTotal.WithLabelValues("unauthorized").Inc()
		return c.JSON(http.StatusUnauthorized, uploadResponse{Message: "not authenticated"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("no_file").Inc()
		return c.JSON(http.StatusOK, uploadResponse{Message: "no file provided"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read uploaded file")
	}
	defer src.Close()

	// Sniff the real content type instead of trusting the client header.
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read uploaded file")
	}
	head = head[:n]

	if contentType := http.DetectContentType(head); !allowedImageTypes[contentType] {
		metrics.UploadsTotal.WithLabelValues("unsupported_type").Inc()
		return c.JSON(http.StatusUnprocessableEntity, uploadResponse{Message: "unsupported file type, only png and jpeg are accepted"})
	}

	filePath, err := h.store.Save(fileHeader.Filename, io.MultiReader(bytes.NewReader(head), src))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		h.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("image store failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store file")
	}

	// Replacing an image: drop the old file off the request path.
	if oldPath := c.FormValue("oldPath"); oldPath != "" && h.cleaner != nil {
		h.cleaner.Enqueue(oldPath)
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	h.logger.Info().Str("path", filePath).Msg("image stored")
	return c.JSON(http.StatusCreated, uploadResponse{Message: "file stored", FilePath: filePath})
}
