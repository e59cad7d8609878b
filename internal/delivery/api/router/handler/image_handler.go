package handler

import (
	"net/http"
	"strconv"

	"inventory/internal/errors"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ImageHandler serves stored product images.
type ImageHandler struct {
	uc usecase.ImageUsecase
}

// NewImageHandler is the constructor for ImageHandler, injected by Fx.
func NewImageHandler(uc usecase.ImageUsecase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// Serve streams the image named in the path.
func (h *ImageHandler) Serve(c echo.Context) error {
	image, err := h.uc.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer image.Body.Close()

	contentType := image.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	header := c.Response().Header()
	// Names are never reused, so a stored image can be cached indefinitely.
	header.Set("Cache-Control", "public, max-age=31536000, immutable")
	header.Set("X-Content-Type-Options", "nosniff")
	if image.Size >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(image.Size, 10))
	}

	return c.Stream(http.StatusOK, contentType, image.Body)
}
