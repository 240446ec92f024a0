package handler // image upload endpoints

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/storage"
)

// Image uploads larger than this are rejected before touching object
// storage.
const maxUploadBytes = 5 << 20

var uploadKinds = map[string]bool{
	"events":  true,
	"rewards": true,
	"avatars": true,
}

// UploadImage handles POST /v1/admin/uploads with a multipart "file"
// part and a "kind" field grouping the object (events, rewards or
// avatars). Returns the public URL of the stored object, or 503 when
// object storage is not configured.
func (h *AdminHandler) UploadImage(c echo.Context) error {
	if h.Storage == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "image uploads are not configured"})
	}
	kind := c.FormValue("kind")
	if kind == "" {
		kind = "events"
	}
	if !uploadKinds[kind] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be events, rewards or avatars"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file exceeds 5MB"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read file"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read file"})
	}
	if len(data) > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file exceeds 5MB"})
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.Storage.Upload(c.Request().Context(), kind, contentType, data)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": "only jpeg, png and webp images are accepted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// DeleteImage handles DELETE /v1/admin/uploads/* where the wildcard is
// the object key returned inside a previous upload's URL.
func (h *AdminHandler) DeleteImage(c echo.Context) error {
	if h.Storage == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "image uploads are not configured"})
	}
	key := c.Param("*")
	if key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key is required"})
	}
	if err := h.Storage.Delete(c.Request().Context(), key); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete image"})
	}
	return c.NoContent(http.StatusNoContent)
}
