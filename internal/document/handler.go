package document

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler accepts KYC document uploads and answers with a public URL the
// form can attach to the investor payload.
type Handler struct {
	store      *DiskStore
	publicBase string
	logger     *slog.Logger
}

// NewHandler builds a document HTTP handler. publicBase is the origin the
// returned URLs are rooted at.
func NewHandler(store *DiskStore, publicBase string, logger *slog.Logger) *Handler {
	return &Handler{store: store, publicBase: strings.TrimSuffix(publicBase, "/"), logger: logger}
}

// Upload handles POST /api/v1/documents/upload (multipart, field "file").
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file field is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	name, err := h.store.Save(fileHeader.Filename, src)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, "only jpg, jpeg, png and pdf documents are accepted")
		}
		h.logger.Error("document save failed", "error", err, "filename", fileHeader.Filename)
		return fiber.NewError(fiber.StatusInternalServerError, "could not store document")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": h.publicBase + "/uploads/" + name,
	})
}
