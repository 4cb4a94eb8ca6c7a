package utils

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dwightbot/dwight-web/backend/models"
	"github.com/dwightbot/dwight-web/internal/domain"
)

// ReadSoundUpload accepts either a multipart form (name, hidden, file) or a JSON body with
// base64 file_data. The size limit is enforced again by the sounds service.
func ReadSoundUpload(c *fiber.Ctx, maxBytes int) (*models.CreateSoundRequest, []byte, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return readMultipart(c, maxBytes)
	}

	var req models.CreateSoundRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, fmt.Errorf("%w: malformed body: %w", domain.ErrInvalidInput, err)
	}
	if req.FileData == "" {
		return nil, nil, fmt.Errorf("%w: file_data is required", domain.ErrInvalidInput)
	}
	// drop an optional data URL prefix
	if i := strings.Index(req.FileData, ","); i >= 0 && strings.HasPrefix(req.FileData, "data:") {
		req.FileData = req.FileData[i+1:]
	}
	if base64.StdEncoding.DecodedLen(len(req.FileData)) > maxBytes+2 {
		return nil, nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: file_data is not valid base64", domain.ErrInvalidInput)
	}
	req.FileData = ""
	return &req, data, nil
}

func readMultipart(c *fiber.Ctx, maxBytes int) (*models.CreateSoundRequest, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: file is required", domain.ErrInvalidInput)
	}
	if header.Size > int64(maxBytes) {
		return nil, nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, maxBytes)
	}

	src, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, int64(maxBytes)+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}

	hidden := c.FormValue("hidden")
	return &models.CreateSoundRequest{
		Name:   c.FormValue("name"),
		Hidden: hidden == "true" || hidden == "on" || hidden == "1",
	}, data, nil
}
