package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// readFormFiles loads every file of the multipart field into memory.
func readFormFiles(c *gin.Context, field string) ([]dto.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File[field]
	files := make([]dto.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := readFileHeader(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// readFormFile loads the single file of the multipart field.
func readFormFile(c *gin.Context, field string) (dto.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return dto.FileUpload{}, fmt.Errorf("%s file is required", field)
	}
	return readFileHeader(fh)
}

func readFileHeader(fh *multipart.FileHeader) (dto.FileUpload, error) {
	src, err := fh.Open()
	if err != nil {
		return dto.FileUpload{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return dto.FileUpload{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return dto.FileUpload{Name: fh.Filename, Data: data}, nil
}
