package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UploadPDF accepts a multipart PDF upload for the authenticated user.
// POST /api/v1/uploads/pdf
func (s *Server) UploadPDF(c echo.Context) error {

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable file field")
	}
	defer src.Close()

	contentType := fh.Header.Get(echo.HeaderContentType)

	meta, err := s.files.Upload(c.Request().Context(), GetIdentity(c), fh.Filename, contentType, src)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, newFileResponse(meta))
}

// ListPDFs returns the caller's uploads, newest first.
// GET /api/v1/uploads/pdfs
func (s *Server) ListPDFs(c echo.Context) error {

	list, err := s.files.List(c.Request().Context(), GetIdentity(c))
	if err != nil {
		return mapError(err)
	}

	files := make([]fileResponse, 0, len(list))
	for _, meta := range list {
		files = append(files, newFileResponse(meta))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"files":       files,
		"total_count": len(files),
	})
}

// GetPDF returns metadata for one of the caller's files.
// GET /api/v1/uploads/pdf/:id
func (s *Server) GetPDF(c echo.Context) error {

	meta, err := s.files.Get(c.Request().Context(), GetIdentity(c), c.Param("id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, newFileResponse(meta))
}

// DownloadPDF streams the stored file back to its owner.
// GET /api/v1/uploads/pdf/:id/download
func (s *Server) DownloadPDF(c echo.Context) error {

	meta, rc, err := s.files.Open(c.Request().Context(), GetIdentity(c), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+meta.OriginalFileName+`"`)
	return c.Stream(http.StatusOK, meta.ContentType, rc)
}

// DeletePDF removes one of the caller's files.
// DELETE /api/v1/uploads/pdf/:id
func (s *Server) DeletePDF(c echo.Context) error {

	if err := s.files.Delete(c.Request().Context(), GetIdentity(c), c.Param("id")); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

// UploadStats summarizes the caller's uploads.
// GET /api/v1/uploads/stats
func (s *Server) UploadStats(c echo.Context) error {

	list, err := s.files.List(c.Request().Context(), GetIdentity(c))
	if err != nil {
		return mapError(err)
	}

	var totalSize int64
	for _, meta := range list {
		totalSize += meta.Size
	}

	recent := list
	if len(recent) > 5 {
		recent = recent[:5]
	}
	recentFiles := make([]map[string]any, 0, len(recent))
	for _, meta := range recent {
		recentFiles = append(recentFiles, map[string]any{
			"file_id":     meta.ID,
			"filename":    meta.OriginalFileName,
			"upload_time": meta.UploadedAt,
			"file_size":   meta.Size,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_files":      len(list),
		"total_size_bytes": totalSize,
		"total_size_mb":    float64(totalSize) / (1024 * 1024),
		"recent_files":     recentFiles,
	})
}
