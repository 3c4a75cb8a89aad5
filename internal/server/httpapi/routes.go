package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerRoutes() {

	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := s.echo.Group(apiPrefix)

	ag := v1.Group("/auth")
	ag.POST("/register", s.Register)
	ag.POST("/login", s.Login)
	ag.POST("/refresh", s.RefreshToken)
	ag.GET("/me", s.Me, s.requireAuth)
	ag.POST("/logout", s.Logout, s.requireAuth)

	ug := v1.Group("/uploads", s.requireAuth)
	ug.POST("/pdf", s.UploadPDF)
	ug.GET("/pdfs", s.ListPDFs)
	ug.GET("/pdf/:id", s.GetPDF)
	ug.GET("/pdf/:id/download", s.DownloadPDF)
	ug.DELETE("/pdf/:id", s.DeletePDF)
	ug.GET("/stats", s.UploadStats)

	cg := v1.Group("/chat", s.requireAuth)
	cg.POST("/message", s.ChatMessage)
	cg.GET("/history", s.ChatHistory)
}
