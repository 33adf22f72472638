package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"kawanlib/internal/middleware"
	"kawanlib/internal/model"
	"kawanlib/internal/response"
	"kawanlib/internal/service"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles portfolio related requests
type PortfolioHandler struct {
	service service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(s service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: s}
}

func authIdentity(c *gin.Context) (int, string) {
	return c.GetInt(middleware.AuthUserKey), c.GetString(middleware.AuthRoleKey)
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	userID, _ := authIdentity(c)

	var req model.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	portfolio, err := h.service.CreatePortfolio(c.Request.Context(), userID, req)
	if err != nil {
		log.Printf("Error creating portfolio: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create portfolio")
		return
	}

	response.OK(c, http.StatusCreated, "Portfolio created successfully", portfolio)
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	userID, role := authIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	portfolio, err := h.service.GetPortfolioByID(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPortfolioNotFound):
			response.Error(c, http.StatusNotFound, "Portfolio not found")
		case errors.Is(err, service.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You do not have access to this portfolio")
		default:
			log.Printf("Error getting portfolio: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to get portfolio")
		}
		return
	}

	response.OK(c, http.StatusOK, "Portfolio retrieved successfully", portfolio)
}

// ListMine returns the authenticated user's own portfolio entries.
func (h *PortfolioHandler) ListMine(c *gin.Context) {
	userID, _ := authIdentity(c)

	portfolios, err := h.service.GetUserPortfolios(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error listing portfolios: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve portfolios")
		return
	}

	response.OK(c, http.StatusOK, "Portfolios retrieved successfully", portfolios)
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	userID, _ := authIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	var req model.UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	portfolio, err := h.service.UpdatePortfolio(c.Request.Context(), id, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPortfolioNotFound):
			response.Error(c, http.StatusNotFound, "Portfolio not found")
		case errors.Is(err, service.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You do not have access to this portfolio")
		default:
			log.Printf("Error updating portfolio: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to update portfolio")
		}
		return
	}

	response.OK(c, http.StatusOK, "Portfolio updated successfully", portfolio)
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, role := authIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	if err := h.service.DeletePortfolio(c.Request.Context(), id, userID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrPortfolioNotFound):
			response.Error(c, http.StatusNotFound, "Portfolio not found")
		case errors.Is(err, service.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You do not have access to this portfolio")
		default:
			log.Printf("Error deleting portfolio: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to delete portfolio")
		}
		return
	}

	response.OK(c, http.StatusOK, "Portfolio deleted successfully", nil)
}

func (h *PortfolioHandler) UploadDocument(c *gin.Context) {
	userID, _ := authIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Document file is required")
		return
	}

	portfolio, err := h.service.UploadDocument(c.Request.Context(), id, userID, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPortfolioNotFound):
			response.Error(c, http.StatusNotFound, "Portfolio not found")
		case errors.Is(err, service.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You do not have access to this portfolio")
		case errors.Is(err, service.ErrInvalidFileFormat):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFileSizeExceeded):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error uploading portfolio document: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to upload document")
		}
		return
	}

	response.OK(c, http.StatusOK, "Document uploaded successfully", portfolio)
}

func (h *PortfolioHandler) DownloadDocument(c *gin.Context) {
	userID, role := authIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	data, contentType, filename, err := h.service.DownloadDocument(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPortfolioNotFound):
			response.Error(c, http.StatusNotFound, "Portfolio not found")
		case errors.Is(err, service.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You do not have access to this portfolio")
		case errors.Is(err, service.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, "Document not found")
		default:
			log.Printf("Error downloading portfolio document: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to download document")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// RegisterPortfolioRoutes registers portfolio routes. All endpoints need
// a valid token; ownership is enforced in the service layer.
func (h *PortfolioHandler) RegisterPortfolioRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	portfolioGroup := rg.Group("/portfolios")
	portfolioGroup.Use(authMW)
	{
		portfolioGroup.POST("", h.Create)
		portfolioGroup.GET("", h.ListMine)
		portfolioGroup.GET("/:id", h.Get)
		portfolioGroup.PUT("/:id", h.Update)
		portfolioGroup.DELETE("/:id", h.Delete)
		portfolioGroup.POST("/:id/document", h.UploadDocument)
		portfolioGroup.GET("/:id/document", h.DownloadDocument)
	}
}
