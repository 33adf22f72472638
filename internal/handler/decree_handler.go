package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"kawanlib/internal/model"
	"kawanlib/internal/response"
	"kawanlib/internal/service"

	"github.com/gin-gonic/gin"
)

// DecreeHandler handles decree related requests
type DecreeHandler struct {
	service service.DecreeService
}

// NewDecreeHandler creates a new DecreeHandler
func NewDecreeHandler(s service.DecreeService) *DecreeHandler {
	return &DecreeHandler{service: s}
}

func (h *DecreeHandler) Create(c *gin.Context) {
	var req model.CreateDecreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	decree, err := h.service.CreateDecree(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmployeeNotFound):
			response.Error(c, http.StatusNotFound, "Employee not found")
		case errors.Is(err, service.ErrDecreeNumberTaken):
			response.Error(c, http.StatusConflict, "Decree with this number already exists")
		default:
			log.Printf("Error creating decree: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to create decree")
		}
		return
	}

	response.OK(c, http.StatusCreated, "Decree created successfully", decree)
}

func (h *DecreeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid decree ID")
		return
	}

	decree, err := h.service.GetDecreeByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDecreeNotFound) {
			response.Error(c, http.StatusNotFound, "Decree not found")
			return
		}
		log.Printf("Error getting decree: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get decree")
		return
	}

	response.OK(c, http.StatusOK, "Decree retrieved successfully", decree)
}

func (h *DecreeHandler) List(c *gin.Context) {
	var filters model.DecreeFilters
	if employeeParam := c.Query("employeeId"); employeeParam != "" {
		employeeID, err := strconv.Atoi(employeeParam)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid employeeId filter")
			return
		}
		filters.EmployeeID = &employeeID
	}
	if categoryParam := c.Query("category"); categoryParam != "" {
		filters.Category = &categoryParam
	}
	if queryParam := c.Query("q"); queryParam != "" {
		filters.Query = &queryParam
	}

	decrees, err := h.service.GetDecrees(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing decrees: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve decrees")
		return
	}

	response.OK(c, http.StatusOK, "Decrees retrieved successfully", decrees)
}

func (h *DecreeHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid decree ID")
		return
	}

	var req model.UpdateDecreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	decree, err := h.service.UpdateDecree(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDecreeNotFound):
			response.Error(c, http.StatusNotFound, "Decree not found")
		case errors.Is(err, service.ErrDecreeNumberTaken):
			response.Error(c, http.StatusConflict, "Decree with this number already exists")
		default:
			log.Printf("Error updating decree: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to update decree")
		}
		return
	}

	response.OK(c, http.StatusOK, "Decree updated successfully", decree)
}

func (h *DecreeHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid decree ID")
		return
	}

	if err := h.service.DeleteDecree(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrDecreeNotFound) {
			response.Error(c, http.StatusNotFound, "Decree not found")
			return
		}
		log.Printf("Error deleting decree: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete decree")
		return
	}

	response.OK(c, http.StatusOK, "Decree deleted successfully", nil)
}

func (h *DecreeHandler) UploadDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid decree ID")
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Document file is required")
		return
	}

	decree, err := h.service.UploadDocument(c.Request.Context(), id, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDecreeNotFound):
			response.Error(c, http.StatusNotFound, "Decree not found")
		case errors.Is(err, service.ErrInvalidFileFormat):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFileSizeExceeded):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error uploading decree document: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to upload document")
		}
		return
	}

	response.OK(c, http.StatusOK, "Document uploaded successfully", decree)
}

func (h *DecreeHandler) DownloadDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid decree ID")
		return
	}

	data, contentType, filename, err := h.service.DownloadDocument(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDecreeNotFound):
			response.Error(c, http.StatusNotFound, "Decree not found")
		case errors.Is(err, service.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, "Document not found")
		default:
			log.Printf("Error downloading decree document: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to download document")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *DecreeHandler) DeleteDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid decree ID")
		return
	}

	if err := h.service.DeleteDocument(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrDecreeNotFound):
			response.Error(c, http.StatusNotFound, "Decree not found")
		case errors.Is(err, service.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, "Document not found")
		default:
			log.Printf("Error deleting decree document: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to delete document")
		}
		return
	}

	response.OK(c, http.StatusOK, "Document deleted successfully", nil)
}

// ListByEmployee returns all decrees for one employee.
func (h *DecreeHandler) ListByEmployee(c *gin.Context) {
	employeeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	decrees, err := h.service.GetDecrees(c.Request.Context(), model.DecreeFilters{EmployeeID: &employeeID})
	if err != nil {
		log.Printf("Error listing employee decrees: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve decrees")
		return
	}

	response.OK(c, http.StatusOK, "Decrees retrieved successfully", decrees)
}

// RegisterDecreeRoutes registers decree routes. Reads need a valid
// token; writes and document management are admin-only.
func (h *DecreeHandler) RegisterDecreeRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/employees/:id/decrees", authMW, h.ListByEmployee)

	decreeGroup := rg.Group("/decrees")
	decreeGroup.Use(authMW)
	{
		decreeGroup.GET("", h.List)
		decreeGroup.GET("/:id", h.Get)
		decreeGroup.GET("/:id/document", h.DownloadDocument)

		adminGroup := decreeGroup.Group("")
		adminGroup.Use(adminMW)
		{
			adminGroup.POST("", h.Create)
			adminGroup.PUT("/:id", h.Update)
			adminGroup.DELETE("/:id", h.Delete)
			adminGroup.POST("/:id/document", h.UploadDocument)
			adminGroup.DELETE("/:id/document", h.DeleteDocument)
		}
	}
}
