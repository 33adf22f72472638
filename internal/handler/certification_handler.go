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

// CertificationHandler handles certification related requests
type CertificationHandler struct {
	service service.CertificationService
}

// NewCertificationHandler creates a new CertificationHandler
func NewCertificationHandler(s service.CertificationService) *CertificationHandler {
	return &CertificationHandler{service: s}
}

func (h *CertificationHandler) Create(c *gin.Context) {
	var req model.CreateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	cert, err := h.service.CreateCertification(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.Error(c, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("Error creating certification: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create certification")
		return
	}

	response.OK(c, http.StatusCreated, "Certification created successfully", cert)
}

func (h *CertificationHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid certification ID")
		return
	}

	cert, err := h.service.GetCertificationByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCertificationNotFound) {
			response.Error(c, http.StatusNotFound, "Certification not found")
			return
		}
		log.Printf("Error getting certification: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get certification")
		return
	}

	response.OK(c, http.StatusOK, "Certification retrieved successfully", cert)
}

func (h *CertificationHandler) List(c *gin.Context) {
	var filters model.CertificationFilters
	if employeeParam := c.Query("employeeId"); employeeParam != "" {
		employeeID, err := strconv.Atoi(employeeParam)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid employeeId filter")
			return
		}
		filters.EmployeeID = &employeeID
	}
	if issuerParam := c.Query("issuer"); issuerParam != "" {
		filters.Issuer = &issuerParam
	}
	if queryParam := c.Query("q"); queryParam != "" {
		filters.Query = &queryParam
	}

	certs, err := h.service.GetCertifications(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing certifications: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve certifications")
		return
	}

	response.OK(c, http.StatusOK, "Certifications retrieved successfully", certs)
}

func (h *CertificationHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid certification ID")
		return
	}

	var req model.UpdateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	cert, err := h.service.UpdateCertification(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrCertificationNotFound) {
			response.Error(c, http.StatusNotFound, "Certification not found")
			return
		}
		log.Printf("Error updating certification: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update certification")
		return
	}

	response.OK(c, http.StatusOK, "Certification updated successfully", cert)
}

func (h *CertificationHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid certification ID")
		return
	}

	if err := h.service.DeleteCertification(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCertificationNotFound) {
			response.Error(c, http.StatusNotFound, "Certification not found")
			return
		}
		log.Printf("Error deleting certification: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete certification")
		return
	}

	response.OK(c, http.StatusOK, "Certification deleted successfully", nil)
}

func (h *CertificationHandler) UploadDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid certification ID")
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Document file is required")
		return
	}

	cert, err := h.service.UploadDocument(c.Request.Context(), id, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCertificationNotFound):
			response.Error(c, http.StatusNotFound, "Certification not found")
		case errors.Is(err, service.ErrInvalidFileFormat):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFileSizeExceeded):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error uploading certification document: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to upload document")
		}
		return
	}

	response.OK(c, http.StatusOK, "Document uploaded successfully", cert)
}

func (h *CertificationHandler) DownloadDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid certification ID")
		return
	}

	data, contentType, filename, err := h.service.DownloadDocument(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCertificationNotFound):
			response.Error(c, http.StatusNotFound, "Certification not found")
		case errors.Is(err, service.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, "Document not found")
		default:
			log.Printf("Error downloading certification document: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to download document")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// ListByEmployee returns all certifications for one employee.
func (h *CertificationHandler) ListByEmployee(c *gin.Context) {
	employeeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	certs, err := h.service.GetCertifications(c.Request.Context(), model.CertificationFilters{EmployeeID: &employeeID})
	if err != nil {
		log.Printf("Error listing employee certifications: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve certifications")
		return
	}

	response.OK(c, http.StatusOK, "Certifications retrieved successfully", certs)
}

// RegisterCertificationRoutes registers certification routes.
func (h *CertificationHandler) RegisterCertificationRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/employees/:id/certifications", authMW, h.ListByEmployee)

	certGroup := rg.Group("/certifications")
	certGroup.Use(authMW)
	{
		certGroup.GET("", h.List)
		certGroup.GET("/:id", h.Get)
		certGroup.GET("/:id/document", h.DownloadDocument)

		adminGroup := certGroup.Group("")
		adminGroup.Use(adminMW)
		{
			adminGroup.POST("", h.Create)
			adminGroup.PUT("/:id", h.Update)
			adminGroup.DELETE("/:id", h.Delete)
			adminGroup.POST("/:id/document", h.UploadDocument)
		}
	}
}
