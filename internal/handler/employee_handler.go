package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"kawanlib/internal/model"
	"kawanlib/internal/response"
	"kawanlib/internal/service"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles employee related requests
type EmployeeHandler struct {
	service service.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req model.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	employee, err := h.service.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNIPTaken) {
			response.Error(c, http.StatusConflict, "Employee with this NIP already exists")
			return
		}
		log.Printf("Error creating employee: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	response.OK(c, http.StatusCreated, "Employee created successfully", employee)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	employee, err := h.service.GetEmployeeByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.Error(c, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("Error getting employee: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get employee")
		return
	}

	response.OK(c, http.StatusOK, "Employee retrieved successfully", employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	var filters model.EmployeeFilters
	if statusParam := c.Query("status"); statusParam != "" {
		filters.Status = &statusParam
	}
	if deptParam := c.Query("department"); deptParam != "" {
		filters.Department = &deptParam
	}
	if queryParam := c.Query("q"); queryParam != "" {
		filters.Query = &queryParam
	}

	employees, err := h.service.GetEmployees(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing employees: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	response.OK(c, http.StatusOK, "Employees retrieved successfully", employees)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var req model.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	employee, err := h.service.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmployeeNotFound):
			response.Error(c, http.StatusNotFound, "Employee not found")
		case errors.Is(err, service.ErrNIPTaken):
			response.Error(c, http.StatusConflict, "Employee with this NIP already exists")
		default:
			log.Printf("Error updating employee: %v", err)
			response.Error(c, http.StatusInternalServerError, "Failed to update employee")
		}
		return
	}

	response.OK(c, http.StatusOK, "Employee updated successfully", employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if err := h.service.DeleteEmployee(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.Error(c, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("Error deleting employee: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	response.OK(c, http.StatusOK, "Employee deleted successfully", nil)
}

// RegisterEmployeeRoutes registers employee routes. Reads need a valid
// token; writes are admin-only.
func (h *EmployeeHandler) RegisterEmployeeRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	employeeGroup := rg.Group("/employees")
	employeeGroup.Use(authMW)
	{
		employeeGroup.GET("", h.List)
		employeeGroup.GET("/:id", h.Get)

		adminGroup := employeeGroup.Group("")
		adminGroup.Use(adminMW)
		{
			adminGroup.POST("", h.Create)
			adminGroup.PUT("/:id", h.Update)
			adminGroup.DELETE("/:id", h.Delete)
		}
	}
}
