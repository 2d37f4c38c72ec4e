package handler

import (
	"net/http"

	"crm/internal/service"
	"crm/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CustomerHandler struct {
	customerService service.CustomerService
	logger          zerolog.Logger
}

func NewCustomerHandler(customerService service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, logger: logger}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
}

// ListCustomers returns active customers, newest first
// @Summary      List customers
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive match on company name or phone"
// @Param        type    query     string  false  "Customer type; unknown values are ignored"
// @Success      200     {array}   service.CustomerResponse
// @Failure      500     {object}  response.ErrorBody
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var query service.ListCustomersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindingError(c, err)
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// CreateCustomer creates a customer unless a similar one exists
// @Summary      Create customer
// @Description  Returns 409 with the matching record when the company name or phone looks like an existing customer. Resend with force=true to create anyway.
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCustomerRequest  true  "Customer payload"
// @Success      201      {object}  service.CustomerResponse
// @Failure      400      {object}  response.ErrorBody
// @Failure      409      {object}  response.DuplicateBody
// @Router       /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomer returns a customer with its five most recent activities
// @Summary      Get customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  service.CustomerDetailResponse
// @Failure      404  {object}  response.ErrorBody
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to fetch customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer applies the supplied fields only
// @Summary      Update customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Customer ID"
// @Param        payload  body      service.UpdateCustomerRequest  true  "Fields to change"
// @Success      200      {object}  service.CustomerResponse
// @Failure      400      {object}  response.ErrorBody
// @Failure      404      {object}  response.ErrorBody
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer deactivates a customer (soft delete)
// @Summary      Delete customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.MessageBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customer, err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, response.Message("Customer deleted", customer.ID.String()))
}
