package handler

import (
	"net/http"

	"acservice/internal/middleware"
	"acservice/internal/model"
	"acservice/internal/repository"
	"acservice/internal/service"
	"acservice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	complaintService service.ComplaintService
	auth             *middleware.Authenticator
}

func NewComplaintHandler(complaintService service.ComplaintService, auth *middleware.Authenticator) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService, auth: auth}
}

func (h *ComplaintHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := h.auth.RequireRole(model.RoleAdmin)

	group := router.Group("/complaint")
	group.Use(h.auth.RequireRole())
	{
		group.GET("", admin, h.ListComplaints)
		group.GET("/my", h.MyComplaints)
		group.GET("/:id", h.GetComplaint)
		group.POST("", h.CreateComplaint)
		group.PUT("/:id", h.UpdateComplaint)
		group.PUT("/:id/assign", admin, h.AssignComplaint)
		group.PUT("/:id/payment", h.UpdatePayment)
	}
}

// ListComplaints handles GET /complaint
// @Summary      List complaints
// @Description  Lists every complaint, newest first, optionally narrowed by status and priority
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "open, in_progress, done or closed"
// @Param        priority  query     string  false  "low, medium or high"
// @Success      200       {object}  response.Response{data=[]model.Complaint}
// @Failure      400       {object}  response.Response
// @Router       /complaint [get]
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	var filter repository.ComplaintFilter
	if v := c.Query("status"); v != "" && v != "all" {
		status, err := model.ParseComplaintStatus(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		filter.Status = status
	}
	if v := c.Query("priority"); v != "" && v != "all" {
		priority, err := model.ParsePriority(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		filter.Priority = priority
	}

	complaints, err := h.complaintService.ListComplaints(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaints))
}

// MyComplaints handles GET /complaint/my
// @Summary      My complaints
// @Description  Complaints assigned to or created by the caller
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Complaint}
// @Router       /complaint/my [get]
func (h *ComplaintHandler) MyComplaints(c *gin.Context) {
	complaints, err := h.complaintService.MyComplaints(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaints))
}

// GetComplaint handles GET /complaint/:id
// @Summary      Get complaint
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Complaint ID"
// @Success      200  {object}  response.Response{data=model.Complaint}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /complaint/{id} [get]
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	complaint, err := h.complaintService.GetComplaint(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaint))
}

// CreateComplaint handles POST /complaint
// @Summary      Create complaint
// @Description  Opens a service ticket. Status starts at open and payment is derived from the amount.
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateComplaintRequest  true  "Complaint"
// @Success      201      {object}  response.Response{data=model.Complaint}
// @Failure      400      {object}  response.Response
// @Router       /complaint [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req service.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	complaint, err := h.complaintService.CreateComplaint(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, complaint))
}

// UpdateComplaint handles PUT /complaint/:id
// @Summary      Update complaint
// @Description  Replaces the fields present in the body. Repeating a request leaves the same state.
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Complaint ID"
// @Param        payload  body      service.UpdateComplaintRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.Complaint}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /complaint/{id} [put]
func (h *ComplaintHandler) UpdateComplaint(c *gin.Context) {
	var req service.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	complaint, err := h.complaintService.UpdateComplaint(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaint))
}

// AssignComplaint handles PUT /complaint/:id/assign
// @Summary      Assign complaint
// @Description  Assigns the complaint to a technician. Admin accounts cannot be assignees.
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Complaint ID"
// @Param        payload  body      service.AssignComplaintRequest  true  "Assignee"
// @Success      200      {object}  response.Response{data=model.Complaint}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /complaint/{id}/assign [put]
func (h *ComplaintHandler) AssignComplaint(c *gin.Context) {
	var req service.AssignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	complaint, err := h.complaintService.AssignComplaint(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaint))
}

// UpdatePayment handles PUT /complaint/:id/payment
// @Summary      Update payment
// @Description  Records amount and advance. Balance and status are derived; advance may not exceed amount.
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Complaint ID"
// @Param        payload  body      service.UpdatePaymentRequest  true  "Payment"
// @Success      200      {object}  response.Response{data=model.Complaint}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /complaint/{id}/payment [put]
func (h *ComplaintHandler) UpdatePayment(c *gin.Context) {
	var req service.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	complaint, err := h.complaintService.UpdatePayment(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaint))
}
