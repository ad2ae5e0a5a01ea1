package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/denizatik/edutrack/internal/app/models/dto"
	"github.com/denizatik/edutrack/internal/app/services"
	"github.com/denizatik/edutrack/internal/middleware"
	"github.com/denizatik/edutrack/internal/pkg/helpers"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// AssignmentController handles assignment related operations
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// CreateAssignment handles assignment creation
// @Summary Create a new assignment
// @Description Creates an assignment with an optional attachment. (Teachers only)
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Assignment title"
// @Param description formData string true "Assignment description"
// @Param deadline formData string true "Deadline (RFC 3339)"
// @Param attachment formData file false "Optional attachment"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher"
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	teacherID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		logger.Warn().Err(err).Msg("Invalid create assignment payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// Optional attachment; absence is not an error
	attachment, err := ctx.FormFile("attachment")
	if err != nil {
		attachment = nil
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx.Request.Context(), teacherID, &req, attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(assignment))
}

// ListAssignments handles retrieving all assignments
// @Summary List assignments
// @Description Lists all assignments. (All authenticated users)
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentListResponse}
// @Router /assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", strconv.Itoa(helpers.DefaultPage)))
	if err != nil || page < 1 {
		page = helpers.DefaultPage
	}

	pageSize, err := strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(helpers.DefaultPageSize)))
	if err != nil || pageSize <= 0 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}

	response, err := c.assignmentService.ListAssignments(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetAssignment handles retrieving a single assignment
// @Summary Get an assignment by id
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.assignmentService.GetAssignment(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment))
}
