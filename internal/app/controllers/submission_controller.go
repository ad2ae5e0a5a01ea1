package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/denizatik/edutrack/internal/app/models/dto"
	"github.com/denizatik/edutrack/internal/app/services"
	"github.com/denizatik/edutrack/internal/middleware"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// SubmissionController handles submission related operations
type SubmissionController struct {
	submissionService services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService services.SubmissionService) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
	}
}

// SubmitWork handles a student submitting work for an assignment
// @Summary Submit work for an assignment
// @Description Records the student's single submission for the assignment. (Students only)
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param attachment formData file true "Submitted work"
// @Success 201 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission recorded"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /assignments/{id}/submit [post]
func (c *SubmissionController) SubmitWork(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	assignmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attachment, err := ctx.FormFile("attachment")
	if err != nil {
		logger.Warn().Err(err).Msg("Submission attempted without a file")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithDetails("attachment form file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.submissionService.SubmitWork(ctx.Request.Context(), studentID, assignmentID, attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(submission))
}

// GetMySubmission returns the student's own submission for an assignment
// @Summary Get own submission for an assignment
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse}
// @Failure 404 {object} dto.ErrorResponse "Never submitted"
// @Router /assignments/{id}/my-submission [get]
func (c *SubmissionController) GetMySubmission(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	assignmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.submissionService.GetOwnSubmission(ctx.Request.Context(), studentID, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(submission))
}

// ListSubmissions returns all submissions for an assignment the caller owns
// @Summary List submissions for an assignment
// @Description Lists submissions in creation order. (Owning teacher only)
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionListResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the assignment"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id}/submissions [get]
func (c *SubmissionController) ListSubmissions(ctx *gin.Context) {
	teacherID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	assignmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.submissionService.ListSubmissionsForAssignment(ctx.Request.Context(), teacherID, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ListMySubmissions returns all submissions the calling student made
// @Summary List own submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionListResponse}
// @Router /submissions/me [get]
func (c *SubmissionController) ListMySubmissions(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.submissionService.ListOwnSubmissions(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
