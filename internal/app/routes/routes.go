package routes

import (
	"github.com/gin-gonic/gin"

	appAuth "github.com/denizatik/edutrack/internal/app/auth"
	"github.com/denizatik/edutrack/internal/app/controllers"
	"github.com/denizatik/edutrack/internal/app/models"
	"github.com/denizatik/edutrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	assignmentController *controllers.AssignmentController,
	submissionController *controllers.SubmissionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/users", authController.Register)
	v1.POST("/token", authController.Token)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/me", authController.Me)

		assignments := authenticated.Group("/assignments")
		{
			// Any authenticated user may browse assignments
			assignments.GET("", assignmentController.ListAssignments)
			assignments.GET("/:id", assignmentController.GetAssignment)

			// Teacher-only routes, gated by the role table
			teacherRole, _ := appAuth.RequiredRole(appAuth.OpCreateAssignment)
			assignmentsTeacherProtected := assignments.Group("")
			assignmentsTeacherProtected.Use(authMiddleware.RoleRequired(string(teacherRole)))
			{
				assignmentsTeacherProtected.POST("", assignmentController.CreateAssignment)
				assignmentsTeacherProtected.GET("/:id/submissions", submissionController.ListSubmissions)
			}

			// Student-only routes
			studentRole, _ := appAuth.RequiredRole(appAuth.OpSubmitWork)
			assignmentsStudentProtected := assignments.Group("")
			assignmentsStudentProtected.Use(authMiddleware.RoleRequired(string(studentRole)))
			{
				assignmentsStudentProtected.POST("/:id/submit", submissionController.SubmitWork)
				assignmentsStudentProtected.GET("/:id/my-submission", submissionController.GetMySubmission)
			}
		}

		submissions := authenticated.Group("/submissions")
		{
			submissionsStudentProtected := submissions.Group("")
			submissionsStudentProtected.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				submissionsStudentProtected.GET("/me", submissionController.ListMySubmissions)
			}
		}
	}
}
