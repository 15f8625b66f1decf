package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", app.Config.CORS.TrustedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/signup", app.Handler.SignUp)
		v1.POST("/login", app.Handler.Login)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/me", app.Handler.Me)
		protected.GET("/users", app.Handler.ListUsers)
		protected.GET("/users/:id", app.Handler.GetUser)

		// resume ingestion
		protected.POST("/upload", app.Handler.UploadResume)
		protected.POST("/upload_resumes", app.Handler.BulkUploadResumes)
		protected.GET("/download_resume/:filepath", app.Handler.DownloadResume)

		// candidates
		protected.GET("/candidates", app.Handler.ListCandidates)
		protected.GET("/candidates/:id", app.Handler.GetCandidate)
		protected.PUT("/candidates/:id", app.Handler.UpdateCandidate)
		protected.PATCH("/candidates/:id", app.Handler.UpdateCandidate)
		protected.DELETE("/candidates/:id", app.Handler.DeleteCandidate)
		protected.POST("/candidates/:id/notes", app.Handler.AddCandidateNote)
		protected.GET("/candidates/:id/notes", app.Handler.ListCandidateNotes)
		protected.GET("/candidates/:id/status_history", app.Handler.CandidateStatusHistory)
		protected.GET("/candidates/:id/assessment_results", app.Handler.ListCandidateAssessmentResults)
		protected.GET("/candidates/:id/video_interviews", app.Handler.ListCandidateVideoInterviews)

		// job descriptions
		protected.POST("/job_descriptions", app.Handler.CreateJobDescription)
		protected.GET("/job_descriptions", app.Handler.ListJobDescriptions)
		protected.GET("/job_descriptions/:id", app.Handler.GetJobDescription)
		protected.PATCH("/job_descriptions/:id", app.Handler.UpdateJobDescription)
		protected.DELETE("/job_descriptions/:id", app.Handler.DeleteJobDescription)
		protected.POST("/job_descriptions/:id/generate_questions", app.Handler.GenerateScreeningQuestions)

		// pipeline stages
		protected.GET("/pipeline_stages", app.Handler.ListStages)
		protected.POST("/pipeline_stages", app.Handler.CreateStage)
		protected.PATCH("/pipeline_stages/:id", app.Handler.UpdateStage)
		protected.POST("/pipeline_stages/:id/set_order", app.Handler.SetStageOrder)
		protected.DELETE("/pipeline_stages/:id", app.Handler.DeleteStage)

		// screening questions
		protected.POST("/screening_questions", app.Handler.CreateScreeningQuestion)
		protected.GET("/screening_questions", app.Handler.ListScreeningQuestions)
		protected.GET("/screening_questions/:id", app.Handler.GetScreeningQuestion)
		protected.PATCH("/screening_questions/:id", app.Handler.UpdateScreeningQuestion)
		protected.POST("/screening_questions/:id/set_order", app.Handler.SetScreeningQuestionOrder)
		protected.DELETE("/screening_questions/:id", app.Handler.DeleteScreeningQuestion)

		// screening interview lifecycle
		protected.POST("/interview/start/:candidate_id/:job_id", app.Handler.StartInterview)
		protected.POST("/interview/submit_answer/:interview_id/:question_id", app.Handler.SubmitAnswer)
		protected.POST("/interview/finalize/:interview_id", app.Handler.FinalizeInterview)
		protected.GET("/interview/:id", app.Handler.GetInterview)

		// assessments
		protected.POST("/assessments", app.Handler.CreateAssessment)
		protected.GET("/assessments", app.Handler.ListAssessments)
		protected.GET("/assessments/:id", app.Handler.GetAssessment)
		protected.PATCH("/assessments/:id", app.Handler.UpdateAssessment)
		protected.DELETE("/assessments/:id", app.Handler.DeleteAssessment)
		protected.POST("/assessments/:id/questions", app.Handler.AddAssessmentQuestion)
		protected.PATCH("/assessment_questions/:id", app.Handler.UpdateAssessmentQuestion)
		protected.POST("/assessment_questions/:id/set_order", app.Handler.SetAssessmentQuestionOrder)
		protected.DELETE("/assessment_questions/:id", app.Handler.DeleteAssessmentQuestion)

		// assessment attempts
		protected.POST("/candidates/:id/assessments/:aid/start", app.Handler.StartAssessment)
		protected.GET("/assessment_results/:id", app.Handler.GetAssessmentResult)
		protected.POST("/assessment_results/:id/responses", app.Handler.SubmitAssessmentResponse)
		protected.POST("/assessment_results/:id/complete", app.Handler.CompleteAssessment)
		protected.POST("/assessment_results/:id/grade", app.Handler.ManualGradeResponse)

		// interview scheduling
		protected.POST("/schedules", app.Handler.CreateSchedule)
		protected.GET("/schedules", app.Handler.ListSchedules)
		protected.GET("/schedules/:id", app.Handler.GetSchedule)
		protected.PATCH("/schedules/:id", app.Handler.UpdateSchedule)
		protected.DELETE("/schedules/:id", app.Handler.DeleteSchedule)
		protected.GET("/schedules/:id/ical", app.Handler.DownloadScheduleICal)

		// video interviews
		protected.POST("/video_interviews", app.Handler.UploadVideoInterview)
		protected.GET("/video_interviews/:id", app.Handler.GetVideoInterview)

		// outreach
		protected.POST("/email_templates", app.Handler.CreateEmailTemplate)
		protected.GET("/email_templates", app.Handler.ListEmailTemplates)
		protected.GET("/email_templates/:id", app.Handler.GetEmailTemplate)
		protected.PATCH("/email_templates/:id", app.Handler.UpdateEmailTemplate)
		protected.DELETE("/email_templates/:id", app.Handler.DeleteEmailTemplate)
		protected.POST("/outreach_campaigns", app.Handler.CreateCampaign)
		protected.GET("/outreach_campaigns", app.Handler.ListCampaigns)
		protected.GET("/outreach_campaigns/:id", app.Handler.GetCampaign)
		protected.POST("/outreach_campaigns/:id/send", app.Handler.SendCampaign)
		protected.POST("/send_email", app.Handler.SendEmail)

		// analytics
		protected.GET("/analytics/hiring_funnel", app.Handler.HiringFunnel)
		protected.GET("/analytics/time_to_hire", app.Handler.TimeToHire)
		protected.GET("/analytics/source_effectiveness", app.Handler.SourceEffectiveness)
		protected.GET("/analytics/diversity_tracking", app.Handler.DiversityTracking)
		protected.GET("/bias/screening_disparity", app.Handler.ScreeningDisparity)
		protected.GET("/bias/assessment_score_disparity", app.Handler.AssessmentScoreDisparity)
	}

	return r
}
