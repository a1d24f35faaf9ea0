package candidate

import (
	"net/http"
	"strconv"

	"github.com/dungnh/jobhub/internal/dto"
	"github.com/dungnh/jobhub/internal/middleware"
	"github.com/dungnh/jobhub/internal/service"
	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// StartAttempt godoc
// @Summary (Candidate) Start or resume an assessment attempt
// @Description Creates the attempt or reactivates an in-progress one; reactivation resets the clock. Completed and expired attempts cannot be restarted.
// @Tags Candidate - Attempts
// @Accept json
// @Produce json
// @Param request body dto.StartAttemptRequest true "Assessment, job and application linkage"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Application or assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed or expired"
// @Router /candidate/attempts/start [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)

	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.Start(actor.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// SubmitAnswer godoc
// @Summary (Candidate) Submit one answer
// @Description Upserts the answer for a question index; re-answering overwrites. File-upload questions must use the upload endpoint.
// @Tags Candidate - Attempts
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed or expired"
// @Router /candidate/attempts/answer [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.SubmitAnswer(actor.ID, req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKMessage("Answer saved"))
}

// UploadAnswer godoc
// @Summary (Candidate) Upload a file answer
// @Description Multipart upload for a file_upload question. Accepted types: PDF, DOC, DOCX, JPEG, PNG. Max size 10 MB.
// @Tags Candidate - Attempts
// @Accept multipart/form-data
// @Produce json
// @Param attempt_id formData int true "Attempt ID"
// @Param question_index formData int true "Question index"
// @Param time_spent formData int false "Seconds spent on the question"
// @Param file formData file true "Answer file"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Validation or upload policy failure"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed or expired"
// @Router /candidate/attempts/upload [post]
func (c *AttemptController) UploadAnswer(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)

	attemptID, err := strconv.ParseUint(ctx.PostForm("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid attempt_id format"})
		return
	}
	questionIndex, err := strconv.Atoi(ctx.PostForm("question_index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid question_index format"})
		return
	}
	timeSpent, _ := strconv.Atoi(ctx.PostForm("time_spent"))

	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "A file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Could not read uploaded file"})
		return
	}
	defer file.Close()

	resp, err := c.attemptService.UploadAnswer(ctx.Request.Context(), actor.ID, service.UploadAnswerInput{
		AttemptID:     uint(attemptID),
		QuestionIndex: questionIndex,
		TimeSpent:     timeSpent,
		OriginalName:  header.Filename,
		MimeType:      header.Header.Get("Content-Type"),
		Size:          header.Size,
		File:          file,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// RecordViolation godoc
// @Summary (Candidate) Record a proctoring violation
// @Description Appends one event to the attempt's violation log. Never changes attempt status.
// @Tags Candidate - Attempts
// @Accept json
// @Produce json
// @Param request body dto.RecordViolationRequest true "Violation event"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed or expired"
// @Router /candidate/attempts/violation [post]
func (c *AttemptController) RecordViolation(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)

	var req dto.RecordViolationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.RecordViolation(actor.ID, req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKMessage("Violation recorded"))
}

// SubmitAssessment godoc
// @Summary (Candidate) Submit the whole assessment
// @Description Grades all stored answers, decides completed vs expired from elapsed time, and pushes the outcome onto the application.
// @Tags Candidate - Attempts
// @Accept json
// @Produce json
// @Param request body dto.SubmitAssessmentRequest true "Attempt id plus any final violations"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /candidate/attempts/submit [post]
func (c *AttemptController) SubmitAssessment(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)

	var req dto.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.Submit(actor.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// ResultByAttempt godoc
// @Summary (Candidate) Get the result of a completed attempt
// @Tags Candidate - Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "No completed attempt"
// @Router /candidate/attempts/{attempt_id}/result [get]
func (c *AttemptController) ResultByAttempt(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.attemptService.ResultByAttempt(actor.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// ResultByApplication godoc
// @Summary (Candidate) Get an attempt result by application id
// @Tags Candidate - Attempts
// @Produce json
// @Param application_id path int true "Application ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "No completed attempt"
// @Router /candidate/applications/{application_id}/result [get]
func (c *AttemptController) ResultByApplication(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	id, ok := pathID(ctx, "application_id")
	if !ok {
		return
	}
	resp, err := c.attemptService.ResultByApplication(actor.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}
