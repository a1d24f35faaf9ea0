package employer

import (
	"net/http"
	"strconv"

	"github.com/dungnh/jobhub/internal/apperr"
	"github.com/dungnh/jobhub/internal/dto"
	"github.com/dungnh/jobhub/internal/middleware"
	"github.com/dungnh/jobhub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	assessmentService service.AssessmentService
	resultsService    service.ResultsService
}

func NewAssessmentController(
	assessmentService service.AssessmentService,
	resultsService service.ResultsService,
) *AssessmentController {
	return &AssessmentController{
		assessmentService: assessmentService,
		resultsService:    resultsService,
	}
}

// CreateAssessment godoc
// @Summary (Employer) Create a new assessment
// @Description Create a published assessment with its question list. Validation errors name the exact question and option at fault.
// @Tags Employer - Assessments
// @Accept json
// @Produce json
// @Param assessment body dto.AssessmentCreateRequest true "Assessment definition"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 500 {object} dto.ErrorResponse
// @Router /employer/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)

	var req dto.AssessmentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.assessmentService.Create(actor.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.OK(resp))
}

// ListAssessments godoc
// @Summary (Employer) List owned assessments
// @Description All assessments owned by the employer, ascending by serial number.
// @Tags Employer - Assessments
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /employer/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	resp, err := c.assessmentService.List(actor.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// GetAssessment godoc
// @Summary (Employer) Get one assessment
// @Tags Employer - Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Router /employer/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.assessmentService.Get(id, actor.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// UpdateAssessment godoc
// @Summary (Employer) Update an assessment
// @Description Same validation as create; only the owning employer may update.
// @Tags Employer - Assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Param assessment body dto.AssessmentCreateRequest true "Assessment definition"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Router /employer/assessments/{id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssessmentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.assessmentService.Update(id, actor.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// DeleteAssessment godoc
// @Summary (Employer) Delete an assessment
// @Tags Employer - Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Router /employer/assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.assessmentService.Delete(id, actor.ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKMessage("Assessment deleted"))
}

// AssessmentResults godoc
// @Summary (Employer) List completed attempts for an assessment
// @Tags Employer - Results
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Not found or not owned"
// @Router /employer/assessments/{id}/results [get]
func (c *AssessmentController) AssessmentResults(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.resultsService.ResultsForAssessment(actor.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// AttemptDetail godoc
// @Summary (Employer) Get one attempt with answers and violations
// @Tags Employer - Results
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another employer's assessment"
// @Failure 404 {object} dto.ErrorResponse
// @Router /employer/attempts/{attempt_id} [get]
func (c *AssessmentController) AttemptDetail(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.resultsService.AttemptDetail(actor.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

func respondError(ctx *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindUnexpected {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Employer request failed")
	}
	ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Success: false, Message: apperr.MessageOf(err)})
}
