package candidate

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
	candidateService service.CandidateAssessmentService
}

func NewAssessmentController(candidateService service.CandidateAssessmentService) *AssessmentController {
	return &AssessmentController{candidateService: candidateService}
}

// AvailableAssessments godoc
// @Summary (Candidate) List pending assessments
// @Description Assessments linked to the candidate's applications whose assessment slot is still open, joined to the parent job.
// @Tags Candidate - Assessments
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /candidate/assessments [get]
func (c *AssessmentController) AvailableAssessments(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	resp, err := c.candidateService.AvailableAssessments(actor.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// GetAssessment godoc
// @Summary (Candidate) Get one assessment to take
// @Description The candidate view never includes correct answers or explanations.
// @Tags Candidate - Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidate/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.candidateService.GetAssessment(id)
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
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Candidate request failed")
	}
	ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Success: false, Message: apperr.MessageOf(err)})
}
