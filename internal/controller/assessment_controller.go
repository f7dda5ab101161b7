package controller

import (
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/service"
	"assess_prep_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// sessionError maps service errors onto the HTTP surface. Unknown and
// foreign sessions both come back as 404.
func sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidParams),
		errors.Is(err, util.ErrInvalidReason),
		errors.Is(err, util.ErrInvalidLanguage):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidSession),
		errors.Is(err, util.ErrResultNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionFinalized),
		errors.Is(err, util.ErrSessionNotActive):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrGenerationFailed):
		util.BadGateway(ctx, "Question generation failed")
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateSession godoc
// @Summary Create a quiz session
// @Description Generates the question set and returns the id of the now-active session.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Param   body body service.CreateSessionParams true "session parameters"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/assessment [post]
func (c *AssessmentController) CreateSession(ctx *gin.Context) {
	var params service.CreateSessionParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	sessionID, err := c.Service.CreateSession(ctx.Request.Context(), user.UserID, &params)
	if err != nil {
		sessionError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"sessionId": sessionID})
}

// GetSession godoc
// @Summary Fetch session metadata
// @Tags assessment
// @Produce  json
// @Param   sessionId path string true "session id"
// @Success 200 {object} util.Response{data=model.AssessmentSession}
// @Failure 404 {object} util.Response
// @Router /api/assessment/{sessionId} [get]
func (c *AssessmentController) GetSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	session, err := c.Service.GetSession(user.UserID, ctx.Param("sessionId"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// GetQuestions godoc
// @Summary Fetch the question set without answer keys
// @Tags assessment
// @Produce  json
// @Param   sessionId path string true "session id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Router /api/assessment/{sessionId}/questions [get]
func (c *AssessmentController) GetQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	questions, err := c.Service.GetQuestions(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

type SubmitAssessmentRequest struct {
	Answers []service.Answer   `json:"answers"`
	Reason  model.SubmitReason `json:"reason"`
}

// Submit godoc
// @Summary Submit answers and finalize the session
// @Description The first submit wins; repeats return 409 and leave the stored result untouched.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Param   sessionId path string true "session id"
// @Param   body body SubmitAssessmentRequest true "answers and submit reason"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/assessment/{sessionId}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var req SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Reason == "" {
		req.Reason = model.ReasonUserSubmit
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.Service.Submit(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"), req.Answers, req.Reason)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"resultId": result.ID, "result": result})
}

// GetResult godoc
// @Summary Fetch the finalized result
// @Tags assessment
// @Produce  json
// @Param   sessionId path string true "session id"
// @Success 200 {object} util.Response{data=model.SessionResult}
// @Failure 404 {object} util.Response
// @Router /api/assessment/{sessionId}/result [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	result, err := c.Service.GetResult(user.UserID, ctx.Param("sessionId"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListSessions godoc
// @Summary Admin listing of all sessions
// @Tags admin
// @Produce  json
// @Param   userId query int false "filter by user id"
// @Param   page query int false "page, 1-based"
// @Param   pageSize query int false "page size"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response
// @Router /api/admin/sessions [get]
func (c *AssessmentController) ListSessions(ctx *gin.Context) {
	var query struct {
		UserID   uint `form:"userId"`
		Page     int  `form:"page,default=1"`
		PageSize int  `form:"pageSize,default=20"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sessions, total, err := c.Service.ListSessions(query.UserID, query.Page, query.PageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"sessions": sessions,
		"total":    total,
		"page":     query.Page,
	})
}
