package controller

import (
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/service"
	"assess_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CodingController struct {
	Service *service.CodingService
}

func NewCodingController(svc *service.CodingService) *CodingController {
	return &CodingController{Service: svc}
}

// CreateSession godoc
// @Summary Create a coding session
// @Tags coding
// @Accept  json
// @Produce  json
// @Param   body body service.CreateSessionParams true "session parameters"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/coding [post]
func (c *CodingController) CreateSession(ctx *gin.Context) {
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
// @Tags coding
// @Produce  json
// @Param   sessionId path string true "session id"
// @Success 200 {object} util.Response{data=model.AssessmentSession}
// @Failure 404 {object} util.Response
// @Router /api/coding/{sessionId} [get]
func (c *CodingController) GetSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	session, err := c.Service.GetSession(user.UserID, ctx.Param("sessionId"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// GetProblems godoc
// @Summary Fetch the problem set without hidden test cases
// @Tags coding
// @Produce  json
// @Param   sessionId path string true "session id"
// @Success 200 {object} util.Response{data=[]model.CodingProblem}
// @Failure 404 {object} util.Response
// @Router /api/coding/{sessionId}/questions [get]
func (c *CodingController) GetProblems(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	problems, err := c.Service.GetProblems(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, problems)
}

type SubmitCodingRequest struct {
	Answers  []service.CodeAnswer `json:"answers"`
	Language string               `json:"language" binding:"required"`
	Reason   model.SubmitReason   `json:"reason"`
}

// Submit godoc
// @Summary Submit solutions and finalize the session
// @Tags coding
// @Accept  json
// @Produce  json
// @Param   sessionId path string true "session id"
// @Param   body body SubmitCodingRequest true "solutions, language and submit reason"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/coding/{sessionId}/submit [post]
func (c *CodingController) Submit(ctx *gin.Context) {
	var req SubmitCodingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Reason == "" {
		req.Reason = model.ReasonUserSubmit
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.Service.Submit(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"), req.Answers, req.Language, req.Reason)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"resultId": result.ID, "result": result})
}

// GetResult godoc
// @Summary Fetch the finalized result
// @Tags coding
// @Produce  json
// @Param   sessionId path string true "session id"
// @Success 200 {object} util.Response{data=model.SessionResult}
// @Failure 404 {object} util.Response
// @Router /api/coding/{sessionId}/result [get]
func (c *CodingController) GetResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	result, err := c.Service.GetResult(user.UserID, ctx.Param("sessionId"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
