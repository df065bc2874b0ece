package http

import (
	"database/sql"
	"errors"
	"net/http"

	"creatorpulse/domain/dto"
	"creatorpulse/infrastructure/logger"
	"creatorpulse/usecase"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeUsecase usecase.IChallengeUsecase
}

func NewChallengeHandler(challengeUsecase usecase.IChallengeUsecase) *ChallengeHandler {
	return &ChallengeHandler{challengeUsecase: challengeUsecase}
}

func (h *ChallengeHandler) Create(ctx *gin.Context) {
	var req dto.ChallengeCreateRequest
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Info("invalid challenge payload")
		res.ResponseCode = "400"
		res.ResponseMessage = "Bad Request"
		ctx.JSON(http.StatusBadRequest, res)
		return
	}

	ch, err := h.challengeUsecase.Create(ctx.Request.Context(), ctx.GetString("user_id"), &req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("create challenge")
		res.ResponseCode = "500"
		res.ResponseMessage = "General Error"
		ctx.JSON(http.StatusInternalServerError, res)
		return
	}
	res.Data = ch
	ctx.JSON(http.StatusCreated, res)
}

func (h *ChallengeHandler) Get(ctx *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	ch, err := h.challengeUsecase.Get(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, &res, err)
		return
	}
	res.Data = ch
	ctx.JSON(http.StatusOK, res)
}

func (h *ChallengeHandler) List(ctx *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	challenges, err := h.challengeUsecase.ListMine(ctx.Request.Context(), ctx.GetString("user_id"))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("list challenges")
		res.ResponseCode = "500"
		res.ResponseMessage = "General Error"
		ctx.JSON(http.StatusInternalServerError, res)
		return
	}
	res.Data = challenges
	ctx.JSON(http.StatusOK, res)
}

func (h *ChallengeHandler) Pause(ctx *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	if err := h.challengeUsecase.Pause(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("id")); err != nil {
		h.writeError(ctx, &res, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *ChallengeHandler) Resume(ctx *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	if err := h.challengeUsecase.Resume(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("id")); err != nil {
		h.writeError(ctx, &res, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *ChallengeHandler) UpdateSlot(ctx *gin.Context) {
	var req dto.ChallengeSlotUpdateRequest
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		res.ResponseCode = "400"
		res.ResponseMessage = "Bad Request"
		ctx.JSON(http.StatusBadRequest, res)
		return
	}
	ch, err := h.challengeUsecase.UpdateSlot(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("id"), &req)
	if err != nil {
		h.writeError(ctx, &res, err)
		return
	}
	res.Data = ch
	ctx.JSON(http.StatusOK, res)
}

func (h *ChallengeHandler) ListUploads(ctx *gin.Context) {
	res := dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
	uploads, err := h.challengeUsecase.ListUploads(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, &res, err)
		return
	}
	res.Data = uploads
	ctx.JSON(http.StatusOK, res)
}

func (h *ChallengeHandler) writeError(ctx *gin.Context, res *dto.Res, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotOwner):
		res.ResponseCode = "403"
		res.ResponseMessage = "Forbidden"
		ctx.JSON(http.StatusForbidden, res)
	case errors.Is(err, usecase.ErrSlotIndex):
		res.ResponseCode = "400"
		res.ResponseMessage = "Bad Request"
		ctx.JSON(http.StatusBadRequest, res)
	case errors.Is(err, sql.ErrNoRows):
		res.ResponseCode = "404"
		res.ResponseMessage = "Not Found"
		ctx.JSON(http.StatusNotFound, res)
	default:
		logger.GetLogger().WithField("error", err).Error("challenge request failed")
		res.ResponseCode = "500"
		res.ResponseMessage = "General Error"
		ctx.JSON(http.StatusInternalServerError, res)
	}
}
