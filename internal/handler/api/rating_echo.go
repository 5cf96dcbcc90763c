package api

import (
	"errors"

	models "FxRater/internal/domain/models"
	"FxRater/internal/services/scoring"
	"FxRater/internal/usecase"
	xhttp "FxRater/pkg/http"
	xlogger "FxRater/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RatingEchoHandler exposes the setup-scoring and fundamentals endpoints.
type RatingEchoHandler struct {
	logger *xlogger.Logger
	score  *usecase.SetupScoreUseCase
	bias   *usecase.FundamentalBiasUseCase
}

func NewRatingEchoHandler(
	logger *xlogger.Logger,
	score *usecase.SetupScoreUseCase,
	bias *usecase.FundamentalBiasUseCase,
) *RatingEchoHandler {
	return &RatingEchoHandler{logger: logger, score: score, bias: bias}
}

func (h *RatingEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.POST("/score", h.Score)
	g.POST("/fundamentals/bias", h.Bias)
}

func (h *RatingEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *RatingEchoHandler) Score(c echo.Context) error {
	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.score.Score(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("score usecase error", xlogger.Error(err))
		if errors.Is(err, scoring.ErrRater) {
			return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("setup rater unavailable").WithError(err))
		}
		if errors.Is(err, scoring.ErrInvalidInputs) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *RatingEchoHandler) Bias(c echo.Context) error {
	req := &models.BiasRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.bias.Bias(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("bias usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
