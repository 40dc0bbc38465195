// internal/handlers/review_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"perapera/internal/middleware"
	"perapera/internal/model"
	"perapera/internal/service"
	"perapera/internal/webutil"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

// GetNextCard は復習対象のカードを1枚返します (GET /next_card)
func (h *ReviewHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetNextCard"))

	card, err := h.service.NextCard(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// PutNextCardReview は評価を受け取り次回の復習日を更新します (PUT /next_card_review?rating=3)
func (h *ReviewHandler) PutNextCardReview(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PutNextCardReview"))
	query := r.URL.Query()

	rating, err := strconv.Atoi(query.Get("rating"))
	if err != nil {
		logger.Warn("Invalid rating query parameter", slog.String("rating", query.Get("rating")))
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "ratingは整数で指定してください。", "rating", model.ErrUnprocessable)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var cardID *uint
	if raw := query.Get("card_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			logger.Warn("Invalid card_id query parameter", slog.String("card_id", raw))
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "card_idの形式が正しくありません。", "card_id", model.ErrUnprocessable)
			webutil.HandleError(w, logger, appErr)
			return
		}
		v := uint(id)
		cardID = &v
	}

	result, err := h.service.SubmitReview(r.Context(), model.Rating(rating), cardID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review submitted", slog.Uint64("card_id", uint64(result.CardID)), slog.Int("rating", rating))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ReviewHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStats"))

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
