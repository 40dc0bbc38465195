// internal/handlers/card_handler.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"perapera/internal/middleware"
	"perapera/internal/model"
	"perapera/internal/service"
	"perapera/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type CardHandler struct {
	service service.CardService
}

func NewCardHandler(s service.CardService) *CardHandler {
	return &CardHandler{service: s}
}

// PostCard は新しいカードを作成します (POST /new_card)
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostCard"))

	var req model.NewCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", err)
		webutil.HandleError(w, logger, appErr)
		return
	}

	card, err := h.service.CreateCard(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrUnprocessable) || errors.Is(err, model.ErrConflict) {
			logger.Info("Card rejected", slog.Any("error", err))
		} else {
			logger.Error("Error creating card in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.Uint64("card_id", uint64(card.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GetSeenCards は一度でも復習したカードを返します (GET /seen_cards)
func (h *CardHandler) GetSeenCards(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetSeenCards"))

	cards, err := h.service.ListSeenCards(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.Card{}
	}
	logger.Debug("Seen cards listed", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

func (h *CardHandler) GetAllCards(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetAllCards"))

	cards, err := h.service.ListCards(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.Card{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetCard"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		logger.Warn("Invalid card ID in URL", slog.String("id", chi.URLParam(r, "id")))
		webutil.HandleError(w, logger, err)
		return
	}

	card, err := h.service.GetCard(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// GetCardReviews はカードの復習履歴を新しい順に返します
func (h *CardHandler) GetCardReviews(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetCardReviews"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logs, err := h.service.ListReviews(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if logs == nil {
		logs = []*model.ReviewLog{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, logs, logger)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteCard"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	card, err := h.service.DeleteCard(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			err = model.NewAppError("NOT_FOUND", fmt.Sprintf("Card with ID %d not found", id), "id", err)
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted successfully", slog.Uint64("card_id", uint64(id)))
	webutil.RespondWithJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("Card %d with kanji %s was deleted", card.ID, card.Kanji),
	}, logger)
}
