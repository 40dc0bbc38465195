// Package web は htmx で動くブラウザ向けUIを提供します。
package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"perapera/internal/middleware"
	"perapera/internal/model"
	"perapera/internal/service"
	"perapera/internal/webutil"

	"github.com/go-chi/chi/v5"
)

const (
	tabLearn   = "learn"
	tabBacklog = "backlog"
	tabAdd     = "add"
)

type Handler struct {
	cards   service.CardService
	reviews service.ReviewService
}

func NewHandler(cards service.CardService, reviews service.ReviewService) *Handler {
	return &Handler{cards: cards, reviews: reviews}
}

// Routes はUIのルートを登録します。protect は書き込み系ルートに適用されます。
func (h *Handler) Routes(r chi.Router, protect func(http.Handler) http.Handler) {
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}
	r.Get("/", h.Index)
	r.Route("/ui", func(r chi.Router) {
		r.Get("/learn", h.Learn)
		r.Get("/learn/{id}/answer", h.Answer)
		r.Post("/learn/{id}/review", h.Review)
		r.Get("/backlog", h.Backlog)
		r.Get("/add", h.AddForm)
		r.With(protect).Post("/add", h.Add)
	})
}

type learnData struct {
	Card         *model.Card
	Message      string
	LimitReached bool
}

type ratingButton struct {
	Value int
	Label string
	Class string
}

type answerData struct {
	Card       *model.Card
	Buttons    []ratingButton
	Standalone bool
}

type backlogData struct {
	Cards []*model.Card
}

type addData struct {
	Form    model.NewCardRequest
	Success string
	Error   string
	Field   string
}

var buttonClasses = map[model.Rating]string{
	model.RatingUnknown: "btn-danger",
	model.RatingHard:    "btn-warning",
	model.RatingOkay:    "btn-success",
	model.RatingEasy:    "btn-primary",
}

func ratingButtons() []ratingButton {
	buttons := make([]ratingButton, 0, len(model.Ratings))
	for _, rt := range model.Ratings {
		buttons = append(buttons, ratingButton{Value: int(rt), Label: rt.Label(), Class: buttonClasses[rt]})
	}
	return buttons
}

// Index は初期表示として Backlog タブを開いたページを返します。
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.Backlog(w, r)
}

func (h *Handler) Learn(w http.ResponseWriter, r *http.Request) {
	h.renderLearn(w, r, "")
}

func (h *Handler) renderLearn(w http.ResponseWriter, r *http.Request, message string) {
	data := learnData{Message: message}
	card, err := h.reviews.NextCard(r.Context())
	switch {
	case err == nil:
		data.Card = card
	case errors.Is(err, model.ErrNotFound):
	case errors.Is(err, model.ErrTooManyRequests):
		data.LimitReached = true
	default:
		h.renderError(w, r, tabLearn, err)
		return
	}
	h.render(w, r, page{tab: tabLearn, title: "Learn 習う", fragment: learnView(data)})
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	id, err := webutil.ParseUintParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.renderError(w, r, tabLearn, err)
		return
	}
	card, err := h.cards.GetCard(r.Context(), id)
	if err != nil {
		h.renderError(w, r, tabLearn, err)
		return
	}
	h.render(w, r, page{
		tab:      tabLearn,
		title:    "Learn 習う",
		fragment: answerView(answerData{Card: card, Buttons: ratingButtons(), Standalone: !IsHTMXRequest(r)}),
	})
}

// Review は評価を送信し、続けて次のカードを表示します。
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := webutil.ParseUintParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.renderError(w, r, tabLearn, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, tabLearn, model.NewAppError("INVALID_FORM", "フォームの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	rating, err := strconv.Atoi(r.PostForm.Get("rating"))
	if err != nil {
		h.renderError(w, r, tabLearn, model.NewAppError("INVALID_RATING", "Rating must be between 1 and 4", "rating", model.ErrUnprocessable))
		return
	}

	result, err := h.reviews.SubmitReview(r.Context(), model.Rating(rating), &id)
	if err != nil {
		h.renderError(w, r, tabLearn, err)
		return
	}
	h.logger(r).Info("Review submitted from UI", "card_id", result.CardID, "rating", rating)
	h.renderLearn(w, r, result.Message)
}

func (h *Handler) Backlog(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.ListSeenCards(r.Context())
	if err != nil {
		h.renderError(w, r, tabBacklog, err)
		return
	}
	h.render(w, r, page{tab: tabBacklog, title: "Backlog 見た漢字", fragment: backlogView(backlogData{Cards: cards})})
}

func (h *Handler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, page{tab: tabAdd, title: "Add 新しい漢字", fragment: addView(addData{})})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, tabAdd, model.NewAppError("INVALID_FORM", "フォームの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	form := model.NewCardRequest{
		Kanji:       r.PostForm.Get("kanji"),
		Meanings:    r.PostForm.Get("meanings"),
		ReadingsKun: r.PostForm.Get("readings_kun"),
		ReadingsOn:  r.PostForm.Get("readings_on"),
	}

	card, err := h.cards.CreateCard(r.Context(), &form)
	if err != nil {
		data := addData{Form: form, Error: errorMessage(err)}
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			data.Field = appErr.Field
		}
		status := webutil.MapErrorToStatusCode(err)
		if status >= http.StatusInternalServerError {
			h.logger(r).Error("Failed to add card from UI", "error", err)
		}
		h.render(w, r, page{tab: tabAdd, title: "Add 新しい漢字", fragment: addView(data), status: status})
		return
	}

	msg := fmt.Sprintf("Card %d with kanji %s was added", card.ID, card.Kanji)
	h.render(w, r, page{tab: tabAdd, title: "Add 新しい漢字", fragment: addView(addData{Success: msg}), status: http.StatusCreated})
}

// AuthError は書き込み系UIルートの認証失敗を、JSON ではなくエラー断片として返します。
func (h *Handler) AuthError(w http.ResponseWriter, r *http.Request, err error) {
	h.renderError(w, r, tabAdd, err)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, tab string, err error) {
	status := webutil.MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger(r).Error("UI request failed", "error", err)
	} else {
		h.logger(r).Info("UI request rejected", "error", err, "status", status)
	}
	h.render(w, r, page{tab: tab, title: "PeraPera", fragment: errorView(errorData{Message: errorMessage(err)}), status: status})
}

func errorMessage(err error) string {
	var appErr *model.AppError
	if errors.As(err, &appErr) && webutil.MapErrorToStatusCode(err) < http.StatusInternalServerError {
		return appErr.Message
	}
	return "サーバー内部でエラーが発生しました。"
}

func (h *Handler) logger(r *http.Request) *slog.Logger {
	return middleware.GetLogger(r.Context()).With("component", "web")
}
