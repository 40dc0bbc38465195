package web

import (
	"net/http"
	"strings"

	"perapera/internal/model"

	"github.com/a-h/templ"
)

// HXRequestHeader は htmx が付与するリクエストヘッダーです。
const HXRequestHeader = "HX-Request"

// IsHTMXRequest は htmx からの部分更新リクエストかどうかを判定します。
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(HXRequestHeader), "true")
}

type layoutData struct {
	Title string
	Tab   string
	Stats *model.Stats
}

type errorData struct {
	Message string
}

// page は1画面分の描画内容です。fragment が #content に差し込まれます。
type page struct {
	tab      string
	title    string
	fragment templ.Component
	status   int
}

// render は htmx リクエストには断片を、通常のリクエストにはレイアウト込みのページを返します。
func (h *Handler) render(w http.ResponseWriter, r *http.Request, p page) {
	if p.status == 0 {
		p.status = http.StatusOK
	}

	if IsHTMXRequest(r) {
		templ.Handler(p.fragment, templ.WithStatus(p.status)).ServeHTTP(w, r)
		return
	}

	data := layoutData{Title: p.title, Tab: p.tab}
	if stats, err := h.reviews.Stats(r.Context()); err == nil {
		data.Stats = stats
	}
	templ.Handler(layoutView(data, p.fragment), templ.WithStatus(p.status)).ServeHTTP(w, r)
}
