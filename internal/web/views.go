package web

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// htmlWriter は最初の書き込みエラーを保持し、以降の書き込みをスキップします。
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

// text は HTML エスケープして書き込みます。属性値にも使えます。
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

func view(fn func(ctx context.Context, hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		fn(ctx, hw)
		return hw.err
	})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

func cardURL(id uint, action string) string {
	return string(templ.URL(fmt.Sprintf("/ui/learn/%d/%s", id, action)))
}

const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// afterSwapScript は htmx でタブを切り替えたときに active クラスを付け替えます。
const afterSwapScript = `
  <script>
    document.body.addEventListener("htmx:afterSwap", function (evt) {
      var path = evt.detail.pathInfo && evt.detail.pathInfo.requestPath;
      if (!path) { return; }
      document.querySelectorAll(".nav-link").forEach(function (a) {
        a.classList.toggle("active", path.indexOf(a.getAttribute("href")) === 0);
      });
    });
  </script>
`

type navTab struct {
	key   string
	href  string
	label string
}

var navTabs = []navTab{
	{tabLearn, "/ui/learn", "Learn 習う"},
	{tabBacklog, "/ui/backlog", "Backlog 見た漢字"},
	{tabAdd, "/ui/add", "Add 新しい漢字"},
}

// layoutView はナビゲーション付きのページ全体です。content は #content に描画されます。
func layoutView(l layoutData, content templ.Component) templ.Component {
	return view(func(ctx context.Context, hw *htmlWriter) {
		hw.raw("<!DOCTYPE html>\n<html lang=\"ja\">\n<head>\n",
			"  <meta charset=\"utf-8\">\n",
			"  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n",
			"  <meta name=\"htmx-config\" content='", htmxConfig, "'>\n",
			"  <title>")
		hw.text(l.Title)
		hw.raw("</title>\n",
			"  <link rel=\"stylesheet\" href=\"https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css\">\n",
			"  <script src=\"https://unpkg.com/htmx.org@2.0.4\"></script>\n",
			"  <style>\n    .kanji { font-size: 136px; font-family: \"YuMincho\", \"Hiragino Mincho ProN\", serif; }\n  </style>\n",
			"</head>\n<body>\n",
			"  <nav class=\"navbar navbar-dark bg-primary\">\n    <div class=\"container-fluid\">\n",
			"      <a class=\"navbar-brand\" href=\"/\" style=\"margin-left: 20px\">PeraPera ペラペラ</a>\n")
		if s := l.Stats; s != nil {
			hw.raw("      <span class=\"navbar-text text-light\" id=\"stats\">",
				strconv.FormatInt(s.DueCards, 10), " due / ",
				strconv.FormatInt(s.SeenCards, 10), " seen / ",
				strconv.FormatInt(s.TotalCards, 10), " total</span>\n")
		}
		hw.raw("    </div>\n  </nav>\n",
			"  <ul class=\"nav nav-tabs\" hx-target=\"#content\" hx-push-url=\"true\">\n")
		for _, tab := range navTabs {
			hw.raw("    <li class=\"nav-item\"><a class=\"")
			hw.text(templ.Classes("nav-link", templ.KV("active", tab.key == l.Tab)).String())
			hw.raw("\" href=\"", tab.href, "\" hx-get=\"", tab.href, "\">", tab.label, "</a></li>\n")
		}
		hw.raw("  </ul>\n  <main id=\"content\">")
		hw.component(ctx, content)
		hw.raw("</main>", afterSwapScript, "</body>\n</html>\n")
	})
}

func learnView(d learnData) templ.Component {
	return view(func(ctx context.Context, hw *htmlWriter) {
		hw.raw("<div id=\"learn\">\n")
		if d.Message != "" {
			hw.raw("  <div class=\"alert alert-info m-3\" role=\"status\">")
			hw.text(d.Message)
			hw.raw("</div>\n")
		}
		switch {
		case d.LimitReached:
			hw.raw("  <div class=\"text-center p-5\">\n",
				"    <p class=\"lead\">今日の復習上限に達しました。</p>\n",
				"    <p class=\"text-muted\">Card review limit reached</p>\n  </div>\n")
		case d.Card == nil:
			hw.raw("  <div class=\"text-center p-5\">\n",
				"    <p class=\"lead\">今日復習するカードはありません。</p>\n",
				"    <p class=\"text-muted\">No card found for review today</p>\n  </div>\n")
		default:
			hw.raw("  <div class=\"text-center p-4\">\n    <h1 class=\"kanji\">")
			hw.text(d.Card.Kanji)
			hw.raw("</h1>\n  </div>\n",
				"  <div id=\"answer\" class=\"d-flex justify-content-center mt-3\">\n    <a class=\"btn btn-primary\" href=\"")
			hw.text(cardURL(d.Card.ID, "answer"))
			hw.raw("\" hx-get=\"")
			hw.text(cardURL(d.Card.ID, "answer"))
			hw.raw("\" hx-target=\"#answer\" hx-swap=\"outerHTML\">Show answer</a>\n  </div>\n")
		}
		hw.raw("</div>")
	})
}

func answerView(d answerData) templ.Component {
	return view(func(ctx context.Context, hw *htmlWriter) {
		hw.raw("<div id=\"answer\">\n")
		if d.Standalone {
			hw.raw("  <div class=\"text-center p-4\"><h1 class=\"kanji\">")
			hw.text(d.Card.Kanji)
			hw.raw("</h1></div>\n")
		}
		hw.raw("  <table class=\"table table-bordered mt-3\">\n",
			"    <thead>\n      <tr>\n",
			"        <th scope=\"col\">Meaning</th>\n",
			"        <th scope=\"col\">Kun Reading</th>\n",
			"        <th scope=\"col\">On Reading</th>\n",
			"      </tr>\n    </thead>\n    <tbody>\n      <tr>\n")
		for _, v := range []string{d.Card.Meanings, d.Card.ReadingsKun, d.Card.ReadingsOn} {
			hw.raw("        <td>")
			hw.text(v)
			hw.raw("</td>\n")
		}
		hw.raw("      </tr>\n    </tbody>\n  </table>\n",
			"  <form class=\"d-flex justify-content-center mt-3\" method=\"post\" action=\"")
		hw.text(cardURL(d.Card.ID, "review"))
		hw.raw("\" hx-post=\"")
		hw.text(cardURL(d.Card.ID, "review"))
		hw.raw("\" hx-target=\"#content\">\n")
		for _, b := range d.Buttons {
			hw.raw("    <button type=\"submit\" name=\"rating\" value=\"", strconv.Itoa(b.Value), "\" class=\"")
			hw.text(templ.Classes("btn", b.Class, "me-2").String())
			hw.raw("\">")
			hw.text(b.Label)
			hw.raw("</button>\n")
		}
		hw.raw("  </form>\n</div>")
	})
}

func backlogView(d backlogData) templ.Component {
	return view(func(ctx context.Context, hw *htmlWriter) {
		hw.raw("<div id=\"backlog\">\n",
			"  <table class=\"table table-striped table-bordered table-hover table-sm\">\n",
			"    <thead>\n      <tr>\n",
			"        <th>Kanji</th>\n        <th>Meanings</th>\n        <th>Kun</th>\n        <th>On</th>\n",
			"        <th>Previous review</th>\n        <th>Next review</th>\n",
			"      </tr>\n    </thead>\n    <tbody>\n")
		if len(d.Cards) == 0 {
			hw.raw("      <tr><td colspan=\"6\" class=\"text-center text-muted\">まだ復習したカードはありません。</td></tr>\n")
		}
		for _, c := range d.Cards {
			hw.raw("      <tr id=\"card-", strconv.FormatUint(uint64(c.ID), 10), "\">\n")
			for _, v := range []string{c.Kanji, c.Meanings, c.ReadingsKun, c.ReadingsOn, formatDate(c.PrevReview), formatDate(c.NextReview)} {
				hw.raw("        <td>")
				hw.text(v)
				hw.raw("</td>\n")
			}
			hw.raw("      </tr>\n")
		}
		hw.raw("    </tbody>\n  </table>\n</div>")
	})
}

type formField struct {
	name  string
	label string
	value string
}

func addView(d addData) templ.Component {
	fields := []formField{
		{"kanji", "Kanji", d.Form.Kanji},
		{"meanings", "Meanings", d.Form.Meanings},
		{"readings_kun", "Kun readings", d.Form.ReadingsKun},
		{"readings_on", "On readings", d.Form.ReadingsOn},
	}
	return view(func(ctx context.Context, hw *htmlWriter) {
		hw.raw("<div id=\"add\" class=\"container\">\n")
		if d.Success != "" {
			hw.raw("  <div class=\"alert alert-success mt-3\" role=\"status\">")
			hw.text(d.Success)
			hw.raw("</div>\n")
		}
		if d.Error != "" {
			hw.component(ctx, alertView(d.Error, "mt-3"))
			hw.raw("\n")
		}
		hw.raw("  <form method=\"post\" action=\"/ui/add\" hx-post=\"/ui/add\" hx-target=\"#content\">\n")
		for i, f := range fields {
			hw.raw("    <div class=\"")
			hw.text(templ.Classes("mb-3", templ.KV("mt-3", i == 0)).String())
			hw.raw("\">\n      <label for=\"", f.name, "\" class=\"form-label\">", f.label, "</label>\n",
				"      <input type=\"text\" class=\"")
			hw.text(templ.Classes("form-control", templ.KV("is-invalid", d.Field == f.name)).String())
			hw.raw("\" id=\"", f.name, "\" name=\"", f.name, "\" value=\"")
			hw.text(f.value)
			hw.raw("\">\n    </div>\n")
		}
		hw.raw("    <button type=\"submit\" class=\"btn btn-primary\">Add new card</button>\n  </form>\n</div>")
	})
}

func alertView(message, spacing string) templ.Component {
	return view(func(ctx context.Context, hw *htmlWriter) {
		hw.raw("<div class=\"")
		hw.text(templ.Classes("alert", "alert-danger", spacing).String())
		hw.raw("\" role=\"alert\">")
		hw.text(message)
		hw.raw("</div>")
	})
}

func errorView(d errorData) templ.Component {
	return alertView(d.Message, "m-3")
}
