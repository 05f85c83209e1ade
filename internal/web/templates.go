package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/jaminalder/codex-reversi/internal/app"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Reversi</h1><form action="/game" method="post"><button>Create</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div hx-sse="swap:board">{{template "board" .}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="status">White {{.WhiteScore}} / Black {{.BlackScore}} - {{.Status}} (you: {{.Seat}})</div>
  <table class="grid">
  {{range .Rows}}
    <tr>
    {{range .}}
      <td class="{{.Class}}">
      {{if .Playable}}
        <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
          <input type="hidden" name="x" value="{{.X}}">
          <input type="hidden" name="y" value="{{.Y}}">
          <button type="submit">{{if .Hint}}<span class="hint">{{.Hint}}</span>{{end}}</button>
        </form>
      {{end}}
      </td>
    {{end}}
    </tr>
  {{end}}
  </table>
  <form hx-post="/game/{{.ID}}/auto" hx-target="#board" hx-swap="outerHTML" method="post"><button>Computer Move</button></form>
  <form hx-post="/game/{{.ID}}/hints" hx-target="#board" hx-swap="outerHTML" method="post"><button>{{if .ShowHints}}Hide{{else}}Show{{end}} Hints</button></form>
  <form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post"><button>Restart</button></form>
</div>
`

const (
	playerCookie = "player_id"
	hintsCookie  = "hints"
)

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil && c.Value != "" {
		return c.Value
	}
	v := app.NewPlayerID()
	http.SetCookie(w, &http.Cookie{Name: playerCookie, Value: v, Path: "/"})
	return v
}

func playerFromCookie(r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil {
		return c.Value
	}
	return ""
}

// The hint overlay is a per-browser display preference; the engine never
// sees it.
func hintsEnabled(r *http.Request) bool {
	c, err := r.Cookie(hintsCookie)
	return err == nil && c.Value == "on"
}

func setHints(w http.ResponseWriter, on bool) {
	v := "off"
	if on {
		v = "on"
	}
	http.SetCookie(w, &http.Cookie{Name: hintsCookie, Value: v, Path: "/"})
}
