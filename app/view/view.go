// Package view renders the reader's HTML shell. The locked variant
// carries only the purchase affordance; the unlocked variant embeds the
// page navigation script. Nothing here is security-bearing: the
// copy-prevention script and select-suppression are advisory only.
package view

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/vibast-solutions/ms-go-reader/app/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	shell *template.Template
}

func NewRenderer() (*Renderer, error) {
	shell, err := template.ParseFS(templateFS, "templates/shell.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{shell: shell}, nil
}

type shellData struct {
	Title     string
	PageCount template.JS
	Unlocked  bool
}

func (r *Renderer) RenderShell(w io.Writer, book entity.Book, unlocked bool) error {
	return r.shell.Execute(w, shellData{
		Title: book.Title,
		// Emitted as a JS fragment; the js escaper pads plain numeric
		// values with spaces.
		PageCount: template.JS(strconv.Itoa(book.PageCount)),
		Unlocked:  unlocked,
	})
}
