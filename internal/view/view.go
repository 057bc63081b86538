// Package view отрисовывает HTML-страницы из встроенных шаблонов.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

const (
	PageIndex    = "index.html"
	PageLogin    = "login.html"
	PageRegister = "register.html"
	PageMyPage   = "mypage.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

// DefaultAvatar - аватар по умолчанию, кладется в каталог загрузок при старте
//
//go:embed assets/default_profile.svg
var DefaultAvatar []byte

type Renderer struct {
	pages map[string]*template.Template
}

// New разбирает все страницы. Каждая страница собирается вместе с layout.html
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageIndex, PageLogin, PageRegister, PageMyPage} {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render пишет страницу целиком или ничего: шаблон сначала исполняется в буфер
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
