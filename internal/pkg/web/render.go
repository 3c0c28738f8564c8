package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
)

// RenderHTML executes tmpl into a buffer first so a template error never leaves a half-written page.
func RenderHTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		RespondInternalServerError(w, fmt.Errorf("execute template %q: %w", tmpl.Name(), err))
		return
	}

	w.Header().Set(HeaderContentType, MimeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
