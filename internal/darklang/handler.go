package darklang

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/ferdiebergado/lmskit/internal/auth"
	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
	"github.com/ferdiebergado/lmskit/internal/session"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed templates/*.html
var templateFS embed.FS

var previewTemplate = template.Must(template.ParseFS(templateFS, "templates/preview_lang.html"))

var errNoSession = errors.New("request has no session")

type Handler struct {
	darklang *Darklang
}

func NewHandler(d *Darklang) *Handler {
	return &Handler{darklang: d}
}

type languageOption struct {
	Code string
	Name string
}

type previewPage struct {
	Lang      string
	Enabled   bool
	Message   string
	Current   string
	CSRFToken string
	Languages []languageOption
}

// languageName returns the name of code in its own language, or code itself
// when the tag is not known.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, msg string) {
	cfg, err := h.darklang.Config(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	page := previewPage{
		Lang:      h.darklang.defaultLang,
		Enabled:   cfg.Enabled,
		Message:   msg,
		CSRFToken: web.CSRFTokenFromContext(r.Context()),
	}

	if sess := session.FromContext(r.Context()); sess != nil {
		page.Current, _ = sess.Get(session.KeyLanguage)
		if page.Current != "" {
			page.Lang = page.Current
		}
	}

	for _, code := range h.darklang.releasedLangs(cfg) {
		page.Languages = append(page.Languages, languageOption{Code: code, Name: languageName(code)})
	}

	web.RenderHTML(w, status, previewTemplate, page)
}

// HandleGetPreview shows the form for setting or resetting the preview language.
func (h *Handler) HandleGetPreview(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "")
}

// HandlePostPreview sets or clears the preview language from the submitted form.
func (h *Handler) HandlePostPreview(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		web.RespondInternalServerError(w, errNoSession)
		return
	}

	if err := r.ParseForm(); err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	// Auth middleware guarantees a user here; an anonymous request only touches the session.
	u, _ := auth.UserFromContext(r.Context())

	msg, err := h.darklang.ProcessRequest(r.Context(), Request{
		Session: sess,
		UserID:  u.ID,
		Form:    r.PostForm,
	})
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	h.render(w, r, http.StatusOK, msg)
}

// HandleGetConfig returns the current configuration.
func (h *Handler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.darklang.Config(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.OK(w, http.StatusOK, nil, &cfg)
}

// HandleSaveConfig stores the decoded and validated SaveConfigParams as the new configuration.
func (h *Handler) HandleSaveConfig(w http.ResponseWriter, r *http.Request) {
	params, err := web.PayloadFromContext[SaveConfigParams](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	u, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.Unauthorized, nil)
		return
	}

	cfg, err := h.darklang.SaveConfig(r.Context(), params, u.ID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.ConfigSaved
	web.OK(w, http.StatusCreated, &msg, &cfg)
}
