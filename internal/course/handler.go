package course

import (
	"net/http"

	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
)

const QueryCourseID = "course_id"

type Handler struct {
	opts *config.Options
}

func NewHandler(opts *config.Options) *Handler {
	return &Handler{opts: opts}
}

type AboutLinkResponse struct {
	CourseID string `json:"course_id"`
	URL      string `json:"url"`
}

// HandleAboutLink returns the public about page of the course in the course_id query parameter.
func (h *Handler) HandleAboutLink(w http.ResponseWriter, r *http.Request) {
	key, err := ParseKey(r.URL.Query().Get(QueryCourseID))
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, map[string]string{QueryCourseID: "course_id is not a valid course key"})
		return
	}

	link, err := AboutPageLink(h.opts, key)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.OK(w, http.StatusOK, nil, &AboutLinkResponse{CourseID: key.String(), URL: link})
}
