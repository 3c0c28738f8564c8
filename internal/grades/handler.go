package grades

import (
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/lmskit/internal/auth"
	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
)

const (
	QueryCourseID    = "course_id"
	QueryContentType = "content_type"
	QuerySince       = "since"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// CreateGradeRequest is the payload of a newly computed grade.
type CreateGradeRequest struct {
	Grade
	VisibleBlocks []BlockRecord `json:"visible_blocks" validate:"dive"`
}

// HandleCreate stores the decoded CreateGradeRequest.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := web.PayloadFromContext[CreateGradeRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	grade, err := h.store.Create(r.Context(), &req.Grade, req.VisibleBlocks)
	if err != nil {
		if errors.Is(err, ErrInvalidGrade) {
			web.RespondUnprocessableEntity(w, err, message.InvalidInput, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.GradeSaved
	web.OK(w, http.StatusCreated, &msg, grade)
}

// HandleListMine returns the valid grades of the signed-in user for one content type of a course.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	u, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.Unauthorized, nil)
		return
	}

	query := r.URL.Query()
	courseID, contentType := query.Get(QueryCourseID), query.Get(QueryContentType)
	if courseID == "" || contentType == "" {
		web.RespondBadRequest(w, errors.New("missing query parameters"), message.InvalidInput, map[string]string{
			QueryCourseID:    "course_id is required",
			QueryContentType: "content_type is required",
		})
		return
	}

	grades, err := h.store.FindForUser(r.Context(), u.ID, courseID, contentType)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.OK(w, http.StatusOK, nil, &grades)
}

// HandleListUpdated returns the grades of a course updated at or after the RFC 3339 since parameter.
func (h *Handler) HandleListUpdated(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	courseID := query.Get(QueryCourseID)
	if courseID == "" {
		web.RespondBadRequest(w, errors.New("missing course_id"), message.InvalidInput, map[string]string{
			QueryCourseID: "course_id is required",
		})
		return
	}

	since, err := time.Parse(time.RFC3339, query.Get(QuerySince))
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, map[string]string{
			QuerySince: "since must be an RFC 3339 time",
		})
		return
	}

	grades, err := h.store.ListUpdatedSince(r.Context(), courseID, since)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.OK(w, http.StatusOK, nil, &grades)
}
