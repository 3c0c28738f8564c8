package app

import (
	"net/http"

	"github.com/ferdiebergado/lmskit/internal/auth"
	"github.com/ferdiebergado/lmskit/internal/course"
	"github.com/ferdiebergado/lmskit/internal/darklang"
	"github.com/ferdiebergado/lmskit/internal/grades"
	"github.com/ferdiebergado/lmskit/internal/middleware"
	"github.com/ferdiebergado/lmskit/internal/platform/router"
	"github.com/ferdiebergado/lmskit/internal/platform/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PathPreviewLang = "/update_lang/"
	PathDarkLang    = "/admin/darklang"
	PathAboutLink   = "/courses/about_link"
	PathGrades      = "/grades"
	PathAdminGrades = "/admin/grades"
	PathMetrics     = "/metrics"
)

func mountPreviewRoutes(r router.Router, handler *darklang.Handler, csrf router.Middleware) {
	r.Get(PathPreviewLang, handler.HandleGetPreview, auth.RequireUser, csrf)
	r.Post(PathPreviewLang, handler.HandlePostPreview, auth.RequireUser, csrf)
}

func mountDarkLangAdminRoutes(r router.Router, handler *darklang.Handler, validator validation.Validator, allowedOrigins []string, maxBodySize int64) {
	cors := middleware.CORS(allowedOrigins)

	r.Options(PathDarkLang, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, cors)
	r.Get(PathDarkLang, handler.HandleGetConfig, cors, auth.RequireStaff)
	r.Post(PathDarkLang, handler.HandleSaveConfig,
		cors,
		auth.RequireStaff,
		middleware.CheckContentType,
		middleware.DecodePayload[darklang.SaveConfigParams](maxBodySize),
		middleware.ValidateInput[darklang.SaveConfigParams](validator))
}

func mountCourseRoutes(r router.Router, handler *course.Handler) {
	r.Get(PathAboutLink, handler.HandleAboutLink)
}

func mountGradeRoutes(r router.Router, handler *grades.Handler, validator validation.Validator, maxBodySize int64) {
	r.Get(PathGrades, handler.HandleListMine, auth.RequireUser)
	r.Get(PathAdminGrades, handler.HandleListUpdated, auth.RequireStaff)
	r.Post(PathAdminGrades, handler.HandleCreate,
		auth.RequireStaff,
		middleware.CheckContentType,
		middleware.DecodePayload[grades.CreateGradeRequest](maxBodySize),
		middleware.ValidateInput[grades.CreateGradeRequest](validator))
}

func mountMetricsRoute(r router.Router, gatherer prometheus.Gatherer) {
	r.Get(PathMetrics, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
}
