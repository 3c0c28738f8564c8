package course

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ferdiebergado/lmskit/internal/config"
)

// AboutPageLink returns the public URL of the about page of the course.
// With the marketing site enabled the page lives under the marketing root,
// otherwise under the LMS base. The scheme is always https.
func AboutPageLink(opts *config.Options, key Key) (string, error) {
	var base string
	if opts.MarketingSiteEnabled() {
		if err := config.ValidateMarketingSite(opts); err != nil {
			slog.Error("cannot build about page link", "reason", err, "course_id", key.String())
			return "", err
		}
		base = opts.Marketing.URLs[config.MarketingRootKey]
	} else if opts.LMS != nil {
		base = opts.LMS.Base
	}

	return fmt.Sprintf("https://%s/courses/%s/about", StripScheme(base), key.DeprecatedString()), nil
}

// StripScheme removes a leading http:// or https://.
func StripScheme(url string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(url, scheme); ok {
			return rest
		}
	}
	return url
}
