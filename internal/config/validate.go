package config

import (
	"errors"

	"go.uber.org/multierr"
)

var (
	ErrLMSRootURLUndefined    = errors.New("'LMS_ROOT_URL' is not defined.")
	ErrMarketingURLsUndefined = errors.New("'ENABLE_MKTG_SITE' is True, but 'MKTG_URLS' is not defined.")
	ErrMarketingRootUndefined = errors.New("There is no 'ROOT' defined in 'MKTG_URLS'")
)

// MarketingRootKey is the key of the marketing site root in MarketingOptions.URLs.
const MarketingRootKey = "ROOT"

// ValidateLMS validates the options used by the learning site.
func ValidateLMS(opts *Options) error {
	return multierr.Combine(
		ValidateCommon(opts),
		ValidateMarketingSite(opts),
	)
}

// ValidateCMS validates the options used by the authoring site.
func ValidateCMS(opts *Options) error {
	return multierr.Combine(
		ValidateCommon(opts),
		ValidateMarketingSite(opts),
	)
}

// ValidateCommon validates the options shared by every site.
func ValidateCommon(opts *Options) error {
	if opts.LMS == nil || opts.LMS.RootURL == "" {
		return ErrLMSRootURLUndefined
	}
	return nil
}

// ValidateMarketingSite validates the marketing site options when the feature is enabled.
func ValidateMarketingSite(opts *Options) error {
	if !opts.MarketingSiteEnabled() {
		return nil
	}

	// A marketing section without urls counts as defined but empty.
	if opts.Marketing == nil {
		return ErrMarketingURLsUndefined
	}

	if opts.Marketing.URLs[MarketingRootKey] == "" {
		return ErrMarketingRootUndefined
	}

	return nil
}
