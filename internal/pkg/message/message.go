package message

const (
	InvalidInput   = "Invalid input."
	Unauthorized   = "You must be signed in to do that."
	Forbidden      = "You do not have permission to do that."
	ServerError    = "Something went wrong. Please try again later."
	EnvErrFmt      = "environment variable is not set: %s"
	LanguageSetFmt = "Language set to %s"
	LanguageReset  = "Language reset."
	LanguageResetF = "Language reset to %s"
	ConfigSaved    = "Dark language settings saved."
	GradeSaved     = "Grade saved."
	RequestTimeout = "The request was canceled or timed out."
	CSRFFailed     = "The form has expired. Reload the page and try again."
)
