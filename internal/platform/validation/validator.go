package validation

// Validator checks a struct against its validate tags and returns field errors keyed by json name.
type Validator interface {
	ValidateStruct(s any) map[string]string
}
