package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Spec errors (programmer mistakes)
const (
	// ErrCodeMalformedSpec indicates a spec without a usable parse function.
	ErrCodeMalformedSpec ErrorCode = "MALFORMED_SPEC"
	// ErrCodeInvalidChoiceSet indicates a choices list that is not a unique sequence.
	ErrCodeInvalidChoiceSet ErrorCode = "INVALID_CHOICE_SET"
	// ErrCodeInvalidDefinition indicates a declarative definition that cannot become a spec.
	ErrCodeInvalidDefinition ErrorCode = "INVALID_DEFINITION"
)

// Value errors
const (
	// ErrCodeMissingRequired indicates a variable absent with no usable default.
	ErrCodeMissingRequired ErrorCode = "MISSING_REQUIRED"
	// ErrCodeNotInChoices indicates a parsed value outside the declared choices.
	ErrCodeNotInChoices ErrorCode = "VALUE_NOT_IN_CHOICES"
	// ErrCodeNullAfterParse indicates a parser that produced no usable value.
	ErrCodeNullAfterParse ErrorCode = "NULL_AFTER_PARSE"
	// ErrCodeInvalidValue indicates a parser rejected the raw string.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"
	// ErrCodeUnknownKey indicates a raw key that no spec declares.
	ErrCodeUnknownKey ErrorCode = "UNKNOWN_KEY"
)

var specCodes = map[ErrorCode]bool{
	ErrCodeMalformedSpec:     true,
	ErrCodeInvalidChoiceSet:  true,
	ErrCodeInvalidDefinition: true,
}

// IsSpecCode returns true if the code points at a broken spec rather than
// at the environment being validated.
func IsSpecCode(code ErrorCode) bool {
	return specCodes[code]
}
