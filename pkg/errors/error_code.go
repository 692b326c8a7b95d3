package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Lex errors (100-109)
	ErrCodeInvalidCharacter ErrorCode = 100
	ErrCodeMalformedNumber  ErrorCode = 101

	// Syntax errors (110-129)
	ErrCodeEmptyRule        ErrorCode = 110
	ErrCodeUnexpectedToken  ErrorCode = 111
	ErrCodeUnmatchedParen   ErrorCode = 112
	ErrCodeUnmatchedBracket ErrorCode = 113
	ErrCodeInvalidLookback  ErrorCode = 114
	ErrCodeUnknownIndicator ErrorCode = 115
	ErrCodeWrongArity       ErrorCode = 116
	ErrCodeInvalidDirection ErrorCode = 117
	ErrCodeTrailingInput    ErrorCode = 118

	// Type errors (130-139)
	ErrCodeTypeMismatch ErrorCode = 130

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeInvalidSeries         ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeInvalidPeriod          ErrorCode = 302

	// Backtest errors (600-699)
	ErrCodeSignalLengthMismatch ErrorCode = 600
	ErrCodeInvalidConfiguration ErrorCode = 601
	ErrCodeBacktestNoDatasource ErrorCode = 602
)
