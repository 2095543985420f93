package error

// GenericError is implemented by every error that knows how it should be
// rendered to a caller.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
