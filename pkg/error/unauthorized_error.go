package error

import "net/http"

// UnauthorizedError is returned when a caller presents a token that does not
// match the stored secret. The message never carries token material.
type UnauthorizedError string

func (err UnauthorizedError) Error() string {
	return string(err)
}

func (err UnauthorizedError) ErrCode() string {
	return "UNAUTHORIZED"
}

func (err UnauthorizedError) StatusCode() int {
	return http.StatusUnauthorized
}
