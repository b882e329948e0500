package types

import "fmt"

// CustomError carries an HTTP status and a machine-readable type through the
// middleware chain, so the global error handler can shape the response
// envelope. The auth middleware returns these for session and admin failures.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
