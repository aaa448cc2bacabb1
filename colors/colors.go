package colors

import (
	"net/http"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
)

// Status colors an http status code, red for client/server errors
func Status(status int) string {
	if status >= http.StatusBadRequest {
		return Red(status)
	}
	return Green(status)
}
