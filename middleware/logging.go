package middleware

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/shravanasati/preview/request"
	"github.com/shravanasati/preview/response"
	"github.com/shravanasati/preview/server"
)

// Logging logs `METHOD target STATUS in DURATION` for each answered request.
// Abandoned requests are logged with status 0.
func Logging(logger *log.Logger) server.Middleware {
	return func(next server.Handler) server.Handler {
		return func(r *request.Request) (*response.Response, error) {
			now := time.Now()
			resp, err := next(r)
			logger.Printf("%s %s %d in %s\n", r.Method, r.Target, statusOf(resp), time.Since(now))
			return resp, err
		}
	}
}

// LoggingColored is Logging with lipgloss styling. Styles are always rendered as ANSI,
// so only use it when colour output was requested.
func LoggingColored(logger *log.Logger) server.Middleware {
	renderer := newANSIRenderer(logger.Writer())
	methodStyle := renderer.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Background(lipgloss.Color("12")).
		Width(8).
		Align(lipgloss.Center)

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) (*response.Response, error) {
			now := time.Now()
			resp, err := next(r)

			statusCode := statusOf(resp)
			styledStatus := statusCodeStyle(renderer, statusCode).Render(fmt.Sprintf("%d", statusCode))
			styledMethod := methodStyle.Render(r.Method)
			logger.Printf("%s %s %s in %s\n", styledMethod, r.Target, styledStatus, time.Since(now))
			return resp, err
		}
	}
}

func newANSIRenderer(w io.Writer) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)
	return renderer
}

func statusOf(resp *response.Response) int {
	if resp == nil {
		return 0
	}
	return int(resp.StatusCode)
}

// statusCodeStyle picks a colour per status class.
func statusCodeStyle(renderer *lipgloss.Renderer, statusCode int) lipgloss.Style {
	style := renderer.NewStyle().Bold(true)
	switch {
	case statusCode >= 200 && statusCode < 300:
		return style.Foreground(lipgloss.Color("46"))
	case statusCode >= 300 && statusCode < 400:
		return style.Foreground(lipgloss.Color("226"))
	case statusCode >= 400 && statusCode < 500:
		return style.Foreground(lipgloss.Color("208"))
	case statusCode >= 500:
		return style.Foreground(lipgloss.Color("196"))
	default:
		return style.Foreground(lipgloss.Color("15"))
	}
}
