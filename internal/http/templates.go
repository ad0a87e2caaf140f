package http

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates(formatDate func(time.Time) string) (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatDate": formatDate,
		"fieldError": fieldError,
	}).ParseFS(templateFS, "templates/*.html")
}

// fieldError looks a field up in a validation.Errors value (nil-safe).
func fieldError(errs map[string]string, field string) string {
	return errs[field]
}

var monthsPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func (h *Handler) formatDate(t time.Time) string {
	return formatDatePT(t.In(h.location))
}

// formatDatePT renders t the way pt-BR long date / short time reads,
// e.g. "1 de janeiro de 2024 às 09:05".
func formatDatePT(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d às %02d:%02d",
		t.Day(), monthsPT[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
