package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", LocaleEnglish},
		{"de", LocaleGerman},
		{"de-DE,de;q=0.9,en;q=0.8", LocaleGerman},
		{"fr-FR, de;q=0.5", LocaleGerman},
		{"fr, es", LocaleEnglish},
		{"EN-us", LocaleEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAcceptLanguage(tt.header))
		})
	}
}

func TestLocalizer_T(t *testing.T) {
	de := NewLocalizer(LocaleGerman)
	assert.Equal(t, "Die hochgeladene Datei ist leer.", de.T("errors.empty_upload"))
	assert.Equal(t, "Dateien vom Typ pdf können nicht gelesen werden.", de.T("errors.unsupported_format", map[string]string{"format": "pdf"}))

	assert.Equal(t, "errors.unknown_key", de.T("errors.unknown_key"))
	assert.Equal(t, LocaleEnglish, NewLocalizer("fr").GetLocale())
}

func TestMiddleware(t *testing.T) {
	var got string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetLocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-AT")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, LocaleGerman, got)
	assert.Equal(t, LocaleEnglish, GetLocaleFromContext(context.Background()))
}
