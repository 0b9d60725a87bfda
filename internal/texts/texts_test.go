package texts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"spkbot/internal/constants"
)

func TestTSubstitutesParams(t *testing.T) {
	got := T(constants.LOCALE_RU, "balance_title", map[string]string{"balance": "1 000"})
	assert.Contains(t, got, "1 000")
	assert.NotContains(t, got, "{balance}")
}

func TestTFallsBackToDefaultLocale(t *testing.T) {
	unknown := T("en", "welcome", nil)
	assert.Equal(t, T(constants.DEFAULT_LOCALE, "welcome", nil), unknown)
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "no_such_key", T(constants.LOCALE_UZ, "no_such_key", nil))
}

// Обе таблицы локалей должны содержать одинаковый набор ключей, иначе
// часть экранов молча откатится на локаль по умолчанию.
func TestLocaleTablesAreSymmetric(t *testing.T) {
	uz := tables[constants.LOCALE_UZ]
	ru := tables[constants.LOCALE_RU]

	for key := range uz {
		_, ok := ru[key]
		assert.True(t, ok, "ключ %q есть в uz, но отсутствует в ru", key)
	}
	for key := range ru {
		_, ok := uz[key]
		assert.True(t, ok, "ключ %q есть в ru, но отсутствует в uz", key)
	}
}

// Плейсхолдеры в параллельных строках должны совпадать: перевод не должен
// терять подстановки.
func TestLocaleTablesUseSamePlaceholders(t *testing.T) {
	uz := tables[constants.LOCALE_UZ]
	ru := tables[constants.LOCALE_RU]

	for key, uzText := range uz {
		ruText, ok := ru[key]
		if !ok {
			continue
		}
		for _, placeholder := range extractPlaceholders(uzText) {
			assert.Contains(t, ruText, placeholder, "ключ %q", key)
		}
	}
}

func extractPlaceholders(text string) []string {
	var out []string
	for {
		start := strings.Index(text, "{")
		if start < 0 {
			return out
		}
		end := strings.Index(text[start:], "}")
		if end < 0 {
			return out
		}
		out = append(out, text[start:start+end+1])
		text = text[start+end+1:]
	}
}
