package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy вырезает любую разметку из полей публичных форм.
var textPolicy = bluemonday.StrictPolicy()

// plainText возвращает текст без HTML. StrictPolicy экранирует спецсимволы,
// поэтому результат раскодируется обратно.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
