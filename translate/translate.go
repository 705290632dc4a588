// Package translate localizes user-visible messages for the lmc tools.
package translate

import (
	"log"
	"os"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// LANG_ENV overrides the host locale when set.
const LANG_ENV = "LMC_LANG"

var printer *message.Printer

func init() {
	printer = NewPrinter(os.Getenv(LANG_ENV))
}

// NewPrinter selects a printer for an explicit language tag, falling
// back to the host locales, and finally to en-US.
func NewPrinter(lang string) *message.Printer {
	var locales []string
	if len(lang) != 0 {
		locales = []string{lang}
	} else {
		var err error
		locales, err = locale.GetLocales()
		if err != nil {
			log.Printf("lmc: locale: %v", err)
		}
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
