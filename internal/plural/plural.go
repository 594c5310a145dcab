// Package plural provides CLDR plural form selection for a given language and count,
// and maps it onto the ordered <numerusform> list of a Qt numerus message.
// Form names: "zero", "one", "two", "few", "many", "other".
package plural

import "strings"

var (
	formsOther        = []string{"other"}
	formsOneOther     = []string{"one", "other"}
	formsOneFewMany   = []string{"one", "few", "many"}
	formsArabic       = []string{"zero", "one", "two", "few", "many", "other"}
	formsWelsh        = []string{"zero", "one", "two", "few", "many", "other"}
	formsIrish        = []string{"one", "two", "other"}
	formsMaltese      = []string{"one", "few", "many", "other"}
	formsOneFewOther  = []string{"one", "few", "other"}
	formsLatvian      = []string{"one", "other", "zero"}
	formsSlovenian    = []string{"one", "two", "few", "other"}
	formsHebrew       = []string{"one", "two", "many", "other"}
	formsCzechSlovak  = []string{"one", "few", "other"}
	formsFrenchFamily = []string{"one", "other"}
)

func baseTag(lang string) string {
	base := strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(base, "-_"); idx > 0 {
		base = base[:idx]
	}
	return base
}

// Form returns the CLDR plural form for the given language tag and count.
// Language tag is normalized to base (e.g. "en-US" -> "en"). Unknown languages default to "other".
func Form(lang string, count int) string {
	n := count
	if n < 0 {
		n = -n
	}
	switch baseTag(lang) {
	case "ar":
		return formArabic(n)
	case "ru", "uk", "be", "sr", "hr", "bs", "sh":
		return formRussian(n)
	case "pl":
		return formPolish(n)
	case "cs", "sk":
		return formCzech(n)
	case "cy":
		return formWelsh(n)
	case "ga":
		return formIrish(n)
	case "mt":
		return formMaltese(n)
	case "lt":
		return formLithuanian(n)
	case "lv":
		return formLatvian(n)
	case "ro":
		return formRomanian(n)
	case "sl":
		return formSlovenian(n)
	case "he", "iw":
		return formHebrew(n)
	case "fr", "ak":
		return formFrench(n)
	case "en", "es", "de", "it", "pt", "nl", "no", "nb", "nn", "sv", "da", "fi", "tr", "el", "hi", "hu", "ca", "gl", "et", "eu", "bg":
		return formOneOther(n)
	default:
		// id, ms, ja, ko, zh, th, vi and friends have no plural distinction
		return "other"
	}
}

// Forms returns the plural categories of lang in the order Qt Linguist expects
// the <numerusform> elements. Unknown languages get a single "other" form.
func Forms(lang string) []string {
	var forms []string
	switch baseTag(lang) {
	case "ar":
		forms = formsArabic
	case "ru", "uk", "be", "sr", "hr", "bs", "sh", "pl":
		forms = formsOneFewMany
	case "cs", "sk":
		forms = formsCzechSlovak
	case "cy":
		forms = formsWelsh
	case "ga":
		forms = formsIrish
	case "mt":
		forms = formsMaltese
	case "lt", "ro":
		forms = formsOneFewOther
	case "lv":
		forms = formsLatvian
	case "sl":
		forms = formsSlovenian
	case "he", "iw":
		forms = formsHebrew
	case "fr", "ak":
		forms = formsFrenchFamily
	case "en", "es", "de", "it", "pt", "nl", "no", "nb", "nn", "sv", "da", "fi", "tr", "el", "hi", "hu", "ca", "gl", "et", "eu", "bg":
		forms = formsOneOther
	default:
		forms = formsOther
	}
	out := make([]string, len(forms))
	copy(out, forms)
	return out
}

// Index returns the position of the numerus form to use for count, given
// available forms. Indexes past the supplied forms clamp to the last one.
func Index(lang string, count int, available int) int {
	if available <= 1 {
		return 0
	}
	form := Form(lang, count)
	idx := len(Forms(lang)) - 1
	for i, f := range Forms(lang) {
		if f == form {
			idx = i
			break
		}
	}
	if idx >= available {
		idx = available - 1
	}
	return idx
}

func formOneOther(n int) string {
	if n == 1 {
		return "one"
	}
	return "other"
}

func formFrench(n int) string {
	if n == 0 || n == 1 {
		return "one"
	}
	return "other"
}

func formCzech(n int) string {
	if n == 1 {
		return "one"
	}
	if n >= 2 && n <= 4 {
		return "few"
	}
	return "other"
}

func formArabic(n int) string {
	if n == 0 {
		return "zero"
	}
	if n == 1 {
		return "one"
	}
	if n == 2 {
		return "two"
	}
	n100 := n % 100
	if n100 >= 3 && n100 <= 10 {
		return "few"
	}
	if n100 >= 11 && n100 <= 99 {
		return "many"
	}
	return "other"
}

func formRussian(n int) string {
	n10 := n % 10
	n100 := n % 100
	if n10 == 1 && n100 != 11 {
		return "one"
	}
	if n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14) {
		return "few"
	}
	return "many"
}

func formPolish(n int) string {
	if n == 1 {
		return "one"
	}
	n10 := n % 10
	n100 := n % 100
	if n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14) {
		return "few"
	}
	return "many"
}

func formWelsh(n int) string {
	switch n {
	case 0:
		return "zero"
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "few"
	case 6:
		return "many"
	}
	return "other"
}

func formHebrew(n int) string {
	if n == 1 {
		return "one"
	}
	if n == 2 {
		return "two"
	}
	if n > 10 && n%10 == 0 {
		return "many"
	}
	return "other"
}

func formIrish(n int) string {
	switch {
	case n == 1:
		return "one"
	case n == 2:
		return "two"
	case n >= 3 && n <= 6:
		return "few"
	case n >= 7 && n <= 10:
		return "many"
	}
	return "other"
}

func formMaltese(n int) string {
	n100 := n % 100
	switch {
	case n == 1:
		return "one"
	case n == 0 || (n100 >= 2 && n100 <= 10):
		return "few"
	case n100 >= 11 && n100 <= 19:
		return "many"
	}
	return "other"
}

func formLithuanian(n int) string {
	n10 := n % 10
	n100 := n % 100
	if n100 >= 11 && n100 <= 19 {
		return "other"
	}
	if n10 == 1 {
		return "one"
	}
	if n10 >= 2 {
		return "few"
	}
	return "other"
}

func formLatvian(n int) string {
	n10 := n % 10
	n100 := n % 100
	if n10 == 0 || (n100 >= 11 && n100 <= 19) {
		return "zero"
	}
	if n10 == 1 {
		return "one"
	}
	return "other"
}

func formRomanian(n int) string {
	n100 := n % 100
	if n == 1 {
		return "one"
	}
	if n == 0 || (n100 >= 2 && n100 <= 19) {
		return "few"
	}
	return "other"
}

func formSlovenian(n int) string {
	switch n % 100 {
	case 1:
		return "one"
	case 2:
		return "two"
	case 3, 4:
		return "few"
	}
	return "other"
}
