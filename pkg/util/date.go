package util

import (
	"strings"
	"time"
)

var dateTokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"hh", "15",
	"mm", "04",
	"ss", "05",
)

// FormatDateTpl formats t using a template with placeholders:
//
//	YYYY 4-digit year     YY 2-digit year
//	MM   month (01-12)    DD day (01-31)
//	hh   hour (00-23)     mm minute (00-59)
//	ss   second (00-59)
//
// It returns "" for the zero time.
//
//	FormatDateTpl(t, "YYYY-MM-DD") // "2023-11-10"
//	FormatDateTpl(t, "hh:mm:ss")   // "14:03:09"
func FormatDateTpl(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTokens.Replace(tpl))
}
