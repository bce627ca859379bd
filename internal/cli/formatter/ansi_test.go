package formatter

import "regexp"

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plainText(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
