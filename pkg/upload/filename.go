package upload

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var filenameStripRe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename приводит имя файла к безопасному виду:
// только ASCII [A-Za-z0-9_.-], без каталогов и ведущих точек.
// Может вернуть пустую строку.
func SecureFilename(name string) string {
	// Разложение unicode (é -> e + ´), затем отбрасываем всё не-ASCII
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = filenameStripRe.ReplaceAllString(name, "")

	return strings.Trim(name, "._")
}
