package service

import "strings"

// Slugify une las palabras del titulo con guiones, pasa a minusculas y
// descarta todo lo que no sea [a-z0-9-].
func Slugify(title string) string {
	joined := strings.ToLower(strings.Join(strings.Split(title, " "), "-"))
	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
