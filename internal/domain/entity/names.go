package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName devuelve la clave de unicidad de un nombre de empresa:
// NFKC + case folding + espacios colapsados. "ACME  S.A." y "acme s.a." colisionan.
func NormalizeName(name string) string {
	folded := cases.Fold().String(norm.NFKC.String(name))
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeEmail recorta y pasa a minúsculas un email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
