// Package normalize prepara términos de búsqueda: minúsculas y sin diacríticos,
// para que "jeringa" encuentre "Jeringa" y "análisis" encuentre "analisis".
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents descompone (NFD), elimina marcas combinantes y recompone (NFC).
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un término de búsqueda: trim, minúsculas y sin acentos.
// Si la transformación falla (entrada no-UTF8 degenerada), devuelve el término
// en minúsculas sin más.
func Fold(term string) string {
	lowered := strings.ToLower(strings.TrimSpace(term))
	out, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		return lowered
	}
	return out
}
