// Package docnum normalizes Brazilian document numbers (CNPJ) and postal
// codes (CEP) before handing them to brdoc. Input may be formatted
// ("12.345.678/0001-95", "01310-100"); every non-digit rune is ignored.
package docnum

import (
	"strings"

	"github.com/paemuri/brdoc"
)

// OnlyDigits strips everything that is not an ASCII digit.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCNPJ reports whether s carries a CNPJ with valid check digits.
func IsCNPJ(s string) bool {
	d := OnlyDigits(s)
	if len(d) != 14 {
		return false
	}
	return brdoc.IsCNPJ(d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:])
}

// IsCEP reports whether s carries an eight digit CEP inside a known
// federative unit range.
func IsCEP(s string) bool {
	d := OnlyDigits(s)
	if len(d) != 8 {
		return false
	}
	return brdoc.IsCEP(d[:5] + "-" + d[5:])
}
