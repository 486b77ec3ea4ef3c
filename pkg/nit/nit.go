// Package nit normaliza y valida el NIT colombiano de las empresas cliente.
package nit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid NIT con caracteres no permitidos o dígito de verificación incorrecto.
var ErrInvalid = errors.New("nit inválido")

// pesos del dígito de verificación (módulo 11), aplicados a los 9 dígitos base
// de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalize quita puntos y espacios: "900.123.456 - 8" -> "900123456-8".
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r == '.' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Validate comprueba un NIT ya normalizado: dígitos con un dígito de
// verificación opcional tras un guion. Con 9 dígitos base y DV, el DV debe
// coincidir con el calculado.
func Validate(nit string) error {
	base, dv, hasDV := strings.Cut(nit, "-")
	if base == "" || !allDigits(base) {
		return fmt.Errorf("%w: %q", ErrInvalid, nit)
	}
	if !hasDV {
		return nil
	}
	if len(dv) != 1 || !allDigits(dv) {
		return fmt.Errorf("%w: dígito de verificación %q", ErrInvalid, dv)
	}
	if len(base) != len(weights) {
		return nil
	}
	if want := VerificationDigit(base); dv[0] != want {
		return fmt.Errorf("%w: dígito de verificación esperado %c, recibido %s", ErrInvalid, want, dv)
	}
	return nil
}

// VerificationDigit calcula el DV de 9 dígitos base. Entradas de otra longitud
// devuelven 0.
func VerificationDigit(base string) byte {
	if len(base) != len(weights) || !allDigits(base) {
		return 0
	}
	var sum int
	for i := range base {
		sum += int(base[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return byte('0' + r)
	}
	return byte('0' + 11 - r)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
