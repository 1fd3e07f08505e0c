// Package validation implements the Brazilian document checks used at
// registration: CPF and CNPJ check digits, CEP and phone length rules,
// and the matching display formatters.
package validation

import (
	"fmt"
	"strings"
)

// CleanDigits strips every non-digit character from s.
func CleanDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// ValidateCPF checks the two verification digits of a CPF. Formatting
// characters are ignored; sequences like 111.111.111-11 are rejected.
func ValidateCPF(cpf string) bool {
	digits := CleanDigits(cpf)
	if len(digits) != 11 || allSameDigit(digits) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	if rest != int(digits[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	rest = (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	return rest == int(digits[10]-'0')
}

// ValidateCNPJ checks the two verification digits of a CNPJ.
func ValidateCNPJ(cnpj string) bool {
	digits := CleanDigits(cnpj)
	if len(digits) != 14 || allSameDigit(digits) {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

	sum := 0
	for i, w := range weights1 {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	check1 := 0
	if rest >= 2 {
		check1 = 11 - rest
	}
	if check1 != int(digits[12]-'0') {
		return false
	}

	sum = 0
	for i, w := range weights2 {
		sum += int(digits[i]-'0') * w
	}
	rest = sum % 11
	check2 := 0
	if rest >= 2 {
		check2 = 11 - rest
	}
	return check2 == int(digits[13]-'0')
}

// ValidateCEP accepts exactly 8 digits after cleaning.
func ValidateCEP(cep string) bool {
	return len(CleanDigits(cep)) == 8
}

// ValidatePhone accepts 10 digits (landline) or 11 (mobile).
func ValidatePhone(phone string) bool {
	n := len(CleanDigits(phone))
	return n == 10 || n == 11
}

// FormatCPF renders 11 digits as 000.000.000-00. Input that does not
// clean to 11 digits is returned unchanged.
func FormatCPF(cpf string) string {
	d := CleanDigits(cpf)
	if len(d) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}

// FormatCNPJ renders 14 digits as 00.000.000/0000-00.
func FormatCNPJ(cnpj string) string {
	d := CleanDigits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

// FormatCEP renders 8 digits as 00000-000.
func FormatCEP(cep string) string {
	d := CleanDigits(cep)
	if len(d) != 8 {
		return cep
	}
	return fmt.Sprintf("%s-%s", d[0:5], d[5:8])
}
