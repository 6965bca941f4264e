// Package document valida y formatea números de documento brasileños (CPF y CNPJ)
// con el algoritmo de dígitos de verificación módulo 11.
package document

import "strings"

// pesos del primer y segundo dígito de verificación, de izquierda a derecha.
var (
	cpfWeights1  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfWeights2  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// IsValidCPF valida un CPF con o sin máscara ("000.000.000-00").
// Los CPF con todos los dígitos iguales son inválidos.
func IsValidCPF(cpf string) bool {
	digits, ok := normalize(cpf, ".", "-")
	if !ok || len(digits) != 11 || allSame(digits) {
		return false
	}
	return hasValidCheckDigits(digits, cpfWeights1, cpfWeights2)
}

// FormatCPF aplica la máscara 000.000.000-00; un CPF inválido se devuelve sin cambios.
func FormatCPF(cpf string) string {
	if !IsValidCPF(cpf) {
		return cpf
	}
	d, _ := normalize(cpf, ".", "-")
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// IsValidCNPJ valida un CNPJ con o sin máscara ("00.000.000/0000-00").
func IsValidCNPJ(cnpj string) bool {
	digits, ok := normalize(cnpj, ".", "-", "/")
	if !ok || len(digits) != 14 {
		return false
	}
	return hasValidCheckDigits(digits, cnpjWeights1, cnpjWeights2)
}

// FormatCNPJ aplica la máscara 00.000.000/0000-00; un CNPJ inválido se devuelve sin cambios.
func FormatCNPJ(cnpj string) string {
	if !IsValidCNPJ(cnpj) {
		return cnpj
	}
	d, _ := normalize(cnpj, ".", "-", "/")
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

func hasValidCheckDigits(digits string, weights1, weights2 []int) bool {
	n := len(weights1)
	first := checkDigit(digits[:n], weights1)
	second := checkDigit(digits[:n]+string(first), weights2)
	return digits[n] == first && digits[n+1] == second
}

func checkDigit(base string, weights []int) byte {
	var sum int
	for i, w := range weights {
		sum += int(base[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

// normalize quita espacios y separadores; ok es false si queda algo que no sea dígito.
func normalize(s string, separators ...string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, sep := range separators {
		s = strings.ReplaceAll(s, sep, "")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}
	return s, true
}

func allSame(digits string) bool {
	return strings.Count(digits, digits[:1]) == len(digits)
}
