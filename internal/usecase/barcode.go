package usecase

import (
	"regexp"
	"strings"

	"github.com/shelfsync/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	hexPrefixRegex       = regexp.MustCompile(`^(?i)0x`)
	nonDigitCodeRegex    = regexp.MustCompile(`[^0-9]`)
	nonAlphanumCodeRegex = regexp.MustCompile(`[^0-9A-Za-z]`)
)

// Plausible SKU length bounds for codes that match no barcode format
const (
	minSkuLength = 4
	maxSkuLength = 20
)

// NormalizeCode canonicalizes a raw product identifier. Numeric codes are
// stripped of punctuation and leading zeros, then zero-padded by length:
// 6-7 digits to 8 (compressed UPC-E), 9-11 digits to 12 (UPC-A). A 12-digit
// value that fails the UPC-A checksum is treated as a truncated 13-digit code
// and gets one zero prepended. Alphanumeric SKUs keep their alphanumeric
// content uppercased. Pure function: the same raw value always yields the
// same normalized value.
func NormalizeCode(raw string) string {
	code := strings.TrimSpace(raw)
	if code == "" {
		return ""
	}

	code = hexPrefixRegex.ReplaceAllString(code, "")

	if !isNumericCode(nonAlphanumCodeRegex.ReplaceAllString(code, "")) {
		// Alphanumeric SKU: keep letters and digits only, uppercased
		return strings.ToUpper(nonAlphanumCodeRegex.ReplaceAllString(code, ""))
	}

	digits := nonDigitCodeRegex.ReplaceAllString(code, "")
	if digits == "" {
		return ""
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}

	switch {
	case len(digits) == 6 || len(digits) == 7:
		digits = strings.Repeat("0", 8-len(digits)) + digits
	case len(digits) >= 9 && len(digits) <= 11:
		digits = strings.Repeat("0", 12-len(digits)) + digits
	}

	// A 12-digit value failing the UPC-A checksum is more likely an EAN-13
	// that lost its leading zero than a mistyped UPC-A. Heuristic, not a
	// guarantee: some codes are ambiguous either way.
	if len(digits) == 12 && !hasValidCheckDigit(digits) {
		digits = "0" + digits
	}

	return strings.ToUpper(digits)
}

// IsValidBarcode reports whether the normalized form of raw is a valid
// barcode (checksum-verified for the standard lengths) or a plausible SKU.
func IsValidBarcode(raw string) bool {
	code := NormalizeCode(raw)
	if code == "" {
		return false
	}

	if !isNumericCode(code) {
		return len(code) >= minSkuLength && len(code) <= maxSkuLength
	}

	switch len(code) {
	case 8, 12, 13, 14:
		// EAN-8/UPC-E, UPC-A, EAN-13, GTIN-14 all verify with the
		// weighted mod-10 check digit
		return hasValidCheckDigit(code)
	default:
		return len(code) >= minSkuLength && len(code) <= maxSkuLength
	}
}

// DetectType classifies the normalized form of raw into a CodeKind.
// Full UPC-E validation (parity expansion) is not attempted; an 8-digit code
// passes as UPC-E on the simplified rule of a 0/1 number-system digit plus a
// verified check digit.
func DetectType(raw string) domain.CodeKind {
	code := NormalizeCode(raw)
	if code == "" {
		return domain.CodeUnknown
	}

	if !isNumericCode(code) {
		// An ISBN-10 is only non-numeric through its 'X' check character
		if len(code) == 10 && isValidISBN10(code) {
			return domain.CodeIsbn10
		}
		if len(code) >= minSkuLength && len(code) <= maxSkuLength {
			return domain.CodeSku
		}
		return domain.CodeUnknown
	}

	switch len(code) {
	case 8:
		if (code[0] == '0' || code[0] == '1') && hasValidCheckDigit(code) {
			return domain.CodeUpcE
		}
		return domain.CodeEan8
	case 12:
		return domain.CodeUpcA
	case 13:
		if strings.HasPrefix(code, "978") || strings.HasPrefix(code, "979") {
			return domain.CodeIsbn13
		}
		return domain.CodeEan13
	case 14:
		return domain.CodeGtin14
	case 10:
		if isValidISBN10(code) {
			return domain.CodeIsbn10
		}
	}

	if len(code) >= minSkuLength && len(code) <= maxSkuLength {
		return domain.CodeSku
	}
	return domain.CodeUnknown
}

// hasValidCheckDigit verifies the EAN/UPC/GTIN weighted mod-10 checksum:
// digits at even 0-indexed positions weigh 1, odd positions weigh 3, summed
// over all but the last digit; the check digit is (10 - sum mod 10) mod 10.
func hasValidCheckDigit(code string) bool {
	if len(code) < 2 {
		return false
	}

	sum := 0
	for i := 0; i < len(code)-1; i++ {
		digit := int(code[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}

	check := (10 - sum%10) % 10
	return check == int(code[len(code)-1]-'0')
}

// isValidISBN10 verifies the ISBN-10 checksum: the first 9 digits weighted
// 10 down to 2, plus the final character (digit value, or 10 for 'X'), must
// total a multiple of 11.
func isValidISBN10(code string) bool {
	if len(code) != 10 {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
		sum += int(code[i]-'0') * (10 - i)
	}

	last := code[9]
	switch {
	case last == 'X':
		sum += 10
	case last >= '0' && last <= '9':
		sum += int(last - '0')
	default:
		return false
	}

	return sum%11 == 0
}

// isNumericCode checks if a string is non-empty and contains only digits
func isNumericCode(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
