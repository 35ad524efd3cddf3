package socket

import (
	"strconv"
	"strings"
)

const (
	ipv4LenMin = len("0.0.0.0")
	ipv4LenMax = len("255.255.255.255")
	ipv4RunMax = 3
)

// IsIPv4Literal reports whether s has the shape of a dotted-decimal IPv4
// address: 7 to 15 bytes, digit runs of one to three digits, and nothing but
// '.' between runs.
//
// The number of dots is not checked and octet values are not range-checked,
// so "12.34.567" and "999.999.999.999" are accepted. A trailing dot is
// accepted as well ("1.2.3.4."); a leading or doubled dot is not, because it
// produces an empty digit run.
func IsIPv4Literal(s string) bool {
	if len(s) < ipv4LenMin || len(s) > ipv4LenMax {
		return false
	}

	// minRun starts at ipv4RunMax, not at the length of the first run.
	minRun, maxRun := ipv4RunMax, 0
	for i := 0; i < len(s); i++ {
		run := 0
		for i < len(s) && isDigit(s[i]) {
			run++
			i++
		}
		maxRun = max(maxRun, run)
		minRun = min(minRun, run)

		if i < len(s) && s[i] != '.' {
			return false
		}
	}

	return maxRun <= ipv4RunMax && minRun >= 1
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// TrimSpace removes the leading and trailing ASCII whitespace that
// BindConnection strips before validating an address.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// IPv4ToUint32 converts a literal accepted by IsIPv4Literal into its
// host-order value: the first octet is the most significant byte.
//
// No validation is repeated. Up to four '.'-separated segments are parsed;
// a segment that does not parse counts as 0, missing segments are 0, and
// values above 255 keep only their low byte.
func IPv4ToUint32(s string) uint32 {
	var v uint32
	segments := strings.Split(s, ".")
	for i := 0; i < 4; i++ {
		var n int
		if i < len(segments) {
			n, _ = strconv.Atoi(segments[i])
		}
		v = v<<8 | uint32(byte(n))
	}
	return v
}
