// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// amountPlaces is the number of fractional digits an amount may carry
const amountPlaces = 2

// IsEmailValid reports whether email belongs to the restricted ASCII subset
// accepted as an account identifier. It is not an RFC 5322 validator.
func IsEmailValid(email string) bool {
	if email == "" {
		return false
	}

	// exactly one @
	at := strings.IndexByte(email, '@')
	if at == -1 || at != strings.LastIndexByte(email, '@') {
		return false
	}

	prefix := email[:at]
	domain := email[at+1:]

	// the dot rules can never fire once the character rule below forbids dots,
	// they are kept so both rules keep rejecting the same inputs.
	if prefix == "" ||
		strings.HasPrefix(prefix, ".") ||
		strings.HasSuffix(prefix, ".") ||
		strings.Contains(prefix, "..") {
		return false
	}

	for i := 0; i < len(prefix); i++ {
		if !isASCIIAlphanumeric(prefix[i]) {
			return false
		}
	}

	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return strings.IndexFunc(email, unicode.IsSpace) == -1
}

// IsAmountValid reports whether amount is non-negative and carries at most two
// significant decimal places. Trailing zeros beyond the second place are
// accepted since they do not change the value. Zero is valid.
func IsAmountValid(amount decimal.Decimal) bool {
	if amount.IsNegative() {
		return false
	}
	return amount.Equal(amount.Truncate(amountPlaces))
}

func isASCIIAlphanumeric(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
