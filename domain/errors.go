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
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when the caller violates a precondition.
	// The account is left untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidAmount is returned for a negative amount or an amount with more
	// than two significant decimal places.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrInvalidArgument)

	// ErrInvalidEmail is returned when an email fails IsEmailValid.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", ErrInvalidArgument)

	// ErrInsufficientFunds is returned when a withdrawal or a transfer asks for
	// more than the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
