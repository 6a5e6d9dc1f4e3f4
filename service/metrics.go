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

package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const outcomeSuccess = "success"

// Metrics records account operations
type Metrics struct {
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewMetrics creates the account instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operations, err := meter.Int64Counter("account_operations_total",
		metric.WithDescription("Number of account operations by outcome"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("account_operation_duration_ms",
		metric.WithDescription("Duration of account operations"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Metrics{operations: operations, duration: duration}, nil
}

// Record records one operation started at start that ended with err
func (m *Metrics) Record(ctx context.Context, operation string, start time.Time, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = errorCode(err)
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome))
	m.operations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
}
