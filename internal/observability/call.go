// Copyright (c) 2026 askguanyu
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package observability

import (
	"time"

	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"go.uber.org/zap"
)

const (
	_successfulCall = "Made proxy call."
	_failedCall     = "Error making proxy call."
)

// A Call represents a single proxy call along an edge.
//
// It's a value instead of a pointer to keep the call path off the heap.
type Call struct {
	edge    *Edge
	started time.Time
}

// Success ends the call as successful.
func (c Call) Success() {
	elapsed := _timeNow().Sub(c.started)
	c.edge.latency.Record(elapsed)
	c.edge.successes.Inc(1)

	if ce := c.edge.logger.Check(c.edge.levels.Success, _successfulCall); ce != nil {
		ce.Write(zap.Duration("latency", elapsed))
	}
}

// Fault ends the call as failed with err, handled as the outcome says.
// returned is the error the caller sees, if it differs from err.
func (c Call) Fault(err error, outcome Outcome, returned error) {
	elapsed := _timeNow().Sub(c.started)
	c.edge.latency.Record(elapsed)
	c.edge.faults[outcome].Inc(1)

	ce := c.edge.logger.Check(c.edge.levels.of(outcome), _failedCall)
	if ce == nil {
		return
	}

	st := svcerrors.FromError(err)
	fields := []zap.Field{
		zap.Duration("latency", elapsed),
		zap.String(_outcome, string(outcome)),
		zap.String("errorCode", st.Code().String()),
		zap.Error(err),
	}
	if st.Name() != "" {
		fields = append(fields, zap.String("errorName", st.Name()))
	}
	if returned != nil && returned != err {
		fields = append(fields, zap.NamedError("returnedError", returned))
	}
	ce.Write(fields...)
}
