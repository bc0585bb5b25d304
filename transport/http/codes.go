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

package http

import "github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"

var (
	// _codeToStatusCode maps all Codes to their corresponding HTTP status code.
	_codeToStatusCode = map[svcerrors.Code]int{
		svcerrors.CodeOK:                 200,
		svcerrors.CodeCancelled:          499,
		svcerrors.CodeUnknown:            500,
		svcerrors.CodeInvalidArgument:    400,
		svcerrors.CodeDeadlineExceeded:   504,
		svcerrors.CodeNotFound:           404,
		svcerrors.CodeAlreadyExists:      409,
		svcerrors.CodePermissionDenied:   403,
		svcerrors.CodeResourceExhausted:  429,
		svcerrors.CodeFailedPrecondition: 400,
		svcerrors.CodeAborted:            409,
		svcerrors.CodeOutOfRange:         400,
		svcerrors.CodeUnimplemented:      501,
		svcerrors.CodeInternal:           500,
		svcerrors.CodeUnavailable:        503,
		svcerrors.CodeDataLoss:           500,
		svcerrors.CodeUnauthenticated:    401,
	}

	// _statusCodeToCodes maps HTTP status codes to a slice of their corresponding Codes.
	_statusCodeToCodes = map[int][]svcerrors.Code{
		200: {svcerrors.CodeOK},
		400: {
			svcerrors.CodeInvalidArgument,
			svcerrors.CodeFailedPrecondition,
			svcerrors.CodeOutOfRange,
		},
		401: {svcerrors.CodeUnauthenticated},
		403: {svcerrors.CodePermissionDenied},
		404: {svcerrors.CodeNotFound},
		409: {
			svcerrors.CodeAborted,
			svcerrors.CodeAlreadyExists,
		},
		429: {svcerrors.CodeResourceExhausted},
		499: {svcerrors.CodeCancelled},
		500: {
			svcerrors.CodeUnknown,
			svcerrors.CodeInternal,
			svcerrors.CodeDataLoss,
		},
		501: {svcerrors.CodeUnimplemented},
		503: {svcerrors.CodeUnavailable},
		504: {svcerrors.CodeDeadlineExceeded},
	}
)

// statusCodeToBestCode does a best-effort conversion from the given HTTP status
// code to a Code.
//
// If one Code maps to the given HTTP status code, that Code is returned.
// If more than one Code maps to the given HTTP status Code, one Code is returned.
// If the Code is >=400 and < 500, svcerrors.CodeInvalidArgument is returned.
// Else, svcerrors.CodeUnknown is returned.
func statusCodeToBestCode(statusCode int) svcerrors.Code {
	codes, ok := _statusCodeToCodes[statusCode]
	if !ok || len(codes) == 0 {
		if statusCode >= 400 && statusCode < 500 {
			return svcerrors.CodeInvalidArgument
		}
		return svcerrors.CodeUnknown
	}
	return codes[0]
}

func codeToStatusCode(code svcerrors.Code) int {
	if statusCode, ok := _codeToStatusCode[code]; ok {
		return statusCode
	}
	return 500
}
