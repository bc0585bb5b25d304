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

// Package grpcerrorcodes maps error codes to gRPC status codes and back.
package grpcerrorcodes

import (
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"google.golang.org/grpc/codes"
)

var (
	// CodeToGRPCCode maps all Codes to their corresponding gRPC Code.
	CodeToGRPCCode = map[svcerrors.Code]codes.Code{
		svcerrors.CodeOK:                 codes.OK,
		svcerrors.CodeCancelled:          codes.Canceled,
		svcerrors.CodeUnknown:            codes.Unknown,
		svcerrors.CodeInvalidArgument:    codes.InvalidArgument,
		svcerrors.CodeDeadlineExceeded:   codes.DeadlineExceeded,
		svcerrors.CodeNotFound:           codes.NotFound,
		svcerrors.CodeAlreadyExists:      codes.AlreadyExists,
		svcerrors.CodePermissionDenied:   codes.PermissionDenied,
		svcerrors.CodeResourceExhausted:  codes.ResourceExhausted,
		svcerrors.CodeFailedPrecondition: codes.FailedPrecondition,
		svcerrors.CodeAborted:            codes.Aborted,
		svcerrors.CodeOutOfRange:         codes.OutOfRange,
		svcerrors.CodeUnimplemented:      codes.Unimplemented,
		svcerrors.CodeInternal:           codes.Internal,
		svcerrors.CodeUnavailable:        codes.Unavailable,
		svcerrors.CodeDataLoss:           codes.DataLoss,
		svcerrors.CodeUnauthenticated:    codes.Unauthenticated,
	}

	// GRPCCodeToCode maps all gRPC Codes to their corresponding Code.
	GRPCCodeToCode = map[codes.Code]svcerrors.Code{
		codes.OK:                 svcerrors.CodeOK,
		codes.Canceled:           svcerrors.CodeCancelled,
		codes.Unknown:            svcerrors.CodeUnknown,
		codes.InvalidArgument:    svcerrors.CodeInvalidArgument,
		codes.DeadlineExceeded:   svcerrors.CodeDeadlineExceeded,
		codes.NotFound:           svcerrors.CodeNotFound,
		codes.AlreadyExists:      svcerrors.CodeAlreadyExists,
		codes.PermissionDenied:   svcerrors.CodePermissionDenied,
		codes.ResourceExhausted:  svcerrors.CodeResourceExhausted,
		codes.FailedPrecondition: svcerrors.CodeFailedPrecondition,
		codes.Aborted:            svcerrors.CodeAborted,
		codes.OutOfRange:         svcerrors.CodeOutOfRange,
		codes.Unimplemented:      svcerrors.CodeUnimplemented,
		codes.Internal:           svcerrors.CodeInternal,
		codes.Unavailable:        svcerrors.CodeUnavailable,
		codes.DataLoss:           svcerrors.CodeDataLoss,
		codes.Unauthenticated:    svcerrors.CodeUnauthenticated,
	}
)

// ToGRPC returns the gRPC Code for code, or codes.Unknown.
func ToGRPC(code svcerrors.Code) codes.Code {
	if c, ok := CodeToGRPCCode[code]; ok {
		return c
	}
	return codes.Unknown
}

// FromGRPC returns the Code for the gRPC code c, or CodeUnknown.
func FromGRPC(c codes.Code) svcerrors.Code {
	if code, ok := GRPCCodeToCode[c]; ok {
		return code
	}
	return svcerrors.CodeUnknown
}
