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

package tchannel

import (
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	"github.com/uber/tchannel-go"
)

var (
	_tchannelCodeToCode = map[tchannel.SystemErrCode]svcerrors.Code{
		tchannel.ErrCodeTimeout:    svcerrors.CodeDeadlineExceeded,
		tchannel.ErrCodeCancelled:  svcerrors.CodeCancelled,
		tchannel.ErrCodeBusy:       svcerrors.CodeResourceExhausted,
		tchannel.ErrCodeDeclined:   svcerrors.CodeUnavailable,
		tchannel.ErrCodeUnexpected: svcerrors.CodeInternal,
		tchannel.ErrCodeBadRequest: svcerrors.CodeInvalidArgument,
		tchannel.ErrCodeNetwork:    svcerrors.CodeUnavailable,
		tchannel.ErrCodeProtocol:   svcerrors.CodeDataLoss,
	}
)

func tchannelCodeToCode(tchannelCode tchannel.SystemErrCode) svcerrors.Code {
	code, ok := _tchannelCodeToCode[tchannelCode]
	if !ok {
		return svcerrors.CodeUnknown
	}
	return code
}

// fromSystemError converts a TChannel system error into a Status.
func fromSystemError(err tchannel.SystemError) error {
	return svcerrors.Newf(tchannelCodeToCode(err.Code()), "%s", err.Message())
}
