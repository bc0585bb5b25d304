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

package svcclient

import (
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/observability"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcconfig"
)

// levels merges the configured log levels over the defaults.
func levels(cfg *svcconfig.Config) *observability.Levels {
	l := observability.DefaultLevels()
	if cfg == nil {
		return &l
	}

	c := cfg.Logging.Levels
	if c.Success != nil {
		l.Success = *c.Success
	}
	if c.Propagated != nil {
		l.Propagated = *c.Propagated
	}
	if c.Swallowed != nil {
		l.Swallowed = *c.Swallowed
	}
	if c.Translated != nil {
		l.Translated = *c.Translated
	}
	return &l
}

func cacheSizes(cfg *svcconfig.Config) (factories, instances int) {
	if cfg == nil {
		return 0, 0
	}
	return cfg.Cache.Factories, cfg.Cache.Instances
}
