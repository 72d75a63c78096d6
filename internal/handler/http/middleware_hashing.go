// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/utils"
)

// withContentHashETag tags successful responses with an ETag derived from
// the sha256 of the body, and answers 304 Not Modified when the request's
// If-None-Match already names it.
//
// The body is buffered, so the middleware belongs on routes serving whole
// files, not on streaming ones.
func withContentHashETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := &bufferedResponseWriter{header: make(http.Header)}
		next.ServeHTTP(buf, r)

		for key, values := range buf.header {
			w.Header()[key] = values
		}

		if buf.status() != http.StatusOK {
			w.WriteHeader(buf.status())
			w.Write(buf.body.Bytes())
			return
		}

		etag := strconv.Quote(utils.ContentHashString(buf.body.Bytes()))
		w.Header().Set("ETag", etag)

		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			logger.FromRequest(r).Debug().Str("func", "withContentHashETag").Str("etag", etag).Msg("not modified")
			w.Header().Del("Content-Length")
			w.Header().Del("Content-Type")
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write(buf.body.Bytes())
	})
}

// etagMatches implements the weak comparison of If-None-Match.
func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// bufferedResponseWriter holds a whole response until the handler returns.
type bufferedResponseWriter struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func (b *bufferedResponseWriter) Header() http.Header {
	return b.header
}

func (b *bufferedResponseWriter) WriteHeader(statusCode int) {
	if b.code == 0 {
		b.code = statusCode
	}
}

func (b *bufferedResponseWriter) Write(p []byte) (int, error) {
	if b.code == 0 {
		b.code = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponseWriter) status() int {
	if b.code == 0 {
		return http.StatusOK
	}
	return b.code
}
