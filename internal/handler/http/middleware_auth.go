// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
)

const (
	apiPrefix   = "/api"
	signInPath  = "/api/sign"
	bearer      = "Bearer"
	tokenQuery  = "token"
	authzHeader = "Authorization"
)

// authGate enforces a session token on /api routes.
//
// Requests outside /api, the sign-in route and CORS preflights pass
// untouched. Everything else must carry a session token either in the
// "Authorization: Bearer <token>" header or in the "token" query
// parameter; the header wins when both are present. The decision itself
// is [service.AuthService.Authorize], which admits every request while no
// password is configured.
//
// A rejected request gets 401 with an "unauthenticated" error body.
func (h *Handler) authGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requiresSession(r) {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		token, err := tokenFromRequest(r)
		if err != nil {
			// malformed credentials count as none, open access still applies
			log.Debug().Err(err).Str("func", "*Handler.authGate").Send()
		}

		if err = h.services.AuthService.Authorize(r.Context(), token); err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requiresSession(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return false
	}

	path := r.URL.Path
	if path != apiPrefix && !strings.HasPrefix(path, apiPrefix+"/") {
		return false
	}
	return path != signInPath
}

// tokenFromRequest returns the bearer token of r, falling back to the
// token query parameter. No token at all is not an error.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get(authzHeader); header != "" {
		return getTokenFromAuthHeader(header)
	}
	return r.URL.Query().Get(tokenQuery), nil
}

// getTokenFromAuthHeader extracts the token from a raw "Authorization"
// header value of the form "Bearer <token>". The scheme is matched
// case-insensitively.
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader]: the scheme is not Bearer or the
//     token part is missing entirely.
//   - [ErrEmptyToken]: the token part is blank.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimLeft(authHeader, " "), " ")
	if !found || !strings.EqualFold(scheme, bearer) {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
