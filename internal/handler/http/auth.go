// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

func (h *Handler) sign(w http.ResponseWriter, r *http.Request) {
	var req models.SignRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.SignIn(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("func", "*Handler.sign").Msg("signed in")
	writeOK(w, r, models.TokenResponse{Token: token})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.ChangePassword(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, models.TokenResponse{Token: token})
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.services.AuthService.RefreshToken(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, models.TokenResponse{Token: token})
}

// verify reports whether the token in the body would pass the session gate.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := h.services.AuthService.VerifyToken(r.Context(), req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, ok)
}
