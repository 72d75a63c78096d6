// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

func (h *Handler) getClientConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.services.ClientConfigService.GetClientConfig(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, cfg)
}

func (h *Handler) setClientConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.ClientConfig
	if err := decodeBody(r, &cfg, false); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.ClientConfigService.SetClientConfig(r.Context(), cfg); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, cfg)
}
