// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

func (h *Handler) getChartConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.services.ChartConfigService.GetChartConfig(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, cfg)
}

func (h *Handler) saveChartConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.ChartConfig
	if err := decodeBody(r, &cfg, false); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.services.ChartConfigService.SaveChartConfig(r.Context(), cfg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, saved)
}
