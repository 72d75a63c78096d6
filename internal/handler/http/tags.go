// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	req := models.NewTagListRequest()
	if err := decodeBody(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.TagService.ListTags(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, resp)
}
