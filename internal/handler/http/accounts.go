// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	req := models.NewAccountListRequest()
	if err := decodeBody(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AccountService.ListAccounts(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, resp)
}

func (h *Handler) listAccountGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.services.AccountService.ListAccountGroups(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, groups)
}

func (h *Handler) saveAccountGroups(w http.ResponseWriter, r *http.Request) {
	var groups []models.AccountGroup
	if err := decodeBody(r, &groups, false); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AccountService.SaveAccountGroups(r.Context(), groups)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, resp)
}

// deleteAccountGroups takes a JSON array of group names.
func (h *Handler) deleteAccountGroups(w http.ResponseWriter, r *http.Request) {
	var names []string
	if err := decodeBody(r, &names, false); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AccountService.DeleteAccountGroups(r.Context(), names)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, resp)
}
