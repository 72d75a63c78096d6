// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

func (h *Handler) saveTransactions(w http.ResponseWriter, r *http.Request) {
	var transactions []models.Transaction
	if err := decodeBody(r, &transactions, false); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.TransactionService.SaveTransactions(r.Context(), transactions)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("func", "*Handler.saveTransactions").Int64("num_affected", resp.NumAffected).Send()
	writeOK(w, r, resp)
}

func (h *Handler) deleteTransactions(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := decodeBody(r, &ids, false); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.TransactionService.DeleteTransactions(r.Context(), ids)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, resp)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	req := models.NewTransactionListRequest()
	if err := decodeBody(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.TransactionService.ListTransactions(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, resp)
}
