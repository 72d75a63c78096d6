// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-keeper/internal/apperr"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/utils"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

var errorStatusMap = map[apperr.Kind]int{
	apperr.KindInvalidArgument:    http.StatusBadRequest,
	apperr.KindInvalidCredentials: http.StatusForbidden,
	apperr.KindUnauthenticated:    http.StatusUnauthorized,
	apperr.KindNotFound:           http.StatusNotFound,
	apperr.KindStorage:            http.StatusInternalServerError,
	apperr.KindDecode:             http.StatusInternalServerError,
}

func statusFromError(err error) int {
	if status, ok := errorStatusMap[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError renders err as {"name", "message"}. Unclassified errors are
// reported as storage failures without their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{
		Name:    apperr.KindOf(err).String(),
		Message: apperr.MessageOf(err),
	}, status)
}

func badRequest(cause error, message string) error {
	return apperr.Wrap(apperr.KindInvalidArgument, cause, message)
}
