// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/utils"
)

// decodeBody reads the JSON body into dst. With allowEmpty an absent body
// leaves dst untouched.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	err := utils.ReadJSON(r, dst)
	switch {
	case err == nil:
		return nil
	case allowEmpty && errors.Is(err, utils.ErrEmptyBody):
		return nil
	default:
		return badRequest(fmt.Errorf("%w: %w", errInvalidJSON, err), errInvalidJSON.Error())
	}
}

func writeOK(w http.ResponseWriter, r *http.Request, data any) {
	if _, err := utils.WriteJSON(w, data, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write response")
	}
}
