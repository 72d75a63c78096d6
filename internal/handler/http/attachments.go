// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

const (
	uploadFormField = "file"

	// 31 days
	attachmentCacheControl = "max-age=2678400"

	multipartMemory = 8 << 20
)

// uploadAttachments stores every part named "file" and returns their ids
// in upload order.
func (h *Handler) uploadAttachments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.uploadLimit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.uploadLimit)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, badRequest(fmt.Errorf("%w: %w", errUploadTooLarge, err), errUploadTooLarge.Error()))
			return
		}
		writeError(w, r, badRequest(fmt.Errorf("%w: %w", errInvalidMultipart, err), errInvalidMultipart.Error()))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[uploadFormField]
	if len(headers) == 0 {
		writeError(w, r, badRequest(errMissingFile, errMissingFile.Error()))
		return
	}

	uploads := make([]models.AttachmentUpload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			log.Err(err).Str("func", "*Handler.uploadAttachments").Str("file", header.Filename).Msg("failed to read upload")
			writeError(w, r, badRequest(err, errReadingUploadFile.Error()))
			return
		}
		uploads = append(uploads, upload)
	}

	refs, err := h.services.AttachmentService.SaveAttachments(r.Context(), uploads...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, refs)
}

func readUpload(header *multipart.FileHeader) (models.AttachmentUpload, error) {
	file, err := header.Open()
	if err != nil {
		return models.AttachmentUpload{}, fmt.Errorf("%w: %w", errReadingUploadFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.AttachmentUpload{}, fmt.Errorf("%w: %w", errReadingUploadFile, err)
	}

	return models.AttachmentUpload{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func (h *Handler) listAttachments(w http.ResponseWriter, r *http.Request) {
	req := models.NewAttachmentListRequest()
	if err := decodeBody(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AttachmentService.ListAttachments(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, resp)
}

func (h *Handler) cleanupAttachments(w http.ResponseWriter, r *http.Request) {
	var req models.CleanupRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.services.AttachmentService.CleanupAttachments(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("func", "*Handler.cleanupAttachments").Int64("num_affected", resp.NumAffected).Msg("attachments cleaned up")
	writeOK(w, r, resp)
}

// downloadAttachment serves /attachment/{token} and /attachment?token=.
// The token is a signed asset id; anything else answers 404.
func (h *Handler) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if param := chi.URLParam(r, "token"); param != "" {
		unescaped, err := url.PathUnescape(param)
		if err != nil {
			writeError(w, r, badRequest(err, "malformed attachment token"))
			return
		}
		token = unescaped
	}

	content, err := h.services.AttachmentService.GetAttachment(r.Context(), token, previewWidth(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeAttachment(w, r, content)
}

// getAttachment serves /api/attachments/{id} to session holders.
func (h *Handler) getAttachment(w http.ResponseWriter, r *http.Request) {
	content, err := h.services.AttachmentService.GetAttachmentByID(r.Context(), chi.URLParam(r, "id"), previewWidth(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeAttachment(w, r, content)
}

// previewWidth reads ?preview=; invalid values mean no preview.
func previewWidth(r *http.Request) int {
	width, _ := strconv.Atoi(r.URL.Query().Get("preview"))
	return width
}

func writeAttachment(w http.ResponseWriter, r *http.Request, content models.AttachmentContent) {
	w.Header().Set("Content-Type", content.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.Header().Set("Cache-Control", attachmentCacheControl)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content.Data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeAttachment").Msg("failed to write attachment")
	}
}
