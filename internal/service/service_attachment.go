// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/crypto"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/internal/thumbnail"
	"github.com/MKhiriev/go-ledger-keeper/internal/utils"
	"github.com/MKhiriev/go-ledger-keeper/internal/validators"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

const genericMimeType = "application/octet-stream"

type attachmentService struct {
	attachmentRepository store.AttachmentRepository
	credentials          CredentialsProvider
	signer               *crypto.AssetSigner
	thumbnailer          thumbnail.Thumbnailer
	ids                  utils.IDGenerator
	validator            validators.Validator
	now                  func() time.Time

	previewMaxWidth int

	logger *logger.Logger
}

// NewAttachmentService constructs an AttachmentService. Signed ids are
// issued with the credentials returned by credentials at request time.
func NewAttachmentService(
	attachmentRepository store.AttachmentRepository,
	credentials CredentialsProvider,
	signer *crypto.AssetSigner,
	thumbnailer thumbnail.Thumbnailer,
	ids utils.IDGenerator,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) AttachmentService {
	return &attachmentService{
		attachmentRepository: attachmentRepository,
		credentials:          credentials,
		signer:               signer,
		thumbnailer:          thumbnailer,
		ids:                  ids,
		validator:            validator,
		now:                  time.Now,
		previewMaxWidth:      cfg.PreviewMaxWidth,
		logger:               logger,
	}
}

// SaveAttachments stores every upload and returns one ref per upload, in
// order. Identical content resolves to the id it was first stored under.
func (s *attachmentService) SaveAttachments(ctx context.Context, uploads ...models.AttachmentUpload) ([]models.AttachmentRef, error) {
	log := logger.FromContext(ctx)

	refs := make([]models.AttachmentRef, 0, len(uploads))
	for _, upload := range uploads {
		if strings.TrimSpace(upload.Name) == "" {
			return nil, errEmptyAttachmentName
		}
		if len(upload.Data) == 0 {
			return nil, errEmptyAttachmentData
		}

		// oversized images are stored scaled down
		content := s.thumbnailer.Shrink(models.AttachmentContent{
			MimeType: upload.MimeType,
			Data:     upload.Data,
		}, thumbnail.DefaultMaxUploadSide)

		mimeType := content.MimeType
		if mimeType == "" || strings.HasPrefix(mimeType, genericMimeType) {
			mimeType = mimetype.Detect(content.Data).String()
		}

		now := s.now().UTC()
		id, err := s.attachmentRepository.SaveAttachment(ctx, models.Attachment{
			ID:        s.ids.Generate(),
			MimeType:  mimeType,
			Name:      upload.Name,
			CreatedAt: now,
			UpdatedAt: now,
			DataHash:  utils.ContentHash(content.Data),
			Data:      content.Data,
		})
		if err != nil {
			log.Err(err).Str("func", "attachmentService.SaveAttachments").Str("name", upload.Name).Msg("failed to save attachment")
			return nil, toAppError(err)
		}

		log.Debug().Str("func", "attachmentService.SaveAttachments").Str("id", id).Str("mime_type", mimeType).Msg("attachment saved")
		refs = append(refs, models.AttachmentRef{ID: id})
	}

	return refs, nil
}

func (s *attachmentService) ListAttachments(ctx context.Context, req models.AttachmentListRequest) (models.PaginatedResponse[models.AttachmentListItem], error) {
	var resp models.PaginatedResponse[models.AttachmentListItem]

	if err := s.validator.Validate(ctx, req); err != nil {
		return resp, toAppError(err)
	}

	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		return resp, err
	}

	page, err := s.attachmentRepository.ListAttachments(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "attachmentService.ListAttachments").Msg("failed to list attachments")
		return resp, toAppError(err)
	}

	resp.Total = page.Total
	resp.Data = make([]models.AttachmentListItem, 0, len(page.Data))
	for _, attachment := range page.Data {
		signedID, err := s.signer.SignAsset(creds, models.AssetKindAttachments, attachment.ID)
		if err != nil {
			return models.PaginatedResponse[models.AttachmentListItem]{}, toAppError(err)
		}
		resp.Data = append(resp.Data, models.AttachmentListItem{Attachment: attachment, SignedID: signedID})
	}

	return resp, nil
}

// GetAttachment reports a forged, expired or foreign token the same way as
// a missing attachment.
func (s *attachmentService) GetAttachment(ctx context.Context, signedID string, previewWidth int) (models.AttachmentContent, error) {
	log := logger.FromContext(ctx)

	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		return models.AttachmentContent{}, err
	}

	id, err := s.signer.VerifyAsset(creds, signedID, models.AssetKindAttachments)
	if err != nil {
		log.Debug().Err(err).Str("func", "attachmentService.GetAttachment").Msg("asset token rejected")
		return models.AttachmentContent{}, errAttachmentNotFound
	}

	return s.GetAttachmentByID(ctx, id, previewWidth)
}

// GetAttachmentByID serves an attachment to a caller that already passed
// the session check.
func (s *attachmentService) GetAttachmentByID(ctx context.Context, id string, previewWidth int) (models.AttachmentContent, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(id) == "" {
		return models.AttachmentContent{}, errAttachmentNotFound
	}

	content, err := s.attachmentRepository.GetAttachmentContent(ctx, id)
	if err != nil {
		return models.AttachmentContent{}, toAppError(err)
	}

	if previewWidth <= 0 || !thumbnail.IsPreviewable(content.MimeType) {
		return content, nil
	}

	if s.previewMaxWidth > 0 {
		previewWidth = min(previewWidth, s.previewMaxWidth)
	}
	preview, err := s.thumbnailer.Preview(content, previewWidth)
	if err != nil {
		log.Debug().Err(err).Str("func", "attachmentService.GetAttachment").Str("id", id).Msg("serving original instead of preview")
		return content, nil
	}

	return preview, nil
}

func (s *attachmentService) CleanupAttachments(ctx context.Context, req models.CleanupRequest) (models.AffectedResponse, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.AffectedResponse{}, toAppError(err)
	}

	keepDays := models.DefaultKeepDays
	if req.KeepDays != nil {
		keepDays = *req.KeepDays
	}

	n, err := s.attachmentRepository.DeleteUnreferencedAttachments(ctx, s.now().AddDate(0, 0, -keepDays))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "attachmentService.CleanupAttachments").Msg("cleanup failed")
		return models.AffectedResponse{}, toAppError(err)
	}

	return models.AffectedResponse{NumAffected: n}, nil
}
