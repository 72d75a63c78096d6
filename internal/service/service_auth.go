// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-ledger-keeper/internal/apperr"
	"github.com/MKhiriev/go-ledger-keeper/internal/config"
	"github.com/MKhiriev/go-ledger-keeper/internal/crypto"
	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/internal/store"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// authService is the concrete implementation of AuthService.
// The credentials record is read from the config store on every call, so
// a password change takes effect for all requests at once and old tokens
// stop verifying as soon as the new signing key is committed.
type authService struct {
	configRepository store.ConfigRepository
	keyChain         crypto.KeyChain
	codec            *crypto.TokenCodec

	// sessionTTL controls how long a newly issued session token remains valid.
	sessionTTL time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the credentials record in
// configRepository.
func NewAuthService(configRepository store.ConfigRepository, keyChain crypto.KeyChain, codec *crypto.TokenCodec, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		configRepository: configRepository,
		keyChain:         keyChain,
		codec:            codec,
		sessionTTL:       cfg.SessionTokenDuration,
		logger:           logger,
	}
}

func (a *authService) Credentials(ctx context.Context) (*models.Credentials, error) {
	creds, found, err := store.GetConfigJSON[models.Credentials](ctx, a.configRepository, models.CredentialsKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.Credentials").Msg("failed to load credentials")
		return nil, toAppError(err)
	}
	if !found {
		return nil, nil
	}
	return &creds, nil
}

// SignIn fails with InvalidCredentials when no password is set: there is
// nothing to sign in to.
func (a *authService) SignIn(ctx context.Context, password string) (string, error) {
	log := logger.FromContext(ctx)

	creds, err := a.Credentials(ctx)
	if err != nil {
		return "", err
	}
	if creds == nil || !a.keyChain.VerifyPassword(*creds, password) {
		log.Info().Str("func", "authService.SignIn").Msg("sign in rejected")
		return "", errWrongPassword
	}

	token, err := a.codec.SignSession(creds, a.sessionTTL)
	if err != nil {
		log.Err(err).Str("func", "authService.SignIn").Msg("failed to sign session token")
		return "", toAppError(err)
	}

	return token, nil
}

// ChangePassword runs the whole check-and-replace in one config store
// transaction, so two concurrent changes cannot both pass the old
// password check.
func (a *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (string, error) {
	log := logger.FromContext(ctx)

	token, err := store.UpdateConfig(ctx, a.configRepository, models.CredentialsKey,
		func(current *string) (string, store.ConfigWrite, error) {
			if current != nil {
				var creds models.Credentials
				if err := json.Unmarshal([]byte(*current), &creds); err != nil {
					return "", store.ConfigWrite{}, apperr.Wrap(apperr.KindDecode, err, "stored credentials are corrupted")
				}
				if !a.keyChain.VerifyPassword(creds, deref(req.OldPassword)) {
					return "", store.ConfigWrite{}, errWrongPassword
				}
			}

			newPassword := deref(req.NewPassword)
			if newPassword == "" {
				return "", store.DeleteConfig(), nil
			}

			creds, err := a.keyChain.NewCredentials(newPassword)
			if err != nil {
				return "", store.ConfigWrite{}, apperr.Wrap(apperr.KindStorage, err, "failed to generate credentials")
			}
			write, err := store.PutConfigJSON(creds)
			if err != nil {
				return "", store.ConfigWrite{}, err
			}
			token, err := a.codec.SignSession(&creds, a.sessionTTL)
			if err != nil {
				return "", store.ConfigWrite{}, err
			}

			return token, write, nil
		})
	if err != nil {
		log.Err(err).Str("func", "authService.ChangePassword").Msg("password change failed")
		return "", toAppError(err)
	}

	if token == "" {
		log.Warn().Str("func", "authService.ChangePassword").Msg("password removed, API is open")
	} else {
		log.Info().Str("func", "authService.ChangePassword").Msg("password changed")
	}
	return token, nil
}

func (a *authService) RefreshToken(ctx context.Context) (string, error) {
	creds, err := a.Credentials(ctx)
	if err != nil || creds == nil {
		return "", err
	}

	token, err := a.codec.SignSession(creds, a.sessionTTL)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.RefreshToken").Msg("failed to sign session token")
		return "", toAppError(err)
	}
	return token, nil
}

func (a *authService) VerifyToken(ctx context.Context, token string) (bool, error) {
	creds, err := a.Credentials(ctx)
	if err != nil {
		return false, err
	}
	if creds == nil {
		return true, nil
	}
	return a.codec.VerifySession(creds, token) == nil, nil
}

func (a *authService) Authorize(ctx context.Context, token string) error {
	creds, err := a.Credentials(ctx)
	if err != nil || creds == nil {
		return err
	}

	if err = a.codec.VerifySession(creds, token); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.Authorize").Msg("token rejected")
		return errUnauthenticated
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
