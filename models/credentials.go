// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Credentials is the persisted secret material of the single user.
//
// Both fields are standard base64. PasswordHashed is an opaque password
// verifier; SigningKey is the MAC key every issued token is bound to.
// The record is replaced as a whole on password change, which
// invalidates all previously issued tokens.
type Credentials struct {
	PasswordHashed string `json:"password_hashed"`
	SigningKey     string `json:"signing_key"`
}

// SignRequest is the body of the login endpoint.
type SignRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of the change-password endpoint.
// A nil or empty NewPassword removes the credentials.
type ChangePasswordRequest struct {
	OldPassword *string `json:"old_password"`
	NewPassword *string `json:"new_password"`
}

// UnmarshalJSON accepts both snake_case and camelCase field names.
func (r *ChangePasswordRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		OldPassword      *string `json:"old_password"`
		NewPassword      *string `json:"new_password"`
		OldPasswordCamel *string `json:"oldPassword"`
		NewPasswordCamel *string `json:"newPassword"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.OldPassword = firstNonNil(raw.OldPassword, raw.OldPasswordCamel)
	r.NewPassword = firstNonNil(raw.NewPassword, raw.NewPasswordCamel)
	return nil
}

// VerifyRequest is the body of the token verification endpoint.
type VerifyRequest struct {
	Token string `json:"token"`
}

// TokenResponse carries a freshly issued session token.
// Token is empty while no credentials are configured.
type TokenResponse struct {
	Token string `json:"token"`
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
