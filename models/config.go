// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Well-known config namespaces.
const (
	// ConfigNameCredentials holds the single credentials record under id "".
	ConfigNameCredentials = "credentials"

	// ConfigNameClient holds client-side settings keyed by setting name.
	ConfigNameClient = "client"

	// ConfigNameChart holds chart layouts keyed by chart name.
	ConfigNameChart = "chart_config"
)

// ConfigKey addresses one row of the configs table.
type ConfigKey struct {
	Name string
	ID   string
}

// CredentialsKey is the location of the credentials record.
var CredentialsKey = ConfigKey{Name: ConfigNameCredentials}

// ClientConfig is a single client-side setting. A nil Value deletes it.
type ClientConfig struct {
	Name  string  `json:"name" validate:"required"`
	Value *string `json:"value"`
}
