// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ChartConfig is the opaque layout of one client chart. A chart that was
// never saved has an empty Config.
type ChartConfig struct {
	Name   string `json:"name" validate:"required,max=256"`
	Config string `json:"config"`
}
