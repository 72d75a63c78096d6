// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP transport until SIGINT, SIGTERM or SIGQUIT
// and then drains in-flight requests before returning.
package server
