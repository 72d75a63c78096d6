// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the ledger.
//
// It wires the chi router, decodes JSON bodies, maps classified service
// errors to status codes and carries the cross-cutting middleware: trace
// ids, access logging, the session gate in front of /api, response
// compression and conditional GET for attachment downloads.
package http
