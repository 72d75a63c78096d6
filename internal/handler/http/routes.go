// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.authGate)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// session
		r.Post("/api/sign", h.sign)
		r.Post("/api/changePassword", h.changePassword)
		r.Post("/api/refreshToken", h.refreshToken)
		r.Post("/api/verify", h.verify)

		r.Get("/api/version", h.getServerVersion)

		r.Get("/api/config/{name}", h.getClientConfig)
		r.Post("/api/config", h.setClientConfig)

		r.Post("/api/attachments", h.uploadAttachments)
		r.Post("/api/attachments/list", h.listAttachments)
		r.Post("/api/attachments/cleanup", h.cleanupAttachments)

		r.Post("/api/transactions", h.saveTransactions)
		r.Delete("/api/transactions", h.deleteTransactions)
		r.Post("/api/transactions/list", h.listTransactions)

		r.Post("/api/tags/list", h.listTags)

		r.Post("/api/accounts/list", h.listAccounts)
		r.Get("/api/accountGroups", h.listAccountGroups)
		r.Post("/api/accountGroups", h.saveAccountGroups)
		r.Delete("/api/accountGroups", h.deleteAccountGroups)

		r.Get("/api/chartConfig/{name}", h.getChartConfig)
		r.Post("/api/chartConfig", h.saveChartConfig)
	})

	router.Group(func(r chi.Router) {
		r.Use(withContentHashETag)

		// signed asset urls, authorized by the token itself
		r.Get("/attachment", h.downloadAttachment)
		r.Get("/attachment/{token}", h.downloadAttachment)

		// session holders may fetch by plain id
		r.Get("/api/attachments/{id}", h.getAttachment)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
