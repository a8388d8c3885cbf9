// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filmorate/filmorate/internal/middleware"
)

// Router wires handlers and middleware into the HTTP route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil middlewareConfig selects the
// default middleware settings.
func NewRouter(handler *Handler, middlewareConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(middlewareConfig),
	}
}

// Setup configures all HTTP routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health and metrics stay outside the rate limiter so monitoring
	// keeps working under load.
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	// Domain endpoints.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/films", func(r chi.Router) {
			r.Get("/", router.handler.ListFilms)
			r.Post("/", router.handler.CreateFilm)
			r.Put("/", router.handler.UpdateFilm)

			// Must register before /{id} so "popular" is not parsed
			// as a film id.
			r.Get("/popular", router.handler.PopularFilms)

			r.Get("/{id}", router.handler.GetFilm)
			r.Delete("/{id}", router.handler.DeleteFilm)
			r.Put("/{id}/like/{userId}", router.handler.LikeFilm)
			r.Delete("/{id}/like/{userId}", router.handler.UnlikeFilm)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", router.handler.ListUsers)
			r.Post("/", router.handler.CreateUser)
			r.Put("/", router.handler.UpdateUser)

			r.Get("/{id}", router.handler.GetUser)
			r.Delete("/{id}", router.handler.DeleteUser)
			r.Put("/{id}/friends/{friendId}", router.handler.AddFriend)
			r.Delete("/{id}/friends/{friendId}", router.handler.RemoveFriend)
			r.Get("/{id}/friends", router.handler.ListFriends)
			r.Get("/{id}/friends/common/{otherId}", router.handler.CommonFriends)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", router.handler.ListGenres)
			r.Get("/{id}", router.handler.GetGenre)
		})

		r.Route("/mpa", func(r chi.Router) {
			r.Get("/", router.handler.ListMpa)
			r.Get("/{id}", router.handler.GetMpa)
		})
	})

	return r
}
