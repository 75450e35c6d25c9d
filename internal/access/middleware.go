// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package access

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/internal/platform/ctxutil"
	"github.com/mkotelnikov/stockroom/internal/platform/respond"
	"github.com/mkotelnikov/stockroom/internal/platform/validate"
)

// maxGuardBodySize bounds how much of a request body the creation guard will
// buffer while peeking at the category reference.
const maxGuardBodySize = 1 << 20

// CategoryGuard returns middleware that evaluates access to the category
// addressed by the {id} URL parameter.
//
// # Usage
//
// Mount on item-level category routes AFTER the authentication middleware.
func CategoryGuard(evaluator *Evaluator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetActor(request.Context())
			categoryID := chi.URLParam(request, "id")

			if err := evaluator.CategoryAccess(request.Context(), actor, categoryID); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// ProductGuard returns middleware that evaluates access to the product
// addressed by the {id} URL parameter.
//
// # Usage
//
// Mount on item-level product routes AFTER the authentication middleware.
func ProductGuard(evaluator *Evaluator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetActor(request.Context())
			productID := chi.URLParam(request, "id")

			if err := evaluator.ProductAccess(request.Context(), actor, productID); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// creationProbe is the minimal body shape the creation guard peeks at.
type creationProbe struct {
	CategoryID *string `json:"categoryId"`
}

// ProductCreationGuard returns middleware that evaluates product-creation
// access from the category reference inside the request body.
//
// # Body Handling
//
// The guard buffers the body to peek at categoryId and then restores it, so
// the downstream handler decodes the request as if nothing happened.
func ProductCreationGuard(evaluator *Evaluator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetActor(request.Context())

			bodyBytes, err := io.ReadAll(io.LimitReader(request.Body, maxGuardBodySize))
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			_ = request.Body.Close()
			request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			var probe creationProbe
			if err := json.Unmarshal(bodyBytes, &probe); err != nil {
				respond.Error(writer, request, apperr.ValidationError(validate.ErrInvalidJSON.Error()))
				return
			}

			if err := evaluator.ProductCreation(request.Context(), actor, probe.CategoryID); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
