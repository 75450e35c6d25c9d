// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkotelnikov/stockroom/internal/access"
	"github.com/mkotelnikov/stockroom/internal/platform/middleware"
	requestutil "github.com/mkotelnikov/stockroom/internal/platform/request"
	"github.com/mkotelnikov/stockroom/internal/platform/respond"
	"github.com/mkotelnikov/stockroom/internal/platform/validate"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	service      *Service
	evaluator    *access.Evaluator
	authenticate func(http.Handler) http.Handler
}

func NewHandler(service *Service, evaluator *access.Evaluator, authenticate func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:      service,
		evaluator:    evaluator,
		authenticate: authenticate,
	}
}

// Routes returns the category router.
//
// # Access Matrix
//   - GET    /      : any authenticated actor (collection-level)
//   - POST   /      : admin only
//   - GET    /{id}  : allow-list via the access evaluator
//   - PUT    /{id}  : allow-list via the access evaluator
//   - DELETE /{id}  : admin only
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.authenticate)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", handler.create)
		r.Delete("/{id}", handler.delete)
	})

	router.Group(func(r chi.Router) {
		r.Use(access.CategoryGuard(handler.evaluator))
		r.Get("/{id}", handler.get)
		r.Put("/{id}", handler.update)
	})

	return router
}

type createRequest struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	AllowedGroups []string `json:"allowedGroups"`
}

type updateRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	AllowedGroups *[]string `json:"allowedGroups"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Create(request.Context(), CreateInput{
		Name:          input.Name,
		Description:   input.Description,
		AllowedGroups: input.AllowedGroups,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:          input.Name,
		Description:   input.Description,
		AllowedGroups: input.AllowedGroups,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
