// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkotelnikov/stockroom/internal/access"
	"github.com/mkotelnikov/stockroom/internal/platform/middleware"
	requestutil "github.com/mkotelnikov/stockroom/internal/platform/request"
	"github.com/mkotelnikov/stockroom/internal/platform/respond"
	"github.com/mkotelnikov/stockroom/internal/platform/validate"
	"github.com/mkotelnikov/stockroom/pkg/pagination"
)

// Handler implements the product HTTP endpoints.
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

// Routes returns the product router.
//
// # Access Matrix
//   - GET    /      : any authenticated actor (collection-level)
//   - POST   /      : creation guard (admin, or allow-list of the target category)
//   - GET    /{id}  : category allow-list via the access evaluator
//   - PUT    /{id}  : category allow-list via the access evaluator
//   - DELETE /{id}  : category allow-list via the access evaluator
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.authenticate)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
	})

	router.Group(func(r chi.Router) {
		r.Use(access.ProductCreationGuard(handler.evaluator))
		r.Post("/", handler.create)
	})

	router.Group(func(r chi.Router) {
		r.Use(access.ProductGuard(handler.evaluator))
		r.Get("/{id}", handler.get)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CategoryID  *string `json:"categoryId"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"categoryId"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, meta, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, products, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// All field violations are reported together in one response.
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name)
	validator.Custom(FieldQuantity, input.Quantity < 0, "must not be negative")
	validator.NonNegative(FieldPrice, input.Price)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Quantity:    input.Quantity,
		Price:       input.Price,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
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

	product, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Quantity:    input.Quantity,
		Price:       input.Price,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
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
