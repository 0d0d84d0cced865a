/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/oapi-codegen/runtime"
)

// Messages returned by the service for each rejection.
const (
	MessageLoginTaken          = "this login is already in use"
	MessageNotEnoughData       = "not enough data to create account"
	MessageNotEnoughDataDelete = "not enough data to delete courier"
	MessageNotEnoughDataLogin  = "not enough data to log in"
	MessageCourierNotFound     = "no courier with this id"
	MessageAccountNotFound     = "account not found"
	MessageRouteNotFound       = "route not found"
	MessageInternalError       = "internal server error"
)

// Options alters the behaviour of the stub service.
type Options struct {
	// LoginTakenMessage overrides MessageLoginTaken.
	LoginTakenMessage string
	// NotEnoughDataMessage overrides MessageNotEnoughData.
	NotEnoughDataMessage string
	// EchoID includes the new identifier in creation responses.  The real
	// service does not, clients have to log in to learn it.
	EchoID bool
}

// Server serves the courier API from a Store.
type Server struct {
	logger  logr.Logger
	store   Store
	options Options
}

func New(logger logr.Logger, store Store, options Options) *Server {
	if options.LoginTakenMessage == "" {
		options.LoginTakenMessage = MessageLoginTaken
	}

	if options.NotEnoughDataMessage == "" {
		options.NotEnoughDataMessage = MessageNotEnoughData
	}

	return &Server{
		logger:  logger,
		store:   store,
		options: options,
	}
}

// Handler returns the routed service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Route("/api/v1/courier", func(r chi.Router) {
		r.Post("/", s.createCourier)
		r.Delete("/", s.deleteCourierWithoutID)
		r.Post("/login", s.loginCourier)
		r.Delete("/{id}", s.deleteCourier)
	})

	r.NotFound(s.notFound)

	return r
}

type createRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type okResponse struct {
	OK bool   `json:"ok"`
	ID *int64 `json:"id,omitempty"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(err, "encoding response", "requestID", middleware.GetReqID(r.Context()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.logger.V(1).Info("request rejected", "requestID", middleware.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path, "status", status, "message", message)
	s.writeJSON(w, r, status, &errorResponse{Code: status, Message: message})
}

func (s *Server) createCourier(w http.ResponseWriter, r *http.Request) {
	var request createRequest

	// Unknown fields are accepted and ignored, malformed bodies count as missing data.
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, r, http.StatusBadRequest, s.options.NotEnoughDataMessage)
		return
	}

	if request.Login == "" || request.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, s.options.NotEnoughDataMessage)
		return
	}

	courier := &Courier{
		Login:     request.Login,
		Password:  request.Password,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	}

	id, err := s.store.Create(r.Context(), courier)
	if err != nil {
		if errors.Is(err, ErrLoginTaken) {
			s.writeError(w, r, http.StatusConflict, s.options.LoginTakenMessage)
			return
		}

		s.logger.Error(err, "creating courier", "login", request.Login)
		s.writeError(w, r, http.StatusInternalServerError, MessageInternalError)

		return
	}

	s.logger.Info("courier created", "id", id, "login", request.Login)

	response := &okResponse{
		OK: true,
	}

	if s.options.EchoID {
		response.ID = &id
	}

	s.writeJSON(w, r, http.StatusCreated, response)
}

func (s *Server) deleteCourierWithoutID(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusBadRequest, MessageNotEnoughDataDelete)
}

func (s *Server) deleteCourier(w http.ResponseWriter, r *http.Request) {
	var id int64

	options := runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}

	if err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, options); err != nil {
		s.writeError(w, r, http.StatusBadRequest, MessageNotEnoughDataDelete)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, MessageCourierNotFound)
			return
		}

		s.logger.Error(err, "deleting courier", "id", id)
		s.writeError(w, r, http.StatusInternalServerError, MessageInternalError)

		return
	}

	s.logger.Info("courier deleted", "id", id)

	s.writeJSON(w, r, http.StatusOK, &okResponse{OK: true})
}

func (s *Server) loginCourier(w http.ResponseWriter, r *http.Request) {
	var request loginRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Login == "" || request.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, MessageNotEnoughDataLogin)
		return
	}

	courier, err := s.store.FindByLogin(r.Context(), request.Login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, MessageAccountNotFound)
			return
		}

		s.logger.Error(err, "finding courier", "login", request.Login)
		s.writeError(w, r, http.StatusInternalServerError, MessageInternalError)

		return
	}

	// A wrong password is indistinguishable from an unknown login.
	if courier.Password != request.Password {
		s.writeError(w, r, http.StatusNotFound, MessageAccountNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, &idResponse{ID: courier.ID})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, MessageRouteNotFound)
}
