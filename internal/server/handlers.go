package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jacksmith/worldwise/internal/model"
	"github.com/jacksmith/worldwise/internal/storage"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// storageError maps a storage failure to a response.
func (s *Server) storageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("storage failure",
		zap.String("path", r.URL.Path),
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func pathID(r *http.Request) (model.CityID, error) {
	return model.ParseCityID(r.PathValue("id"))
}

func (s *Server) listCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.cities.ListCities()
	if err != nil {
		s.storageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (s *Server) getCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	city, err := s.cities.GetCity(id)
	if err != nil {
		s.storageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, city)
}

func (s *Server) createCity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var city model.City
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	if err := model.ValidateNewCity(city); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.cities.CreateCity(city)
	if err != nil {
		s.storageError(w, r, err)
		return
	}
	s.logger.Debug("city created", zap.Stringer("id", created.ID), zap.String("name", created.CityName))
	w.Header().Set("Location", "/cities/"+created.ID.String())
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) deleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.cities.DeleteCity(id); err != nil {
		s.storageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
