package server

import (
	"encoding/json"
	"net/http"

	"github.com/greenharvest/marketplace/internal/workflow"
)

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		FarmerID    string  `json:"farmer_id"`
		ProductName string  `json:"product_name"`
		Category    string  `json:"category"`
		Quantity    int     `json:"quantity"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if requestBody.FarmerID == "" || requestBody.ProductName == "" {
		respondError(w, http.StatusBadRequest, "Missing farmer_id or product_name")
		return
	}
	if requestBody.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be greater than zero")
		return
	}
	if requestBody.Price < 0 {
		respondError(w, http.StatusBadRequest, "Price cannot be negative")
		return
	}

	req, err := s.storage.SubmitRequest(r.Context(), workflow.ProductRequest{
		FarmerID:    requestBody.FarmerID,
		ProductName: requestBody.ProductName,
		Category:    requestBody.Category,
		Quantity:    requestBody.Quantity,
		Price:       requestBody.Price,
		Description: requestBody.Description,
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, req)
}

func (s *Server) handleResolveRequest(t workflow.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.PathValue("id")
		if requestID == "" {
			respondError(w, http.StatusBadRequest, "Missing request ID")
			return
		}

		var decisionBody struct {
			Notes string `json:"notes"`
		}
		if r.Body != nil {
			// Notes are optional; an empty body resolves without them.
			_ = json.NewDecoder(r.Body).Decode(&decisionBody)
		}

		req, err := s.storage.ResolveRequest(r.Context(), requestID, t, decisionBody.Notes)
		if err != nil {
			s.respondDomainError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, req)
	}
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	if requestID == "" {
		respondError(w, http.StatusBadRequest, "Missing request ID")
		return
	}

	req, err := s.storage.GetRequest(r.Context(), requestID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, req)
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.storage.GetRequests(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

func (s *Server) handleListFarmerRequests(w http.ResponseWriter, r *http.Request) {
	farmerID := r.PathValue("farmerID")
	if farmerID == "" {
		respondError(w, http.StatusBadRequest, "Missing farmer ID")
		return
	}

	requests, err := s.storage.GetFarmerRequests(r.Context(), farmerID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}
