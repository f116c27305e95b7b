package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/greenharvest/marketplace/internal/workflow"
)

func (s *Server) handleCreateAvailability(w http.ResponseWriter, r *http.Request) {
	var availabilityBody struct {
		FarmerID    string  `json:"farmer_id"`
		ProductID   string  `json:"product_id"`
		ProductName string  `json:"product_name"`
		Quantity    int     `json:"quantity"`
		Price       float64 `json:"price"`
		HarvestDate string  `json:"harvest_date"`
		ExpiryDate  string  `json:"expiry_date"`
		Notes       string  `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&availabilityBody); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if availabilityBody.FarmerID == "" || availabilityBody.ProductID == "" {
		respondError(w, http.StatusBadRequest, "Missing farmer_id or product_id")
		return
	}
	if availabilityBody.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	harvestDate, err := time.Parse("2006-01-02", availabilityBody.HarvestDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid harvest_date format. Use YYYY-MM-DD")
		return
	}
	expiryDate, err := time.Parse("2006-01-02", availabilityBody.ExpiryDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid expiry_date format. Use YYYY-MM-DD")
		return
	}
	if !expiryDate.After(harvestDate) {
		respondError(w, http.StatusBadRequest, "expiry_date must be after harvest_date")
		return
	}

	av, err := s.storage.CreateAvailability(r.Context(), workflow.ProductAvailability{
		FarmerID:    availabilityBody.FarmerID,
		ProductID:   availabilityBody.ProductID,
		ProductName: availabilityBody.ProductName,
		Quantity:    availabilityBody.Quantity,
		Price:       availabilityBody.Price,
		HarvestDate: harvestDate.UTC(),
		ExpiryDate:  expiryDate.UTC(),
		Notes:       availabilityBody.Notes,
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, av)
}

func (s *Server) handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	availabilityID := r.PathValue("id")
	if availabilityID == "" {
		respondError(w, http.StatusBadRequest, "Missing availability ID")
		return
	}

	av, err := s.storage.GetAvailability(r.Context(), availabilityID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, av)
}

func (s *Server) handleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	availabilityID := r.PathValue("id")
	if availabilityID == "" {
		respondError(w, http.StatusBadRequest, "Missing availability ID")
		return
	}

	var quantityBody struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&quantityBody); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if quantityBody.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	av, err := s.storage.AdjustAvailabilityQuantity(r.Context(), availabilityID, quantityBody.Quantity)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, av)
}

func (s *Server) handleListFarmerAvailability(w http.ResponseWriter, r *http.Request) {
	farmerID := r.PathValue("farmerID")
	if farmerID == "" {
		respondError(w, http.StatusBadRequest, "Missing farmer ID")
		return
	}

	entries, err := s.storage.GetFarmerAvailability(r.Context(), farmerID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRequestStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.storage.RequestStats(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

func (s *Server) handleOrderStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.storage.OrderStats(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

func (s *Server) handleAvailabilityStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.storage.AvailabilityStats(r.Context())
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}
