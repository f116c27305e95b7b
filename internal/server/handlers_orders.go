package server

import (
	"encoding/json"
	"net/http"

	"github.com/greenharvest/marketplace/internal/workflow"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var orderBody struct {
		CustomerID string `json:"customer_id"`
		Items      []struct {
			ProductID   string  `json:"product_id"`
			ProductName string  `json:"product_name"`
			Quantity    int     `json:"quantity"`
			Price       float64 `json:"price"`
			FarmerID    string  `json:"farmer_id"`
		} `json:"items"`
		Notes string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&orderBody); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if orderBody.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "Missing customer_id")
		return
	}
	if len(orderBody.Items) == 0 {
		respondError(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}

	items := make([]workflow.OrderItem, len(orderBody.Items))
	for i, item := range orderBody.Items {
		items[i] = workflow.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			FarmerID:    item.FarmerID,
		}
	}

	order, err := s.storage.CreateOrder(r.Context(), workflow.Order{
		CustomerID: orderBody.CustomerID,
		Items:      items,
		Notes:      orderBody.Notes,
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	order, err := s.storage.GetOrder(r.Context(), orderID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	var statusBody struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusBody); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if statusBody.Status == "" {
		respondError(w, http.StatusBadRequest, "Missing status")
		return
	}

	order, err := s.storage.UpdateOrderStatus(r.Context(), orderID, workflow.OrderStatus(statusBody.Status))
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	order, err := s.storage.CancelOrder(r.Context(), orderID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerID")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "Missing customer ID")
		return
	}

	orders, err := s.storage.GetCustomerOrders(r.Context(), customerID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleLoyalty(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerID")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "Missing customer ID")
		return
	}

	summary, err := s.storage.GetLoyaltySummary(r.Context(), customerID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCreateFarmerOrder(w http.ResponseWriter, r *http.Request) {
	var foBody struct {
		OrderID  string `json:"order_id"`
		FarmerID string `json:"farmer_id"`
		Notes    string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&foBody); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if foBody.OrderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order_id")
		return
	}
	if foBody.FarmerID == "" {
		respondError(w, http.StatusBadRequest, "Missing farmer_id")
		return
	}

	fo, err := s.storage.CreateFarmerOrder(r.Context(), workflow.FarmerOrder{
		OrderID:  foBody.OrderID,
		FarmerID: foBody.FarmerID,
		Notes:    foBody.Notes,
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, fo)
}

func (s *Server) handleFarmerOrderTransition(t workflow.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerOrderID := r.PathValue("id")
		if farmerOrderID == "" {
			respondError(w, http.StatusBadRequest, "Missing farmer order ID")
			return
		}

		fo, err := s.storage.AdvanceFarmerOrder(r.Context(), farmerOrderID, t)
		if err != nil {
			s.respondDomainError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, fo)
	}
}

func (s *Server) handleListFarmerOrders(w http.ResponseWriter, r *http.Request) {
	farmerID := r.PathValue("farmerID")
	if farmerID == "" {
		respondError(w, http.StatusBadRequest, "Missing farmer ID")
		return
	}

	orders, err := s.storage.GetFarmerOrders(r.Context(), farmerID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleHistory(entityType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := r.PathValue("id")
		if entityID == "" {
			respondError(w, http.StatusBadRequest, "Missing entity ID")
			return
		}

		history, err := s.storage.GetHistory(r.Context(), entityType, entityID)
		if err != nil {
			s.respondDomainError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, history)
	}
}
