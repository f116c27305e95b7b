package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// statusRecorder tees the response so the audit entry can carry the status
// code and body the client actually received.
type statusRecorder struct {
	http.ResponseWriter
	code int
	body bytes.Buffer
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.code = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.body.Write(b)
	return rec.ResponseWriter.Write(b)
}

// entityPrefixes maps the first path segment to the workflow entity type.
var entityPrefixes = map[string]string{
	"requests":      "request",
	"orders":        "order",
	"farmer-orders": "farmer_order",
	"availability":  "availability",
}

// transitionStatuses maps a transition path segment to the status it produces.
var transitionStatuses = map[string]string{
	"approve": "approved",
	"reject":  "rejected",
	"confirm": "confirmed",
	"pack":    "packed",
	"ship":    "shipped",
	"deliver": "delivered",
	"cancel":  "cancelled",
}

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   getHandlerName(r.URL.Path, r.Method),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.UserID = username
		}

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) >= 2 {
			if entityType, ok := entityPrefixes[parts[0]]; ok {
				entry.EntityType = entityType
				entry.EntityID = parts[1]
			}
		}
		if len(parts) >= 3 {
			if status, ok := transitionStatuses[parts[2]]; ok {
				entry.NewStatus = status
			}
		}

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.EntityType == "order" && strings.HasSuffix(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					if order, err := s.storage.GetOrder(r.Context(), entry.EntityID); err == nil {
						entry.OldStatus = string(order.Status)
						entry.NewStatus = statusRequest.Status
					}
				}
			}
		}

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(rec, r)

		entry.StatusCode = rec.code
		entry.Response = rec.body.String()

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func getHandlerName(path string, method string) string {
	switch {
	case strings.HasPrefix(path, "/requests"):
		switch {
		case method == "POST" && strings.HasSuffix(path, "/approve"):
			return "handleResolveRequest(approve)"
		case method == "POST" && strings.HasSuffix(path, "/reject"):
			return "handleResolveRequest(reject)"
		case strings.HasSuffix(path, "/history"):
			return "handleHistory"
		case method == "POST":
			return "handleSubmitRequest"
		case path == "/requests":
			return "handleListRequests"
		default:
			return "handleGetRequest"
		}
	case strings.HasPrefix(path, "/orders"):
		switch {
		case method == "POST" && strings.HasSuffix(path, "/cancel"):
			return "handleCancelOrder"
		case strings.HasSuffix(path, "/status"):
			return "handleUpdateOrderStatus"
		case strings.HasSuffix(path, "/history"):
			return "handleHistory"
		case method == "POST":
			return "handleCreateOrder"
		default:
			return "handleGetOrder"
		}
	case strings.HasPrefix(path, "/farmer-orders"):
		switch {
		case strings.HasSuffix(path, "/history"):
			return "handleHistory"
		case method == "POST" && path == "/farmer-orders":
			return "handleCreateFarmerOrder"
		default:
			return "handleFarmerOrderTransition"
		}
	case strings.HasPrefix(path, "/availability"):
		switch {
		case strings.HasSuffix(path, "/quantity"):
			return "handleAdjustQuantity"
		case method == "POST":
			return "handleCreateAvailability"
		default:
			return "handleGetAvailability"
		}
	case strings.HasPrefix(path, "/farmers"):
		switch {
		case strings.HasSuffix(path, "/requests"):
			return "handleListFarmerRequests"
		case strings.HasSuffix(path, "/orders"):
			return "handleListFarmerOrders"
		case strings.HasSuffix(path, "/availability"):
			return "handleListFarmerAvailability"
		}
	case strings.HasPrefix(path, "/customers"):
		switch {
		case strings.HasSuffix(path, "/orders"):
			return "handleListCustomerOrders"
		case strings.HasSuffix(path, "/loyalty"):
			return "handleLoyalty"
		}
	case strings.HasPrefix(path, "/stats"):
		return "handleStats"
	}

	return "unknown"
}
