package storage

import (
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/workflow"
)

func toRepoRequest(req workflow.ProductRequest) *repository.ProductRequest {
	return &repository.ProductRequest{
		ID:          req.ID,
		FarmerID:    req.FarmerID,
		ProductName: req.ProductName,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		Status:      string(req.Status),
		Notes:       nullable(req.Notes),
		CreatedAt:   req.CreatedDate,
		UpdatedAt:   req.CreatedDate,
	}
}

func fromRepoRequest(repoReq *repository.ProductRequest) workflow.ProductRequest {
	return workflow.ProductRequest{
		ID:          repoReq.ID,
		FarmerID:    repoReq.FarmerID,
		ProductName: repoReq.ProductName,
		Category:    repoReq.Category,
		Quantity:    repoReq.Quantity,
		Price:       repoReq.Price,
		Description: repoReq.Description,
		Status:      workflow.RequestStatus(repoReq.Status),
		Notes:       strVal(repoReq.Notes),
		CreatedDate: repoReq.CreatedAt,
	}
}

func fromRepoRequests(repoReqs []*repository.ProductRequest) []workflow.ProductRequest {
	requests := make([]workflow.ProductRequest, len(repoReqs))
	for i, repoReq := range repoReqs {
		requests[i] = fromRepoRequest(repoReq)
	}
	return requests
}

func toRepoOrder(order workflow.Order) (*repository.Order, []repository.OrderItem) {
	items := make([]repository.OrderItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = repository.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			FarmerID:    item.FarmerID,
		}
	}

	return &repository.Order{
		ID:                order.ID,
		CustomerID:        order.CustomerID,
		TotalAmount:       order.TotalAmount,
		Status:            string(order.Status),
		EstimatedDelivery: order.EstimatedDelivery,
		Notes:             nullable(order.Notes),
		CreatedAt:         order.CreatedDate,
		UpdatedAt:         order.UpdatedDate,
	}, items
}

func fromRepoOrder(repoOrder *repository.Order, repoItems []repository.OrderItem) workflow.Order {
	items := make([]workflow.OrderItem, len(repoItems))
	for i, item := range repoItems {
		items[i] = workflow.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			FarmerID:    item.FarmerID,
		}
	}

	return workflow.Order{
		ID:                repoOrder.ID,
		CustomerID:        repoOrder.CustomerID,
		Items:             items,
		TotalAmount:       repoOrder.TotalAmount,
		Status:            workflow.OrderStatus(repoOrder.Status),
		EstimatedDelivery: repoOrder.EstimatedDelivery,
		Notes:             strVal(repoOrder.Notes),
		CreatedDate:       repoOrder.CreatedAt,
		UpdatedDate:       repoOrder.UpdatedAt,
	}
}

func fromRepoFarmerOrder(repoFO *repository.FarmerOrder, repoItems []repository.OrderItem) workflow.FarmerOrder {
	items := make([]workflow.OrderItem, len(repoItems))
	for i, item := range repoItems {
		items[i] = workflow.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			FarmerID:    item.FarmerID,
		}
	}

	return workflow.FarmerOrder{
		ID:            repoFO.ID,
		OrderID:       repoFO.OrderID,
		FarmerID:      repoFO.FarmerID,
		Items:         items,
		Status:        workflow.FarmerOrderStatus(repoFO.Status),
		ConfirmedDate: repoFO.ConfirmedAt,
		ShippedDate:   repoFO.ShippedAt,
		DeliveredDate: repoFO.DeliveredAt,
		Notes:         strVal(repoFO.Notes),
		CreatedDate:   repoFO.CreatedAt,
	}
}

func toRepoAvailability(av workflow.ProductAvailability) *repository.ProductAvailability {
	return &repository.ProductAvailability{
		ID:          av.ID,
		FarmerID:    av.FarmerID,
		ProductID:   av.ProductID,
		ProductName: av.ProductName,
		Quantity:    av.Quantity,
		Price:       av.Price,
		HarvestDate: av.HarvestDate,
		ExpiryDate:  av.ExpiryDate,
		Status:      string(av.Status),
		Notes:       nullable(av.Notes),
		CreatedAt:   av.CreatedDate,
		UpdatedAt:   av.CreatedDate,
	}
}

func fromRepoAvailability(repoAv *repository.ProductAvailability) workflow.ProductAvailability {
	return workflow.ProductAvailability{
		ID:          repoAv.ID,
		FarmerID:    repoAv.FarmerID,
		ProductID:   repoAv.ProductID,
		ProductName: repoAv.ProductName,
		Quantity:    repoAv.Quantity,
		Price:       repoAv.Price,
		HarvestDate: repoAv.HarvestDate,
		ExpiryDate:  repoAv.ExpiryDate,
		Status:      workflow.AvailabilityStatus(repoAv.Status),
		Notes:       strVal(repoAv.Notes),
		CreatedDate: repoAv.CreatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
