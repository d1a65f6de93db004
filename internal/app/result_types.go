package app

import "bodyshop-manager/internal/core"

// UserResult is the public view of a user, without credentials.
type UserResult struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderResult is returned by order lifecycle operations.
type OrderResult struct {
	Order *core.ServiceOrder `json:"order"`
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []*core.ServiceOrder `json:"orders"`
}

// CollaboratorListResult is returned by ListCollaborators.
type CollaboratorListResult struct {
	Collaborators []*core.Collaborator `json:"collaborators"`
}
