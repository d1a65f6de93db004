package core

import "errors"

// CollaboratorRole is the worker's trade. Role names follow the shop-floor
// vocabulary used on commission reports.
type CollaboratorRole string

const (
	RoleFunileiro  CollaboratorRole = "Funileiro"
	RolePintor     CollaboratorRole = "Pintor"
	RolePreparador CollaboratorRole = "Preparador"
	RoleMontador   CollaboratorRole = "Montador"
	RolePolidor    CollaboratorRole = "Polidor"
	RoleGeral      CollaboratorRole = "Geral"
)

type CollaboratorStatus string

const (
	CollaboratorActive   CollaboratorStatus = "Active"
	CollaboratorInactive CollaboratorStatus = "Inactive"
)

// Collaborator is an independent worker record. Labor allocations reference
// it by ID for commission reporting but never own it: removing a
// collaborator leaves all historical allocations intact.
type Collaborator struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Role   CollaboratorRole   `json:"role"`
	Phone  string             `json:"phone,omitempty"`
	Status CollaboratorStatus `json:"status"`
}

func (c Collaborator) Validate() error {
	if c.ID == "" {
		return errors.New("collaborator must have an id")
	}
	if c.Name == "" {
		return errors.New("collaborator must have a name")
	}
	return nil
}
