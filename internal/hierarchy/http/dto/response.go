// Package dto contains response types for the hierarchy HTTP API.
package dto

import (
	"github.com/cooltech/credvault/internal/hierarchy/domain"
)

// DivisionResponse is the public representation of a division.
type DivisionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	OUID string `json:"ou_id"`
}

// OUResponse is the public representation of an organizational unit.
type OUResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DivisionIDs []string `json:"division_ids"`
}

// ToDivisionResponse converts a domain division to its public representation.
func ToDivisionResponse(division *domain.Division) DivisionResponse {
	return DivisionResponse{
		ID:   division.ID.String(),
		Name: division.Name,
		OUID: division.OUID.String(),
	}
}

// ToOUResponse converts a domain OU to its public representation.
func ToOUResponse(ou *domain.OU) OUResponse {
	divisionIDs := make([]string, len(ou.DivisionIDs))
	for i, id := range ou.DivisionIDs {
		divisionIDs[i] = id.String()
	}
	return OUResponse{
		ID:          ou.ID.String(),
		Name:        ou.Name,
		DivisionIDs: divisionIDs,
	}
}
