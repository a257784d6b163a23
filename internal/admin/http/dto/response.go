package dto

import (
	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/admin/usecase"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

// UserResponse is the administrative view of a single user, as returned by the
// assignment and role-change endpoints.
type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	DivisionIDs []string `json:"division_ids"`
	OUIDs       []string `json:"ou_ids"`
}

// DivisionRef is an embedded division reference carrying its display name.
type DivisionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OURef is an embedded OU reference carrying its display name.
type OURef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListUserResponse is a user in the full listing. Membership references are
// expanded into named objects so the listing is usable without extra lookups.
type ListUserResponse struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Role      string        `json:"role"`
	Divisions []DivisionRef `json:"divisions"`
	OUs       []OURef       `json:"ous"`
}

// ListOUResponse is an OU in the full listing with its divisions expanded.
type ListOUResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Divisions []DivisionRef `json:"divisions"`
}

// ListDivisionResponse is a division in the full listing with its OU expanded.
type ListDivisionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	OU   OURef  `json:"ou"`
}

// ListAllResponse is the full administrative listing.
type ListAllResponse struct {
	Users     []ListUserResponse     `json:"users"`
	OUs       []ListOUResponse       `json:"ous"`
	Divisions []ListDivisionResponse `json:"divisions"`
}

// ToUserResponse converts a domain user to its administrative view.
func ToUserResponse(user *identitydomain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Role:        string(user.Role),
		DivisionIDs: idsToStrings(user.DivisionIDs),
		OUIDs:       idsToStrings(user.OUIDs),
	}
}

// ToListAllResponse converts the list-all output to a response DTO. The output
// already carries every OU and division, so references are resolved in memory.
func ToListAllResponse(output *usecase.ListAllOutput) ListAllResponse {
	divisionNames := make(map[uuid.UUID]string, len(output.Divisions))
	for _, division := range output.Divisions {
		divisionNames[division.ID] = division.Name
	}
	ouNames := make(map[uuid.UUID]string, len(output.OUs))
	for _, ou := range output.OUs {
		ouNames[ou.ID] = ou.Name
	}

	resp := ListAllResponse{
		Users:     make([]ListUserResponse, len(output.Users)),
		OUs:       make([]ListOUResponse, len(output.OUs)),
		Divisions: make([]ListDivisionResponse, len(output.Divisions)),
	}
	for i, user := range output.Users {
		resp.Users[i] = ListUserResponse{
			ID:        user.ID.String(),
			Username:  user.Username,
			Role:      string(user.Role),
			Divisions: divisionRefs(user.DivisionIDs, divisionNames),
			OUs:       ouRefs(user.OUIDs, ouNames),
		}
	}
	for i, ou := range output.OUs {
		resp.OUs[i] = ListOUResponse{
			ID:        ou.ID.String(),
			Name:      ou.Name,
			Divisions: divisionRefs(ou.DivisionIDs, divisionNames),
		}
	}
	for i, division := range output.Divisions {
		resp.Divisions[i] = ListDivisionResponse{
			ID:   division.ID.String(),
			Name: division.Name,
			OU:   OURef{ID: division.OUID.String(), Name: ouNames[division.OUID]},
		}
	}
	return resp
}

func divisionRefs(ids []uuid.UUID, names map[uuid.UUID]string) []DivisionRef {
	refs := make([]DivisionRef, len(ids))
	for i, id := range ids {
		refs[i] = DivisionRef{ID: id.String(), Name: names[id]}
	}
	return refs
}

func ouRefs(ids []uuid.UUID, names map[uuid.UUID]string) []OURef {
	refs := make([]OURef, len(ids))
	for i, id := range ids {
		refs[i] = OURef{ID: id.String(), Name: names[id]}
	}
	return refs
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
