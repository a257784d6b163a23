package dto

import (
	"time"

	"github.com/cooltech/credvault/internal/credential/domain"
)

// CredentialResponse is the public representation of a credential. Values are
// returned in clear text: sharing secrets inside a division is the point of the
// service.
type CredentialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListCredentialsResponse wraps the credential list of one division.
type ListCredentialsResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
}

// ToCredentialResponse converts a domain credential to a response DTO.
func ToCredentialResponse(credential *domain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:        credential.ID.String(),
		Name:      credential.Name,
		Value:     credential.Value,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.UpdatedAt,
	}
}

// ToListCredentialsResponse converts a credential slice to a response DTO.
func ToListCredentialsResponse(credentials []domain.Credential) ListCredentialsResponse {
	out := make([]CredentialResponse, len(credentials))
	for i := range credentials {
		out[i] = ToCredentialResponse(&credentials[i])
	}
	return ListCredentialsResponse{Credentials: out}
}
