// Package dto contains request/response types for the credential HTTP API.
package dto

// CreateCredentialRequest is the payload for POST /v1/credentials/:divisionId.
type CreateCredentialRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UpdateCredentialRequest is the payload for PUT
// /v1/credentials/:divisionId/:credentialId. Omitted or empty fields leave the
// stored fields unchanged.
type UpdateCredentialRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
