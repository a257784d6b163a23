// Package domain defines credentials and the per-division credential repository
// that owns them.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a named secret value stored inside a division's repository.
type Credential struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CredentialRepository is the aggregate owning all credentials of one division.
// The whole credential list is read and written as a unit; every mutation goes
// through this aggregate so concurrent writers serialize on the owning row.
type CredentialRepository struct {
	ID          uuid.UUID
	DivisionID  uuid.UUID
	Credentials []Credential
}

// Find returns the credential with the given id, if present.
func (r *CredentialRepository) Find(id uuid.UUID) (*Credential, bool) {
	for i := range r.Credentials {
		if r.Credentials[i].ID == id {
			return &r.Credentials[i], true
		}
	}
	return nil, false
}

// Add appends a new credential and returns it.
func (r *CredentialRepository) Add(name, value string, now time.Time) *Credential {
	r.Credentials = append(r.Credentials, Credential{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return &r.Credentials[len(r.Credentials)-1]
}

// Update modifies the credential with the given id. An empty name or value
// leaves the corresponding field unchanged; updating neither field still
// touches UpdatedAt.
func (r *CredentialRepository) Update(id uuid.UUID, name, value string, now time.Time) (*Credential, error) {
	credential, ok := r.Find(id)
	if !ok {
		return nil, ErrCredentialNotFound
	}

	if name != "" {
		credential.Name = name
	}
	if value != "" {
		credential.Value = value
	}
	credential.UpdatedAt = now

	return credential, nil
}

// Remove deletes the credential with the given id, preserving the order of the
// remaining credentials.
func (r *CredentialRepository) Remove(id uuid.UUID) error {
	for i := range r.Credentials {
		if r.Credentials[i].ID == id {
			r.Credentials = append(r.Credentials[:i], r.Credentials[i+1:]...)
			return nil
		}
	}
	return ErrCredentialNotFound
}
