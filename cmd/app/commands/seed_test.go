package commands

import (
	"context"
	"testing"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialdomain "github.com/cooltech/credvault/internal/credential/domain"
	hierarchydomain "github.com/cooltech/credvault/internal/hierarchy/domain"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
)

type fakeSeedUserRepository struct {
	users      []*identitydomain.User
	membership map[uuid.UUID][][]uuid.UUID
}

func (f *fakeSeedUserRepository) Create(_ context.Context, user *identitydomain.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeSeedUserRepository) ReplaceMembership(
	_ context.Context,
	userID uuid.UUID,
	divisionIDs, ouIDs []uuid.UUID,
) error {
	if f.membership == nil {
		f.membership = make(map[uuid.UUID][][]uuid.UUID)
	}
	f.membership[userID] = [][]uuid.UUID{divisionIDs, ouIDs}
	return nil
}

type fakeSeedHierarchyRepository struct {
	ous       []*hierarchydomain.OU
	divisions []*hierarchydomain.Division
}

func (f *fakeSeedHierarchyRepository) CreateOU(_ context.Context, ou *hierarchydomain.OU) error {
	f.ous = append(f.ous, ou)
	return nil
}

func (f *fakeSeedHierarchyRepository) CreateDivision(
	_ context.Context,
	division *hierarchydomain.Division,
) error {
	f.divisions = append(f.divisions, division)
	return nil
}

type fakeSeedCredentialStore struct {
	repos []*credentialdomain.CredentialRepository
}

func (f *fakeSeedCredentialStore) Create(
	_ context.Context,
	repo *credentialdomain.CredentialRepository,
) error {
	f.repos = append(f.repos, repo)
	return nil
}

func TestNewSeedRepositories(t *testing.T) {
	t.Run("unsupported-driver", func(t *testing.T) {
		repos, err := newSeedRepositories("sqlite", nil)
		require.Error(t, err)
		assert.Nil(t, repos)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("postgres", func(t *testing.T) {
		repos, err := newSeedRepositories("postgres", nil)
		require.NoError(t, err)
		require.NotNil(t, repos)
	})

	t.Run("mysql", func(t *testing.T) {
		repos, err := newSeedRepositories("mysql", nil)
		require.NoError(t, err)
		require.NotNil(t, repos)
	})
}

func TestSeedHierarchy(t *testing.T) {
	hierarchy := &fakeSeedHierarchyRepository{}
	credentials := &fakeSeedCredentialStore{}
	repos := &seedRepositories{
		hierarchy:   hierarchy,
		credentials: credentials,
	}

	ouIDs, divisionIDs, err := seedHierarchy(t.Context(), repos)
	require.NoError(t, err)

	wantDivisions := len(seedOUNames) * len(seedDivisionNames)
	assert.Len(t, ouIDs, len(seedOUNames))
	assert.Len(t, divisionIDs, wantDivisions)
	assert.Len(t, hierarchy.divisions, wantDivisions)
	assert.Len(t, credentials.repos, wantDivisions)

	// Division names carry the OU prefix and every division starts with the
	// two placeholder credentials.
	assert.Equal(t, "News management - Finances", hierarchy.divisions[0].Name)
	assert.Equal(t, hierarchy.ous[0].ID, hierarchy.divisions[0].OUID)
	require.Len(t, credentials.repos[0].Credentials, 2)
	assert.Equal(t, "WP Site", credentials.repos[0].Credentials[0].Name)
	assert.Equal(t, "Server", credentials.repos[0].Credentials[1].Name)
	assert.Equal(t, hierarchy.divisions[0].ID, credentials.repos[0].DivisionID)
}

func TestSeedUsers(t *testing.T) {
	hierarchy := &fakeSeedHierarchyRepository{}
	credentials := &fakeSeedCredentialStore{}
	users := &fakeSeedUserRepository{}
	repos := &seedRepositories{
		hierarchy:   hierarchy,
		credentials: credentials,
	}

	ouIDs, divisionIDs, err := seedHierarchy(t.Context(), repos)
	require.NoError(t, err)

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	require.NoError(t, err)

	require.NoError(t, seedUsers(t.Context(), users, hasher, ouIDs, divisionIDs))
	require.Len(t, users.users, 4)

	byUsername := make(map[string]*identitydomain.User)
	for _, user := range users.users {
		byUsername[user.Username] = user
		// Passwords are never stored in clear text
		assert.NotEqual(t, "password", user.PasswordDigest)
		assert.NotEqual(t, "admin", user.PasswordDigest)
	}

	assert.Equal(t, identitydomain.RoleUser, byUsername["normaluser"].Role)
	assert.Equal(t, identitydomain.RoleUser, byUsername["multidivuser"].Role)
	assert.Equal(t, identitydomain.RoleManager, byUsername["manager"].Role)
	assert.Equal(t, identitydomain.RoleAdmin, byUsername["admin"].Role)

	// multidivuser spans two OUs and two divisions
	multiMembership := users.membership[byUsername["multidivuser"].ID]
	require.Len(t, multiMembership, 2)
	assert.Len(t, multiMembership[0], 2)
	assert.Len(t, multiMembership[1], 2)

	// admin belongs to every division
	adminMembership := users.membership[byUsername["admin"].ID]
	assert.Len(t, adminMembership[0], len(divisionIDs))
}
