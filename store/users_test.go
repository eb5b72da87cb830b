package store

import (
	"budgetapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *StoreSuite) TestRegisterSeedsDefaults() {
	alice := s.mustRegister("alice")
	assert.Equal(s.T(), "alice@example.com", alice.Email)
	assert.NotEmpty(s.T(), alice.HashedPassword)

	accounts, err := s.store.ListAccounts(alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), accounts, 2)
	assert.Equal(s.T(), "Chequing", accounts[0].Name)
	assert.Equal(s.T(), "Savings", accounts[1].Name)
	assert.True(s.T(), accounts[0].InitialAmount.IsZero())

	categories, err := s.store.ListCategories(alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), categories, 2)
	assert.Equal(s.T(), "Income", categories[0].Name)
	assert.Equal(s.T(), "Income", categories[0].CategoryType.Name)
	assert.Equal(s.T(), "Misc", categories[1].Name)
	assert.Equal(s.T(), "Expense", categories[1].CategoryType.Name)
	// Both seed categories hang off Chequing with the default budget.
	for _, c := range categories {
		assert.Equal(s.T(), accounts[0].ID, c.AccountID)
		assert.True(s.T(), c.BudgetAmount.Equal(amount("100")))
	}
}

func (s *StoreSuite) TestRegisterValidation() {
	cases := []struct {
		name   string
		params RegisterParams
	}{
		{"missing username", RegisterParams{Email: "a@x.com", Password: "pw", ConfirmPassword: "pw"}},
		{"missing email", RegisterParams{Username: "a", Password: "pw", ConfirmPassword: "pw"}},
		{"missing password", RegisterParams{Username: "a", Email: "a@x.com", ConfirmPassword: "pw"}},
		{"missing confirmation", RegisterParams{Username: "a", Email: "a@x.com", Password: "pw"}},
		{"mismatch", RegisterParams{Username: "a", Email: "a@x.com", Password: "pw", ConfirmPassword: "other"}},
	}
	for _, tc := range cases {
		_, err := s.store.Register(tc.params)
		assert.ErrorIs(s.T(), err, ErrValidation, tc.name)
	}
}

func (s *StoreSuite) TestRegisterDuplicateUsername() {
	s.mustRegister("alice")
	_, err := s.store.Register(RegisterParams{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "pw123",
		ConfirmPassword: "pw123",
	})
	assert.ErrorIs(s.T(), err, ErrConflict)
}

func (s *StoreSuite) TestRegisterIsAllOrNothing() {
	// Drop a lookup row the bootstrap needs mid-way; the whole transaction
	// must roll back, leaving no user, account or category rows behind.
	require.NoError(s.T(), s.db.Where("name = ?", "Expense").Delete(&models.CategoryType{}).Error)

	_, err := s.store.Register(RegisterParams{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "pw123",
		ConfirmPassword: "pw123",
	})
	require.Error(s.T(), err)

	var users, accounts, categories int64
	require.NoError(s.T(), s.db.Model(&models.User{}).Count(&users).Error)
	require.NoError(s.T(), s.db.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(s.T(), s.db.Model(&models.Category{}).Count(&categories).Error)
	assert.Zero(s.T(), users)
	assert.Zero(s.T(), accounts)
	assert.Zero(s.T(), categories)
}

func (s *StoreSuite) TestAuthenticate() {
	alice := s.mustRegister("alice")

	_, err := s.store.Authenticate("alice", "wrong")
	assert.ErrorIs(s.T(), err, ErrAuth)

	// Unknown users fail with the very same error.
	_, err = s.store.Authenticate("nobody", "pw123")
	assert.ErrorIs(s.T(), err, ErrAuth)

	user, err := s.store.Authenticate("alice", "pw123")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), alice.ID, user.ID)
}

func (s *StoreSuite) TestRefreshTokenLifecycle() {
	alice := s.mustRegister("alice")

	raw, err := s.store.IssueRefreshToken(alice.ID)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), raw)

	userID, rotated, err := s.store.RotateRefreshToken(raw)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), alice.ID, userID)
	assert.NotEqual(s.T(), raw, rotated)

	// The old token is revoked by rotation.
	_, _, err = s.store.RotateRefreshToken(raw)
	assert.ErrorIs(s.T(), err, ErrAuth)

	// Revocation always succeeds, even twice or for garbage.
	require.NoError(s.T(), s.store.RevokeRefreshToken(rotated))
	require.NoError(s.T(), s.store.RevokeRefreshToken(rotated))
	require.NoError(s.T(), s.store.RevokeRefreshToken("never-issued"))

	_, _, err = s.store.RotateRefreshToken(rotated)
	assert.ErrorIs(s.T(), err, ErrAuth)
}
