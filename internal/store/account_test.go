package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matplanerare/matplanerare/internal/docsync"
	"github.com/matplanerare/matplanerare/internal/password"
)

// captureWriter records mirrored operations for assertions.
type captureWriter struct {
	mu  sync.Mutex
	ops []docsync.Op
}

func (w *captureWriter) Apply(_ context.Context, op docsync.Op) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ops = append(w.ops, op)
	return nil
}

func (w *captureWriter) find(collection, docID string) []docsync.Op {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []docsync.Op
	for _, op := range w.ops {
		if op.Collection == collection && op.DocID == docID {
			out = append(out, op)
		}
	}
	return out
}

func newTestStore(t *testing.T) (*Store, *captureWriter, *docsync.Queue) {
	t.Helper()
	w := &captureWriter{}
	q := docsync.NewQueue(64, w)
	return New(NewAppData(), q), w, q
}

func TestCreateUserAndLogin(t *testing.T) {
	s, w, q := newTestStore(t)

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	assert.Equal(t, "anna", s.CurrentUser())
	assert.Equal(t, "anna", s.AdminUser(), "first user becomes admin")
	assert.True(t, s.IsAdmin())

	s.Logout()
	assert.Empty(t, s.CurrentUser())

	require.NoError(t, s.Login("anna", "hemligt"))
	assert.Equal(t, "anna", s.CurrentUser())

	assert.ErrorIs(t, s.Login("anna", "fel"), ErrInvalidCredentials)
	assert.ErrorIs(t, s.Login("ingen", "hemligt"), ErrInvalidCredentials)

	q.Close()
	require.Len(t, w.find(CollectionUsers, "anna"), 1)
	require.Len(t, w.find(CollectionSettings, SettingsDoc), 1)
}

func TestCreateUserValidation(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	assert.ErrorIs(t, s.CreateUser("", "hemligt"), ErrEmptyField)
	assert.ErrorIs(t, s.CreateUser("anna", ""), ErrEmptyField)
	assert.ErrorIs(t, s.CreateUser("anna", "abc"), ErrWeakPassword)
	assert.Empty(t, s.Usernames(), "rejected creation must not mutate")

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	assert.ErrorIs(t, s.CreateUser("anna", "annat1"), ErrDuplicateUsername)
}

func TestSecondUserIsNotAdmin(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	require.NoError(t, s.CreateUser("björn", "hemligt"))

	assert.Equal(t, "björn", s.CurrentUser())
	assert.Equal(t, "anna", s.AdminUser())
	assert.False(t, s.IsAdmin())
}

func TestInitialPassword(t *testing.T) {
	data := NewAppData()
	data.Users["mormor"] = User{} // migrated account, no password yet
	s := New(data, nil)

	pending, err := s.NeedsInitialPassword("mormor")
	require.NoError(t, err)
	assert.True(t, pending)

	assert.ErrorIs(t, s.Login("mormor", ""), ErrInvalidCredentials)
	assert.ErrorIs(t, s.SetInitialPassword("mormor", "abc"), ErrWeakPassword)

	require.NoError(t, s.SetInitialPassword("mormor", "kaffe"))
	assert.Equal(t, "mormor", s.CurrentUser())

	assert.ErrorIs(t, s.SetInitialPassword("mormor", "annat"), ErrPasswordAlreadySet)
	assert.ErrorIs(t, s.SetInitialPassword("ingen", "kaffe"), ErrUnknownUser)
}

func TestResetPassword(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "gammalt"))
	require.NoError(t, s.ResetPassword("anna", "nyttord"))

	s.Logout()
	assert.ErrorIs(t, s.Login("anna", "gammalt"), ErrInvalidCredentials)
	require.NoError(t, s.Login("anna", "nyttord"))

	assert.ErrorIs(t, s.ResetPassword("ingen", "nyttord"), ErrUnknownUser)
	assert.ErrorIs(t, s.ResetPassword("anna", "abc"), ErrWeakPassword)
}

func TestRenameUserCarriesEverything(t *testing.T) {
	s, w, q := newTestStore(t)

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	r, err := s.SaveRecipe(Recipe{Name: "Pannkakor", OriginalPortions: 4})
	require.NoError(t, err)
	recipeID := "recipe_x"
	require.NoError(t, s.SetMeal("anna", "2024-W10", "måndag", SlotDinner, &recipeID))

	require.NoError(t, s.RenameUser("anna", "anna-karin"))

	snap := s.Snapshot()
	_, oldExists := snap.Users["anna"]
	assert.False(t, oldExists)
	assert.True(t, password.Verify("hemligt", snap.Users["anna-karin"].PasswordHash))
	assert.Equal(t, "anna-karin", snap.Recipes[r.ID].CreatedBy)
	assert.Contains(t, snap.MealPlans, "anna-karin")
	assert.NotContains(t, snap.MealPlans, "anna")
	assert.Equal(t, "anna-karin", s.AdminUser())
	assert.Equal(t, "anna-karin", s.CurrentUser(), "session follows the rename")

	q.Close()
	deletes := w.find(CollectionUsers, "anna")
	require.NotEmpty(t, deletes)
	assert.True(t, deletes[len(deletes)-1].Delete)
	assert.NotEmpty(t, w.find(CollectionUsers, "anna-karin"))
	assert.NotEmpty(t, w.find(CollectionMealPlans, "anna-karin"))
}

func TestRenameUserRoundTrip(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	require.NoError(t, s.CreateUser("björn", "hemligt"))
	_, err := s.SaveRecipe(Recipe{Name: "Gryta", OriginalPortions: 4})
	require.NoError(t, err)
	recipeID := "recipe_x"
	require.NoError(t, s.SetMeal("anna", "2024-W10", "måndag", SlotDinner, &recipeID))
	require.NoError(t, s.SetMeal("björn", "2024-W11", "fredag", SlotDinner, &recipeID))

	before := s.Snapshot()
	require.NoError(t, s.RenameUser("anna", "anna-karin"))
	require.NoError(t, s.RenameUser("anna-karin", "anna"))
	after := s.Snapshot()

	assert.Equal(t, before.Users, after.Users)
	assert.Equal(t, before.MealPlans, after.MealPlans)
	assert.Equal(t, before.Recipes, after.Recipes, "createdBy survives the round trip")
	assert.Equal(t, "anna", s.AdminUser())
}

func TestRenameUserValidation(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	require.NoError(t, s.CreateUser("björn", "hemligt"))

	assert.ErrorIs(t, s.RenameUser("ingen", "ny"), ErrUnknownUser)
	assert.ErrorIs(t, s.RenameUser("anna", "björn"), ErrDuplicateUsername)
	assert.ErrorIs(t, s.RenameUser("anna", ""), ErrEmptyField)
	assert.NoError(t, s.RenameUser("anna", "anna"), "no-op rename is fine")
}

func TestDeleteUserReassignsRecipes(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "hemligt")) // admin
	require.NoError(t, s.CreateUser("björn", "hemligt"))
	r, err := s.SaveRecipe(Recipe{Name: "Tacos", OriginalPortions: 4})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser("björn"))

	snap := s.Snapshot()
	assert.NotContains(t, snap.Users, "björn")
	assert.Equal(t, "anna", snap.Recipes[r.ID].CreatedBy, "recipes fall to the admin")
	assert.Empty(t, s.CurrentUser(), "deleting the session user logs out")

	assert.ErrorIs(t, s.DeleteUser("björn"), ErrUnknownUser)
}

func TestDeleteAdminOrphansRecipes(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	r, err := s.SaveRecipe(Recipe{Name: "Lasagne", OriginalPortions: 6})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser("anna"))

	snap := s.Snapshot()
	assert.Equal(t, OrphanOwner, snap.Recipes[r.ID].CreatedBy)
	// The admin designation still points at the deleted account until the
	// settings document is rewritten.
	assert.Equal(t, "anna", s.AdminUser())
}

func TestTransferRecipes(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	require.NoError(t, s.CreateUser("björn", "hemligt"))
	_, err := s.SaveRecipe(Recipe{Name: "Soppa", OriginalPortions: 4})
	require.NoError(t, err)
	_, err = s.SaveRecipe(Recipe{Name: "Gryta", OriginalPortions: 4})
	require.NoError(t, err)

	moved, err := s.TransferRecipes("björn", "anna")
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	moved, err = s.TransferRecipes("björn", "anna")
	require.NoError(t, err)
	assert.Zero(t, moved)

	_, err = s.TransferRecipes("anna", "ingen")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestLogoutRemembersAdmin(t *testing.T) {
	s, _, q := newTestStore(t)
	defer q.Close()

	require.NoError(t, s.CreateUser("anna", "hemligt"))
	s.Logout()
	assert.True(t, s.WasAdminOnLogout())

	require.NoError(t, s.CreateUser("björn", "hemligt"))
	assert.False(t, s.WasAdminOnLogout(), "login clears the flag")
	s.Logout()
	assert.False(t, s.WasAdminOnLogout())
}
