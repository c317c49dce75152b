package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise-backend/internal/models"
	"github.com/platewise/platewise-backend/internal/repository"
	"github.com/platewise/platewise-backend/internal/services"
)

func newProfileTestHandlers() (*AuthHandler, *ProfileHandler, *repository.MockStore) {
	store := repository.NewMockStore()
	sessions := services.NewMockSessions()
	return NewAuthHandler(store, sessions), NewProfileHandler(store, sessions), store
}

func TestSaveProfile_PersistsFields(t *testing.T) {
	auth, profile, store := newProfileTestHandlers()
	signup(t, auth, "Alice", "alice", "password1")
	_, token := signin(t, auth, "alice", "password1")

	age := 30
	height := 170.0
	rec := doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{
		Name:     "Alice",
		Age:      &age,
		HeightCm: &height,
		Country:  "India",
		Cuisine:  "South Indian",
		Goals:    []string{"Lose Fat"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	account, err := store.GetAccount(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, account.Age)
	assert.Equal(t, 30, *account.Age)
	assert.Equal(t, []string{"Lose Fat"}, account.Goals)
	assert.Equal(t, "South Indian", account.Cuisine)
}

func TestSaveProfile_NeverTouchesCredentials(t *testing.T) {
	auth, profile, store := newProfileTestHandlers()
	signup(t, auth, "Alice", "alice", "password1")
	_, token := signin(t, auth, "alice", "password1")

	before, _ := store.GetAccount(context.Background(), "alice")

	// Payload tries to smuggle in a username and password change
	rec := doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, map[string]interface{}{
		"name":          "Alice",
		"username":      "mallory",
		"password":      "hacked123",
		"password_hash": "overwritten",
		"goals":         []string{"Gain Muscle"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	after, err := store.GetAccount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", after.Username)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, []string{"Gain Muscle"}, after.Goals)

	if _, err := store.GetAccount(context.Background(), "mallory"); err == nil {
		t.Fatalf("profile save created a new account")
	}
}

func TestSaveProfile_RejectsUnknownGoal(t *testing.T) {
	auth, profile, _ := newProfileTestHandlers()
	signup(t, auth, "Alice", "alice", "password1")
	_, token := signin(t, auth, "alice", "password1")

	rec := doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{
		Name:  "Alice",
		Goals: []string{"Become Immortal"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown goal")
}

func TestSaveProfile_RejectsBadAge(t *testing.T) {
	auth, profile, _ := newProfileTestHandlers()
	signup(t, auth, "Alice", "alice", "password1")
	_, token := signin(t, auth, "alice", "password1")

	age := 0
	rec := doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{Name: "Alice", Age: &age})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveProfile_RejectsBadMeasurements(t *testing.T) {
	auth, profile, _ := newProfileTestHandlers()
	signup(t, auth, "Alice", "alice", "password1")
	_, token := signin(t, auth, "alice", "password1")

	negHeight := -170.0
	rec := doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{Name: "Alice", HeightCm: &negHeight})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	hugeHeight := 1000.0
	rec = doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{Name: "Alice", HeightCm: &hugeHeight})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	negWeight := -5.0
	rec = doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{Name: "Alice", WeightKg: &negWeight})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	hugeWeight := 2000.0
	rec = doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{Name: "Alice", WeightKg: &hugeWeight})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfile_RoundTrip(t *testing.T) {
	auth, profile, _ := newProfileTestHandlers()
	signup(t, auth, "Alice", "alice", "password1")
	_, token := signin(t, auth, "alice", "password1")

	age := 30
	doJSON(t, profile.Save, http.MethodPut, "/api/profile", token, models.Profile{
		Name: "Alice", Age: &age, Goals: []string{"Lose Fat"},
	})

	rec := doJSON(t, profile.Get, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Account)
	require.NotNil(t, resp.Account.Age)
	assert.Equal(t, 30, *resp.Account.Age)
	assert.Equal(t, []string{"Lose Fat"}, resp.Account.Goals)
}

func TestProfile_RequiresAuth(t *testing.T) {
	_, profile, _ := newProfileTestHandlers()

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, profile.Get, http.MethodGet, "/api/profile", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, profile.Save, http.MethodPut, "/api/profile", "", models.Profile{Name: "x"}).Code)
}
