package services

import (
	"errors"
	"testing"
	"time"

	"bmicalc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestProfileService(t *testing.T, hub *RealtimeHub) (*ProfileService, *GormProfileStore) {
	t.Helper()
	store := newTestStore(t)
	svc := NewProfileService(store, newTestCalculator(t, nil), hub)
	svc.Now = func() time.Time { return fixedNow }
	return svc, store
}

func seedUser(t *testing.T, store *GormProfileStore, u models.User) *models.User {
	t.Helper()
	if u.Email == "" {
		u.Email = "pat@example.com"
	}
	u.Password = "x"
	require.NoError(t, store.CreateUser(&u))
	return &u
}

func f64(v float64) *float64 { return &v }

func TestProfileBMIImperial(t *testing.T) {
	t.Parallel()

	svc, store := newTestProfileService(t, nil)
	u := seedUser(t, store, models.User{
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Height:   5, HeightInches: 10, Weight: 70,
		MeasurementSystem: "imperial",
	})

	out, err := svc.ProfileBMI(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 22.09, out.Result.Value)
	assert.Equal(t, "healthy", out.Display.States["bmiResult"])
	assert.Equal(t, "imperial", out.System)
	assert.Equal(t, fixedNow, out.Calculated)
}

func TestProfileBMIMetricProfile(t *testing.T) {
	t.Parallel()

	svc, store := newTestProfileService(t, nil)
	u := seedUser(t, store, models.User{
		Birthday: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		Height:   1.75, Weight: 70,
		MeasurementSystem: "metric",
	})

	out, err := svc.ProfileBMI(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 22.86, out.Result.Value)
	assert.Equal(t, "metric", out.System)
	// An 11 year old falls in the child bracket.
	require.NotNil(t, out.Result.Category)
	assert.Equal(t, 84.99, out.Result.Category.Max)
}

func TestProfileBMIIncompleteProfile(t *testing.T) {
	t.Parallel()

	svc, store := newTestProfileService(t, nil)
	u := seedUser(t, store, models.User{Height: 5, Weight: 70})

	out, err := svc.ProfileBMI(u.ID)
	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "age", invalid.Field)
	require.NotNil(t, out)
	assert.Equal(t, "age", out.Display.Focused)
	assert.Empty(t, out.Display.Texts)
}

func TestProfileBMIUnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestProfileService(t, nil)
	out, err := svc.ProfileBMI(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, out)
}

func TestUpdateProfilePushesToOpenPages(t *testing.T) {
	t.Parallel()

	hub := NewRealtimeHub()
	svc, store := newTestProfileService(t, hub)
	u := seedUser(t, store, models.User{Birthday: time.Date(1980, 3, 3, 0, 0, 0, 0, time.UTC)})

	conn := &fakeConn{}
	hub.Register(&WSClient{UserID: u.ID, Conn: conn})

	err := svc.UpdateProfile(u.ID, ProfileInput{Height: f64(1.75), Weight: f64(70), MeasurementSystem: "metric"})
	require.NoError(t, err)

	assert.Equal(t, []PageCommand{
		{Op: OpWriteText, ID: "bmiValue", Value: "22.86"},
		{Op: OpSetState, ID: "bmiResult", Value: "healthy"},
		{Op: OpExpand, ID: "resultBox"},
	}, conn.commands())

	saved, err := store.FindUserByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.75, saved.Height)
	assert.Equal(t, "metric", saved.MeasurementSystem)
}

func TestUpdateProfileValidation(t *testing.T) {
	t.Parallel()

	svc, store := newTestProfileService(t, nil)
	u := seedUser(t, store, models.User{})

	assert.Error(t, svc.UpdateProfile(u.ID, ProfileInput{Birthday: "14/10/1990"}))
	assert.Error(t, svc.UpdateProfile(u.ID, ProfileInput{MeasurementSystem: "cubits"}))
	assert.ErrorIs(t, svc.UpdateProfile(u.ID+100, ProfileInput{}), ErrUserNotFound)
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	svc, store := newTestProfileService(t, nil)
	u := seedUser(t, store, models.User{
		FirstName: "Pat",
		Birthday:  time.Date(1996, 10, 15, 0, 0, 0, 0, time.UTC),
		Gender:    "nonbinary",
	})

	profile, err := svc.GetProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 29, profile["age"])
	assert.Equal(t, "1996-10-15", profile["birthday"])
	assert.Equal(t, "nonbinary", profile["gender"])
}

func TestAuthServiceRegisterLogin(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	auth := NewAuthService(store, []byte("secret"))

	user, err := auth.Register(" Pat@Example.com ", "hunter22", "Pat", "")
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password)

	token, err := auth.Login("pat@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = auth.Login("pat@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = auth.Login("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = auth.Register("pat@example.com", "another1", "Pat", "")
	assert.Error(t, err, "email is unique")
}
