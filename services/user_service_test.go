package services

import (
	"errors"
	"jafa-app/database/dbtest"
	"jafa-app/models"
	"jafa-app/repositories"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestLogin(t *testing.T) {
	db := dbtest.Open(t)
	repo := repositories.NewUserRepository(db)
	hash, err := HashPassword("tajne-heslo")
	require.NoError(t, err)
	require.NoError(t, repo.Create(&models.User{Username: "dispecer", Password: hash, IsActive: true}))
	require.NoError(t, repo.Create(&models.User{Username: "byvaly", Password: hash, IsActive: false}))
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "byvaly").Update("is_active", false).Error)

	now := time.Now()
	svc := NewUserService(repo, "secret", time.Hour, func() time.Time { return now }, zap.NewNop())

	res, err := svc.Login(LoginInput{Username: "dispecer", Password: "tajne-heslo"})
	require.NoError(t, err)
	assert.Equal(t, "dispecer", res.User.Username)
	assert.Equal(t, now.Add(time.Hour).Unix(), res.ExpiresAt.Unix())

	token, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.EqualValues(t, res.User.ID, claims["user_id"])

	user, err := repo.GetByID(res.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)

	for _, in := range []LoginInput{
		{Username: "dispecer", Password: "spatne"},
		{Username: "nikdo", Password: "tajne-heslo"},
		{Username: "byvaly", Password: "tajne-heslo"},
	} {
		_, err := svc.Login(in)
		assert.ErrorIs(t, err, ErrInvalidCredentials, in.Username)
	}

	_, err = svc.Login(LoginInput{})
	assert.ElementsMatch(t, []string{"username", "password"}, fieldsOf(t, err))
}

func TestLoginWarnsWhenLastLoginFails(t *testing.T) {
	db := dbtest.Open(t)
	repo := repositories.NewUserRepository(db)
	hash, err := HashPassword("tajne-heslo")
	require.NoError(t, err)
	require.NoError(t, repo.Create(&models.User{Username: "dispecer", Password: hash, IsActive: true}))

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
		tx.AddError(errors.New("disk full"))
	}))

	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewUserService(repo, "secret", time.Hour, time.Now, zap.New(core))

	res, err := svc.Login(LoginInput{Username: "dispecer", Password: "tajne-heslo"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	entries := logs.FilterMessage("Could not record last login").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "disk full", entries[0].ContextMap()["error"])
}
