package security_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	security "github.com/linemk/vetcent/internal/jwt-new"
	"github.com/stretchr/testify/assert"
)

func TestNewToken_Claims(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "clinic@example.com"}

	tokenStr, err := security.NewToken(user, models.RoleClinic, time.Hour, "secret")
	assert.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "clinic", claims["role"])
	assert.Contains(t, claims, "iat")
	assert.Contains(t, claims, "exp")
	assert.NotContains(t, claims, "email")
	assert.Len(t, claims, 4)
}

func TestNewToken_EmptySecret(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	_, err := security.NewToken(user, models.RoleClinic, time.Hour, "")
	assert.Error(t, err)
}
