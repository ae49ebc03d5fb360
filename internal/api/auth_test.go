package api

import (
	"testing"
	"time"

	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func Test_Token_RoundTrip(t *testing.T) {

	token, err := GenerateToken("secret", time.Hour, 42, models.RoleEmployer)
	assert.NoError(t, err)

	claims, err := ParseToken("secret", token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(models.RoleEmployer), claims.Role)
}

func Test_Token_RejectedWithWrongSecret(t *testing.T) {

	token, err := GenerateToken("secret", time.Hour, 42, models.RoleApplicant)
	assert.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func Test_Token_RejectedWhenExpired(t *testing.T) {

	token, err := GenerateToken("secret", -time.Minute, 42, models.RoleApplicant)
	assert.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}
