package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vervevero/portalkit/pkg/auth"
)

func TestParseUserType(t *testing.T) {
	t.Parallel()

	t.Run("accepts enumeration members", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"system_admin", "portal_admin", "client_admin", "chat_user"} {
			ut, err := auth.ParseUserType(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, ut.String())
			assert.True(t, ut.Valid())
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "admin", "SYSTEM_ADMIN", "superuser", "chat_user "} {
			_, err := auth.ParseUserType(raw)
			assert.ErrorIs(t, err, auth.ErrUnknownUserType, "value %q", raw)
		}
	})
}

func TestUserType_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, auth.UserTypePortalAdmin.Valid())
	assert.False(t, auth.UserType("root").Valid())
}
