package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maimoon-github/Professional-Portfolio/internal/auth"
)

func TestSeed(t *testing.T) {
	f, err := os.CreateTemp("", "portfolio-seed-test-*.db")
	require.NoError(t, err)
	dbPath := f.Name()
	require.NoError(t, f.Close())

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})
	require.NoError(t, Migrate(db))

	ctx := context.Background()
	require.NoError(t, Seed(ctx, db))

	queries := New(db)

	// Staff account created with the default credentials.
	user, err := queries.GetUserByEmail(ctx, DefaultStaffEmail)
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.Equal(t, DefaultStaffName, user.Name)

	ok, err := auth.CheckPassword(DefaultStaffPassword, user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Settings singleton exists.
	_, err = queries.GetSiteSetting(ctx)
	require.NoError(t, err)

	// Second run changes nothing.
	require.NoError(t, Seed(ctx, db))
	count, err := queries.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
