package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/model"
)

type fixture struct {
	dbm    *database.DatabaseManager
	alice  *model.User
	bob    *model.User
	apollo *model.Project
	gemini *model.Project
}

func prepare(t *testing.T) *fixture {
	ctx := context.Background()

	db, err := database.GetDatabase(":memory:", false)
	require.NoError(t, err)

	f := &fixture{dbm: database.New(db)}
	require.NoError(t, f.dbm.Migrate())

	f.alice = &model.User{Email: "alice@x.com", Name: "alice"}
	f.bob = &model.User{Email: "bob@x.com", Name: "bob"}
	f.apollo = &model.Project{Name: "Apollo"}
	f.gemini = &model.Project{Name: "Gemini"}

	for _, s := range []any{f.alice, f.bob, f.apollo, f.gemini} {
		require.NoError(t, f.dbm.Create(ctx, s))
	}

	require.NoError(t, f.dbm.Create(ctx, &model.Member{UserID: f.alice.ID, ProjectID: f.apollo.ID, Role: model.RoleAdmin}))
	require.NoError(t, f.dbm.Create(ctx, &model.Member{UserID: f.alice.ID, ProjectID: f.gemini.ID, Role: model.RoleGuest}))

	return f
}

func TestProjectIDsFor(t *testing.T) {
	ctx := context.Background()
	f := prepare(t)
	a := NewAuthorizer(f.dbm)

	ids, err := a.ProjectIDsFor(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f.apollo.ID, f.gemini.ID}, ids)

	ids, err = a.ProjectIDsFor(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = a.ProjectIDsFor(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	f := prepare(t)
	a := NewAuthorizer(f.dbm)

	s, err := a.Scope(ctx, "alice@x.com", f.apollo.ID)
	require.NoError(t, err)
	assert.Equal(t, f.apollo.ID, s.ProjectID())
	assert.Equal(t, f.alice.ID, s.UserID())
	assert.Equal(t, model.RoleAdmin, s.Role())
	assert.NotEqual(t, uuid.Nil, s.MemberID())

	s, err = a.Scope(ctx, "alice@x.com", f.gemini.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, s.Role())

	_, err = a.Scope(ctx, "bob@x.com", f.apollo.ID)
	require.ErrorIs(t, err, ErrNotMember)

	_, err = a.Scope(ctx, "alice@x.com", uuid.New())
	require.ErrorIs(t, err, ErrNotMember)

	_, err = a.Scope(ctx, "", f.apollo.ID)
	require.ErrorIs(t, err, ErrNotMember)

	// email match is exact
	_, err = a.Scope(ctx, "Alice@x.com", f.apollo.ID)
	require.ErrorIs(t, err, ErrNotMember)
}

func TestScopeQueryRechecksMembership(t *testing.T) {
	ctx := context.Background()
	f := prepare(t)
	a := NewAuthorizer(f.dbm)

	s, err := a.Scope(ctx, "alice@x.com", f.apollo.ID)
	require.NoError(t, err)

	var names []string
	require.NoError(t, s.Query(ctx).Pluck("p.name", &names).Error)
	assert.Equal(t, []string{"Apollo"}, names)

	require.NoError(t, f.dbm.DB(ctx).Where("user_id = ?", f.alice.ID).Delete(&model.Member{}).Error)

	names = nil
	require.NoError(t, s.Query(ctx).Pluck("p.name", &names).Error)
	assert.Empty(t, names)
}
