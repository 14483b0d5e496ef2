package policy

import (
	"strings"
	"testing"

	"cosmetic-platform-dataset/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLookup(t *testing.T, name string) catalog.TableSpec {
	t.Helper()
	spec, err := catalog.Lookup(name)
	require.NoError(t, err)
	return spec
}

func TestEvaluate_UserOwnedTables(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	for _, spec := range catalog.All() {
		if spec.Access != catalog.AccessUserOwned {
			continue
		}
		t.Run(spec.Name, func(t *testing.T) {
			row := Row{Owner: &owner}

			assert.True(t, Evaluate(spec, ActionSelect, Authenticated(owner), row).Allowed)
			assert.True(t, Evaluate(spec, ActionUpdate, Authenticated(owner), row).Allowed)
			assert.False(t, Evaluate(spec, ActionSelect, Authenticated(stranger), row).Allowed)
			assert.False(t, Evaluate(spec, ActionUpdate, Authenticated(stranger), row).Allowed)
			assert.False(t, Evaluate(spec, ActionSelect, Anonymous(), row).Allowed)
			assert.False(t, Evaluate(spec, ActionDelete, Authenticated(owner), row).Allowed)

			assert.True(t, Evaluate(spec, ActionInsert, Authenticated(owner), Row{NewOwner: &owner}).Allowed)
			assert.False(t, Evaluate(spec, ActionInsert, Authenticated(owner), Row{NewOwner: &stranger}).Allowed)
		})
	}
}

func TestEvaluate_UpdateCannotHandRowToAnotherUser(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	d := Evaluate(mustLookup(t, "notifications"), ActionUpdate, Authenticated(owner), Row{Owner: &owner, NewOwner: &stranger})
	assert.False(t, d.Allowed)
	assert.Equal(t, "new row fails WITH CHECK", d.Reason)
}

func TestEvaluate_ReferenceTables(t *testing.T) {
	spec := mustLookup(t, "body_parts")

	assert.True(t, Evaluate(spec, ActionSelect, Anonymous(), Row{}).Allowed)
	assert.True(t, Evaluate(spec, ActionSelect, Authenticated(uuid.New()), Row{}).Allowed)
	assert.False(t, Evaluate(spec, ActionInsert, Authenticated(uuid.New()), Row{}).Allowed)
	assert.False(t, Evaluate(spec, ActionUpdate, Authenticated(uuid.New()), Row{}).Allowed)
	assert.True(t, Evaluate(spec, ActionInsert, ServiceRole(), Row{}).Allowed)
}

func TestEvaluate_Community(t *testing.T) {
	spec := mustLookup(t, "community")
	author := uuid.New()
	other := uuid.New()
	row := Row{Owner: &author}

	assert.True(t, Evaluate(spec, ActionSelect, Anonymous(), row).Allowed)
	assert.True(t, Evaluate(spec, ActionInsert, Authenticated(other), Row{NewOwner: &other}).Allowed)
	assert.False(t, Evaluate(spec, ActionInsert, Anonymous(), Row{}).Allowed)
	assert.True(t, Evaluate(spec, ActionUpdate, Authenticated(author), row).Allowed)
	assert.False(t, Evaluate(spec, ActionUpdate, Authenticated(other), row).Allowed)
}

func TestEvaluate_RestrictedDeniesEveryoneButServiceRole(t *testing.T) {
	spec := mustLookup(t, "invoices")
	user := uuid.New()

	d := Evaluate(spec, ActionSelect, Authenticated(user), Row{Owner: &user})
	assert.False(t, d.Allowed)
	assert.Equal(t, "false", d.Using)
	assert.True(t, Evaluate(spec, ActionSelect, ServiceRole(), Row{}).Allowed)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" update ")
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, a)

	_, err = ParseAction("truncate")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRender(t *testing.T) {
	script := Render(catalog.All())

	assert.Contains(t, script, "ALTER TABLE public.notifications ENABLE ROW LEVEL SECURITY;")
	assert.Contains(t, script, `CREATE POLICY "notifications_owner_read" ON public.notifications FOR SELECT USING (auth.uid() = user_id);`)
	assert.Contains(t, script, `CREATE POLICY "notifications_owner_insert" ON public.notifications FOR INSERT WITH CHECK (auth.uid() = user_id);`)
	assert.Contains(t, script, `CREATE POLICY "users_owner_update" ON public.users FOR UPDATE USING (auth.uid() = id) WITH CHECK (auth.uid() = id);`)
	assert.Contains(t, script, `CREATE POLICY "body_parts_public_read" ON public.body_parts FOR SELECT USING (true);`)
	assert.Contains(t, script, `CREATE POLICY "community_authenticated_insert" ON public.community FOR INSERT WITH CHECK (auth.uid() IS NOT NULL);`)
	assert.Contains(t, script, `CREATE POLICY "leads_deny_all" ON public.leads FOR SELECT USING (false);`)
}

func TestStatements_EveryCreateIsPrecededByDrop(t *testing.T) {
	stmts := Statements(catalog.All())
	for i, stmt := range stmts {
		if !strings.HasPrefix(stmt, "CREATE POLICY") {
			continue
		}
		require.Greater(t, i, 0)
		assert.True(t, strings.HasPrefix(stmts[i-1], "DROP POLICY IF EXISTS"), stmt)
	}
}
