package orgstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.orgdiff.io/orgdiff/pkg/models"
	"go.uber.org/zap/zaptest"
)

const authFileYAML = `
activeOrg: prod
orgs:
  prod:
    instanceUrl: https://acme.my.salesforce.com
    accessToken: token-prod
    apiVersion: "60.0"
  uat:
    instanceUrl: https://acme--uat.sandbox.my.salesforce.com
    accessToken: token-uat
`

func writeAuthFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orgs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveNamedOrg(t *testing.T) {
	store := New(zaptest.NewLogger(t), writeAuthFile(t, authFileYAML), "59.0")

	auth, err := store.Resolve(context.Background(), "prod")
	require.NoError(t, err)
	assert.Equal(t, models.OrgAuth{
		InstanceURL: "https://acme.my.salesforce.com",
		AccessToken: "token-prod",
		APIVersion:  "60.0",
	}, auth)
}

func TestResolveActiveOrgWhenIDEmpty(t *testing.T) {
	store := New(zaptest.NewLogger(t), writeAuthFile(t, authFileYAML), "59.0")

	auth, err := store.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "token-prod", auth.AccessToken)
}

func TestResolveAPIVersionFallback(t *testing.T) {
	store := New(zaptest.NewLogger(t), writeAuthFile(t, authFileYAML), "59.0")

	auth, err := store.Resolve(context.Background(), "uat")
	require.NoError(t, err)
	assert.Equal(t, "59.0", auth.APIVersion)
}

func TestResolveUnknownOrg(t *testing.T) {
	store := New(zaptest.NewLogger(t), writeAuthFile(t, authFileYAML), "59.0")

	_, err := store.Resolve(context.Background(), "staging")
	require.Error(t, err)
	assert.Equal(t, models.ErrCredential, models.ErrorKind(err))
	assert.Contains(t, err.Error(), `no active session found for org "staging"`)
}

func TestResolveMissingAuthFile(t *testing.T) {
	store := New(zaptest.NewLogger(t), filepath.Join(t.TempDir(), "missing.yaml"), "59.0")

	_, err := store.Resolve(context.Background(), "prod")
	require.Error(t, err)
	assert.Equal(t, models.ErrCredential, models.ErrorKind(err))
}

func TestResolveNoActiveOrgSet(t *testing.T) {
	store := New(zaptest.NewLogger(t), writeAuthFile(t, "orgs: {}\n"), "59.0")

	_, err := store.Resolve(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, models.ErrCredential, models.ErrorKind(err))
}

func TestResolveIncompleteSession(t *testing.T) {
	content := `
activeOrg: broken
orgs:
  broken:
    instanceUrl: https://acme.my.salesforce.com
`
	store := New(zaptest.NewLogger(t), writeAuthFile(t, content), "59.0")

	_, err := store.Resolve(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, models.ErrCredential, models.ErrorKind(err))
}
