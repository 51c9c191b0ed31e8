package taxengine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"officebot/configs"
	"officebot/internal/taxconfig"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	doc, err := taxconfig.ParseDocument(configs.TaxYears)
	require.NoError(t, err)
	reg, err := taxconfig.LoadRegistry(doc)
	require.NoError(t, err)
	return New(taxconfig.NewStore(reg))
}

func profile(t *testing.T, status taxconfig.MaritalStatus, deps int, npwp bool) taxconfig.Profile {
	t.Helper()
	p, err := taxconfig.NewProfile(status, deps, npwp)
	require.NoError(t, err)
	return p
}
