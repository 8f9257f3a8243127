package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Por vencer", tr.Label("es", "warranty.status", "expiring_soon"))
	assert.Equal(t, "Expiring soon", tr.Label("en-US", "warranty.status", "expiring_soon"))
	assert.Equal(t, "Claimed", tr.Label("", "warranty.status", "claimed"))
	assert.Equal(t, "Pendiente", tr.Label("es-MX,es;q=0.9", "job.status", "pending"))
	assert.Equal(t, "Claimed", tr.Label("fr", "warranty.status", "claimed"))
	assert.Equal(t, "warranty.status.unknown", tr.Label("en", "warranty.status", "unknown"))
}

func TestTranslator_TemplateData(t *testing.T) {
	tr, err := New("es")
	require.NoError(t, err)

	got := tr.T("", "sale.description.repair", map[string]any{"Device": "Apple iPhone 12", "Work": "Cambio de pantalla"})
	assert.Equal(t, "Reparación: Apple iPhone 12 - Cambio de pantalla", got)
}

func TestNew_RejectsBadLanguage(t *testing.T) {
	_, err := New("??")
	assert.Error(t, err)
}
