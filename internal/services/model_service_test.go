package services_test

import (
	"strings"
	"testing"

	"autocorrect/internal/models"
	"autocorrect/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelCatalog_EmbeddedModels(t *testing.T) {
	catalog, err := services.NewModelCatalog()
	require.NoError(t, err)

	list := catalog.ListModels()
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"gemini-1.5-flash", "gpt-4o-mini", "claude-3-5-haiku-latest", "custom"}, ids)

	gemini, ok := catalog.GetModel("gemini-1.5-flash")
	require.True(t, ok)
	assert.Equal(t, models.ProviderGoogle, gemini.Provider)
	assert.Equal(t, "gemini-2.5-flash", gemini.ProviderModel)
	assert.False(t, gemini.Configurable)

	custom, ok := catalog.GetModel("custom")
	require.True(t, ok)
	assert.True(t, custom.Configurable)

	_, ok = catalog.GetModel("mistral-large")
	assert.False(t, ok)
}

func TestModelCatalog_ListReturnsCopy(t *testing.T) {
	catalog, err := services.NewModelCatalog()
	require.NoError(t, err)

	list := catalog.ListModels()
	list[0].DisplayName = "changed"

	again, _ := catalog.GetModel(list[0].ID)
	assert.NotEqual(t, "changed", again.DisplayName)
}

func TestModelCatalog_SystemModes(t *testing.T) {
	catalog, err := services.NewModelCatalog()
	require.NoError(t, err)

	modes := catalog.SystemModes()
	ids := make([]string, 0, len(modes))
	for _, m := range modes {
		ids = append(ids, m.ID)
		assert.True(t, m.System, m.ID)
		assert.NotEmpty(t, m.Prompt, m.ID)

		hasPlaceholders := strings.Contains(m.Prompt, "{original_message}") && strings.Contains(m.Prompt, "{user_response}")
		assert.Equal(t, m.ID == models.ReplyModeID, hasPlaceholders, m.ID)
	}
	assert.Equal(t, []string{
		"traduire", "analyser", "corriger", "professionaliser",
		"etendre", "reformuler", "repondre", "resumer",
	}, ids)
}

func TestModelCatalog_RejectsInvalidAssets(t *testing.T) {
	modes := []byte(`{"modes":[]}`)

	_, err := services.NewModelCatalogFromData([]byte(`{"models":[{"id":"a","provider":"google"},{"id":"a","provider":"openai"}]}`), modes)
	assert.ErrorContains(t, err, "duplicate model a")

	_, err = services.NewModelCatalogFromData([]byte(`{"models":[{"id":"a","provider":"mistral"}]}`), modes)
	assert.ErrorContains(t, err, "unknown provider")

	_, err = services.NewModelCatalogFromData([]byte(`{"models":[]}`), []byte(`{"modes":[{"id":"x","prompt":""}]}`))
	assert.ErrorContains(t, err, "has no prompt")

	_, err = services.NewModelCatalogFromData([]byte(`not json`), modes)
	assert.Error(t, err)
}
