package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"reserve-assistant/api/hotpepper"
	"reserve-assistant/api/llm"
	"reserve-assistant/api/places"
	"reserve-assistant/config"
	"reserve-assistant/models"
)

func TestNewContainer_DevWithoutCredentialsUsesMocks(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")
	cfg := config.NewDefaultConfig()

	c, err := NewContainer(context.Background(), cfg, arbor.NewLogger())
	require.NoError(t, err)

	assert.IsType(t, &hotpepper.HotPepperApiClientMock{}, c.HotPepperAPI)
	assert.IsType(t, &places.PlacesApiClientMock{}, c.PlacesAPI)
	assert.Nil(t, c.TextGenerator)
	assert.NotNil(t, c.SessionJanitor)
	assert.Equal(t, 5, c.DirectoryPool.Size())
	assert.Equal(t, 10, c.VenueCheckPool.Size())
	assert.Equal(t, 10, c.EnrichmentPool.Size())

	off := false
	session, err := c.SearchService.NewSearch(context.Background(), models.SearchRequest{
		Prefecture:  "東京都",
		Area:        "大手町",
		PartySize:   20,
		TargetDate:  "2026-10-25", // Sunday
		TargetTime:  "19:00",
		RandomStart: &off,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeOK, session.Outcome)
	assert.NotEmpty(t, session.Results)
	assert.LessOrEqual(t, len(session.Results), 20)
	for _, v := range session.Results {
		assert.NotEqual(t, "日", v.Close)
		assert.Equal(t, 4.1, v.Rating)
	}

	stored, err := c.RedisSessionDao.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Start, stored.Start)
}

func TestNewContainer_RoutesServeSearch(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")
	c, err := NewContainer(context.Background(), config.NewDefaultConfig(), arbor.NewLogger())
	require.NoError(t, err)
	c.Router.RegisterRoutes()

	body := `{"prefecture":"東京都","area":"大手町","party_size":2,"random_start":false}`
	req := httptest.NewRequest("POST", "/v1/search", strings.NewReader(body))
	rr := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"session_id"`)
}

func TestNewContainer_ConfiguredClientsAndModel(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.HotPepper.APIKey = "hp-key"
	cfg.Places.APIKey = "g-key"
	cfg.Model.Provider = config.MODEL_PROVIDER_OPENAI
	cfg.Model.OpenAIAPIKey = "sk-test"

	c, err := NewContainer(context.Background(), cfg, arbor.NewLogger())
	require.NoError(t, err)

	assert.IsType(t, &hotpepper.HotPepperApiClient{}, c.HotPepperAPI)
	assert.IsType(t, &places.PlacesApiClient{}, c.PlacesAPI)
	assert.IsType(t, &llm.OpenAITextGenerator{}, c.TextGenerator)
}

func TestNewContainer_AnthropicModel(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.HotPepper.APIKey = "hp-key"
	cfg.Places.APIKey = "g-key"
	cfg.Model.Provider = config.MODEL_PROVIDER_ANTHROPIC
	cfg.Model.AnthropicAPIKey = "sk-ant"

	c, err := NewContainer(context.Background(), cfg, arbor.NewLogger())
	require.NoError(t, err)
	assert.IsType(t, &llm.AnthropicTextGenerator{}, c.TextGenerator)
}

func TestNewContainer_UnknownModelProvider(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.HotPepper.APIKey = "hp-key"
	cfg.Places.APIKey = "g-key"
	cfg.Model.Provider = "other"
	cfg.Model.GeminiAPIKey = "key"

	_, err := NewContainer(context.Background(), cfg, arbor.NewLogger())
	assert.Error(t, err)
}
