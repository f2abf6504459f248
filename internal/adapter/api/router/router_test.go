package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmatch/internal/adapter/api"
	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"
	"bizmatch/internal/adapter/repository"
	"bizmatch/internal/infrastructure/ratelimit"
	"bizmatch/internal/infrastructure/websocket"
	"bizmatch/internal/usecase"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	stores := repository.NewMemoryStores()
	settings := usecase.Settings{}

	engagements := usecase.NewEngagementUseCase(stores.Engagements, nil, settings)
	chat := usecase.NewChatUseCase(stores.Conversations, engagements, nil, settings)
	ratings := usecase.NewRatingUseCase(stores.Ratings, stores.Engagements, stores.Providers, nil, settings)
	profiles := usecase.NewProfileUseCase(stores.Requesters, stores.Providers, stores.Offerings, settings)
	search := usecase.NewSearchUseCase(stores.Offerings, stores.Providers)
	matching := usecase.NewMatchingUseCase(stores.Requesters, stores.Providers, stores.Matches, search)

	handler.Setup(profiles, search, matching, chat, engagements, ratings)

	e := echo.New()
	e.Validator = api.NewValidator()
	Setup(e,
		middleware.NewAuthMiddleware(),
		middleware.NewRateLimitMiddleware(ratelimit.NewRateLimiter(1000)),
		handler.NewWebSocketHandler(websocket.NewManager()),
	)
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, userID, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(middleware.UserHeader, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")
}

func TestMissingUserHeaderIsUnauthorized(t *testing.T) {
	e := newTestServer(t)

	rec, env := call(t, e, http.MethodGet, "/v1/conversations", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestConversationToRatingOverHTTP(t *testing.T) {
	e := newTestServer(t)

	rec, env := call(t, e, http.MethodPost, "/v1/conversations", "req-1", `{"provider_id":"prov-1","match_id":"match-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var conversation struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, env.Data, &conversation)
	assert.Equal(t, "active", conversation.Status)

	_, env = call(t, e, http.MethodPost, "/v1/conversations", "req-1", `{"provider_id":"prov-1","match_id":"match-1"}`)
	var again struct {
		ID string `json:"id"`
	}
	decode(t, env.Data, &again)
	assert.Equal(t, conversation.ID, again.ID)

	rec, env = call(t, e, http.MethodPost, "/v1/conversations/"+conversation.ID+"/messages", "prov-1",
		`{"type":"quote","quote":{"service_name":"Auditoria SEO","price":900}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var message struct {
		Quote struct {
			ID       string `json:"id"`
			Status   string `json:"status"`
			Currency string `json:"currency"`
		} `json:"quote"`
	}
	decode(t, env.Data, &message)
	assert.Equal(t, "pending", message.Quote.Status)
	assert.Equal(t, "EUR", message.Quote.Currency)

	rec, env = call(t, e, http.MethodPost, "/v1/quotes/"+message.Quote.ID+"/respond", "req-1", `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, env.Data, &message)
	assert.Equal(t, "accepted", message.Quote.Status)

	rec, _ = call(t, e, http.MethodPost, "/v1/conversations/"+conversation.ID+"/close", "req-1", `{"reason":"done"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = call(t, e, http.MethodGet, "/v1/engagements/conversation/"+conversation.ID, "req-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var engagement struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, env.Data, &engagement)
	assert.Equal(t, "completed", engagement.Status)

	body := `{"engagement_id":"` + engagement.ID + `","score":5,"comment":"great"}`
	rec, _ = call(t, e, http.MethodPost, "/v1/ratings", "req-1", body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = call(t, e, http.MethodPost, "/v1/ratings", "req-1", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	_, env = call(t, e, http.MethodGet, "/v1/ratings/engagement/"+engagement.ID+"/eligibility", "req-1", "")
	var eligibility map[string]bool
	decode(t, env.Data, &eligibility)
	assert.False(t, eligibility["can_rate"])

	_, env = call(t, e, http.MethodGet, "/v1/ratings/engagement/"+engagement.ID+"/eligibility", "prov-1", "")
	decode(t, env.Data, &eligibility)
	assert.True(t, eligibility["can_rate"])
}

func TestRatingScoreValidation(t *testing.T) {
	e := newTestServer(t)

	rec, env := call(t, e, http.MethodPost, "/v1/ratings", "req-1", `{"engagement_id":"engagement_x","score":9}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "score must be at most 5", env.Error.Message)
}

func TestUnknownQuoteIsNotFound(t *testing.T) {
	e := newTestServer(t)

	rec, env := call(t, e, http.MethodPost, "/v1/quotes/quote_missing/respond", "req-1", `{"status":"rejected"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestConversationCreationIsRateLimited(t *testing.T) {
	e := newTestServer(t)

	for i := 0; i < 5; i++ {
		rec, _ := call(t, e, http.MethodPost, "/v1/conversations", "req-1", `{"provider_id":"prov-1"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, env := call(t, e, http.MethodPost, "/v1/conversations", "req-1", `{"provider_id":"prov-1"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.NotNil(t, env.Error)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)

	rec, _ = call(t, e, http.MethodPost, "/v1/conversations", "req-2", `{"provider_id":"prov-1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPublishAndSearchOfferings(t *testing.T) {
	e := newTestServer(t)

	rec, _ := call(t, e, http.MethodPost, "/v1/my-offerings", "prov-1", `{"type":"service","name":"Posicionamiento SEO","min_price":500,"max_price":900}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, "publishing needs a provider profile")

	rec, _ = call(t, e, http.MethodPut, "/v1/profiles/provider", "prov-1", `{"business_name":"Agencia Norte","location":"Barcelona"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = call(t, e, http.MethodPost, "/v1/my-offerings", "prov-1", `{"type":"service","name":"Posicionamiento SEO","min_price":500,"max_price":900,"tags":["seo"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec, _ = call(t, e, http.MethodPost, "/v1/my-offerings", "prov-1", `{"type":"product","name":"Plantilla de tienda","min_price":120}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := call(t, e, http.MethodGet, "/v1/offerings?term=seo", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Items []struct {
			Offering struct {
				Name     string `json:"name"`
				Location string `json:"location"`
			} `json:"offering"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	decode(t, env.Data, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Posicionamiento SEO", page.Items[0].Offering.Name)
	assert.Equal(t, "Barcelona", page.Items[0].Offering.Location)

	rec, _ = call(t, e, http.MethodGet, "/v1/offerings?max_price=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = call(t, e, http.MethodGet, "/v1/profiles/provider/prov-1", "req-1", "")
	var provider struct {
		Services []string `json:"services"`
	}
	decode(t, env.Data, &provider)
	assert.ElementsMatch(t, []string{"Posicionamiento SEO", "Plantilla de tienda"}, provider.Services)
}

func TestLifecycleActionsRequireParticipant(t *testing.T) {
	e := newTestServer(t)

	rec, env := call(t, e, http.MethodPost, "/v1/conversations", "req-1", `{"provider_id":"prov-1","match_id":"match-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var conversation struct {
		ID string `json:"id"`
	}
	decode(t, env.Data, &conversation)

	rec, env = call(t, e, http.MethodPost, "/v1/conversations/"+conversation.ID+"/messages", "prov-1",
		`{"type":"quote","quote":{"service_name":"Auditoria SEO","price":900}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var message struct {
		Quote struct {
			ID string `json:"id"`
		} `json:"quote"`
	}
	decode(t, env.Data, &message)

	rec, env = call(t, e, http.MethodPost, "/v1/quotes/"+message.Quote.ID+"/respond", "prov-1", `{"status":"accepted"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, _ = call(t, e, http.MethodPost, "/v1/quotes/"+message.Quote.ID+"/respond", "stranger", `{"status":"rejected"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = call(t, e, http.MethodPost, "/v1/conversations/"+conversation.ID+"/close", "stranger", `{"reason":"done"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = call(t, e, http.MethodGet, "/v1/engagements/conversation/"+conversation.ID, "req-1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var engagement struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, env.Data, &engagement)

	rec, _ = call(t, e, http.MethodPatch, "/v1/engagements/"+engagement.ID+"/status", "stranger", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = call(t, e, http.MethodPatch, "/v1/engagements/"+engagement.ID+"/status", "prov-1", `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, env.Data, &engagement)
	assert.Equal(t, "in_progress", engagement.Status)

	rec, _ = call(t, e, http.MethodPost, "/v1/conversations/"+conversation.ID+"/close", "req-1", `{"reason":"done"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
