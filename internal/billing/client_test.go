package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitbook/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(utils.BillingConfig{
		BaseURL:        server.URL,
		FreezePlan:     "hold",
		TimeoutSeconds: 1,
	}, zap.NewNop())
}

func TestNilClientIsDegraded(t *testing.T) {
	client := NewClient(utils.BillingConfig{}, zap.NewNop())
	require.Nil(t, client)

	assert.Equal(t, "freeze", client.FreezePlan())

	err := client.ChangePlan(context.Background(), "sub_1", "freeze")
	assert.ErrorIs(t, err, ErrDegraded)

	_, err = client.GetSubscription(context.Background(), "sub_1")
	assert.ErrorIs(t, err, ErrDegraded)
}

func TestChangePlan(t *testing.T) {
	var gotPath string
	var gotPlan map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPlan))
		w.WriteHeader(http.StatusOK)
	})

	err := client.ChangePlan(context.Background(), "sub_42", "hold")
	require.NoError(t, err)
	assert.Equal(t, "/v1/subscriptions/sub_42/plan", gotPath)
	assert.Equal(t, "hold", gotPlan["plan"])
}

func TestChangePlanServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.ChangePlan(context.Background(), "sub_42", "hold")
	assert.ErrorIs(t, err, ErrDegraded)
}

func TestGetSubscription(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions/sub_42", r.URL.Path)
		json.NewEncoder(w).Encode(Subscription{
			Reference: "sub_42",
			Plan:      "premium",
			Status:    "active",
		})
	})

	sub, err := client.GetSubscription(context.Background(), "sub_42")
	require.NoError(t, err)
	assert.Equal(t, "premium", sub.Plan)
	assert.Equal(t, "active", sub.Status)
}

func TestFreezePlanFromConfig(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, "hold", client.FreezePlan())
}
