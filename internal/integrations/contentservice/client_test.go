package contentservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 2*time.Second, testLogger{}), srv
}

func TestGetSalon(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/salon", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 1,
			"name": "Glow Beauty",
			"whatsappNumber": "79001234567",
			"workingHours": {
				"monday": {"isOpen": true, "openTime": "10:00", "closeTime": "20:00"},
				"sunday": {"isOpen": false}
			}
		}`))
	})
	defer srv.Close()

	salon, err := client.GetSalon(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Glow Beauty", salon.Name)
	assert.Equal(t, "79001234567", salon.WhatsAppNumber)

	monday := salon.WorkingHours.Monday
	assert.True(t, monday.IsOpen)
	require.NotNil(t, monday.OpenTime)
	assert.Equal(t, "10:00", *monday.OpenTime)
	assert.False(t, salon.WorkingHours.Sunday.IsOpen)
}

func TestGetService(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/services/10", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 10, "name": "Стрижка", "durationMins": 60, "priceStartingAt": 1500, "active": true}`))
	})
	defer srv.Close()

	service, err := client.GetService(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), service.ID)
	assert.Equal(t, 60, service.DurationMinutes)
	assert.Equal(t, 1500.0, service.Price)
	assert.True(t, service.Active)
}

func TestGetService_NotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	_, err := client.GetService(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetActiveStaff(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/staff", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "name": "Анна", "active": true}, {"id": 2, "name": "Ольга", "active": true}]`))
	})
	defer srv.Close()

	staff, err := client.GetActiveStaff(context.Background())
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, "Анна", staff[0].Name)
}

func TestGetActiveStaffWithGracefulDegradation(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.GetActiveStaffWithGracefulDegradation(context.Background())
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestGetJSON_UnexpectedStatus(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.GetSalon(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
