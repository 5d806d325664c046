package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaranja/freelancecrm/internal/api"
)

func TestTransport_SetsHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL+"/", api.WithTokenFunc(func() (string, bool) {
		return "tok123", true
	}))

	var out map[string]any
	require.NoError(t, transport.Get(context.Background(), "/clients/", &out))

	require.Equal(t, "/clients/", got.URL.Path)
	require.Equal(t, "Bearer tok123", got.Header.Get("Authorization"))
	require.Equal(t, "application/json", got.Header.Get("Accept"))
	require.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestTransport_NoTokenNoAuthorizationHeader(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL, api.WithTokenFunc(func() (string, bool) {
		return "", false
	}))
	require.NoError(t, transport.Delete(context.Background(), "/clients/1/"))
	require.Empty(t, got.Header.Get("Authorization"))
}

func TestTransport_PostEncodesBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 5}`))
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL)

	var out struct {
		ID int64 `json:"id"`
	}
	err := transport.Post(context.Background(), "/projects/", map[string]any{"title": "Site"}, &out)
	require.NoError(t, err)
	require.Equal(t, "Site", body["title"])
	require.Equal(t, int64(5), out.ID)
}

func TestTransport_DetailErrorBecomesGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Not found."}`))
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL)
	err := transport.Get(context.Background(), "/projects/", nil)
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.KindGeneric, apiErr.Kind)
	require.Equal(t, "Not found.", apiErr.Message)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestTransport_FieldErrorKeepsFieldAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"username": ["Username already taken."]}`))
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL)
	err := transport.Post(context.Background(), "/register/", map[string]any{}, nil)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.KindField, apiErr.Kind)
	require.Equal(t, "username", apiErr.Field)
	require.Equal(t, "Username already taken.", apiErr.Message)
	require.Equal(t, "username: Username already taken.", apiErr.Error())
}

func TestTransport_MultipleFieldErrorsAreDeterministic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"username": ["u bad"], "password": ["p bad"]}`))
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL)
	err := transport.Post(context.Background(), "/register/", map[string]any{}, nil)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "password", apiErr.Field)
}

func TestTransport_UnauthorizedMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token is invalid or expired"}`))
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL)
	err := transport.Get(context.Background(), "/projects/", nil)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.Contains(t, err.Error(), "Token is invalid or expired")
}

func TestTransport_NonJSONErrorBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	transport := api.NewTransport(srv.URL)
	err := transport.Get(context.Background(), "/projects/", nil)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.KindGeneric, apiErr.Kind)
	require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestAuthClient_RefreshKeepsOldRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access": "fresh"}`))
	}))
	defer srv.Close()

	client := api.NewAuthClient(api.NewTransport(srv.URL))
	pair, err := client.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	require.Equal(t, "fresh", pair.Access)
	require.Equal(t, "old-refresh", pair.Refresh)
}

func TestAuthClient_ObtainInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
	}))
	defer srv.Close()

	client := api.NewAuthClient(api.NewTransport(srv.URL))
	_, err := client.Obtain(context.Background(), "kay", "wrong")
	require.True(t, errors.Is(err, api.ErrUnauthorized))
}
