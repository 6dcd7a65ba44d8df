package maestro

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AndreFelix74/divulga-rentab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticAuth is an AuthProvider with a fixed header, enough for tests.
type staticAuth string

func (s staticAuth) AuthHeader() (string, error) { return string(s), nil }

func setCredentialsEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TENANT_ID", "tenant-1")
	t.Setenv("CLIENT_ID", "client-1")
	t.Setenv("CLIENT_SECRET", "secret-1")
	t.Setenv("SCOPE", "api://maestro/.default")
}

func TestCredentialsFromEnv(t *testing.T) {
	setCredentialsEnv(t)

	creds, err := CredentialsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", creds.TenantID)
	assert.Equal(t, "api://maestro/.default", creds.Scope)
}

func TestCredentialsFromEnvMissing(t *testing.T) {
	setCredentialsEnv(t)
	t.Setenv("CLIENT_SECRET", "")

	_, err := CredentialsFromEnv()
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "CLIENT_SECRET")
}

func TestTokenSourceCachesToken(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		w.Write([]byte(`{"access_token":"tok-123","expires_in":3600}`))
	}))
	defer srv.Close()

	ts := NewTokenSource(Credentials{TenantID: "tenant-1", ClientID: "client-1", ClientSecret: "secret-1", Scope: "scope-1"})
	ts.TokenURL = srv.URL

	header, err := ts.AuthHeader()
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", header)

	header, err = ts.AuthHeader()
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", header)
	assert.Equal(t, 1, hits, "second call must reuse the cached token")
}

func TestTokenSourceRefreshesExpiredToken(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"access_token":"tok-123","expires_in":3600}`))
	}))
	defer srv.Close()

	ts := NewTokenSource(Credentials{})
	ts.TokenURL = srv.URL

	_, err := ts.AuthHeader()
	require.NoError(t, err)

	ts.expiry = time.Now().Add(-time.Second)
	_, err = ts.AuthHeader()
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestTokenSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	ts := NewTokenSource(Credentials{})
	ts.TokenURL = srv.URL

	_, err := ts.AuthHeader()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestFetchEntities(t *testing.T) {
	payloads := map[string]string{
		"/investimentos/Grupos":      `[{"id":10,"nome":"Renda Fixa"},{"id":11,"nome":"Renda Variável"}]`,
		"/investimentos/Indexadores": `[{"id":20,"nome":"IPCA"}]`,
		"/investimentos/Planos":      `[{"id":30,"nome":"Plano A"}]`,
		"/investimentos/TiposPlanos": `[{"id":40,"nome":"CD"}]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		payload, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticAuth("Bearer tok-123"))
	entities, err := c.FetchEntities()
	require.NoError(t, err)
	require.Len(t, entities, 5)
	assert.Contains(t, entities, rentab.ApiEntity{Kind: rentab.KindGroup, Name: "Renda Fixa", ID: 10})
	assert.Contains(t, entities, rentab.ApiEntity{Kind: rentab.KindIndexer, Name: "IPCA", ID: 20})
	assert.Contains(t, entities, rentab.ApiEntity{Kind: rentab.KindPlan, Name: "Plano A", ID: 30})
	assert.Contains(t, entities, rentab.ApiEntity{Kind: rentab.KindPlanType, Name: "CD", ID: 40})
}

func TestFetchEntitiesEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/investimentos/Indexadores" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticAuth("Bearer t"))
	_, err := c.FetchEntities()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEXADOR")
}

func TestFetchOfficialReturns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case monthlyReturnsEndpoint:
			w.Write([]byte(`[{"planoId":30,"ano":2024,"mes":1,"valor":3.02},{"planoId":30,"ano":2024,"mes":2,"valor":-0.5}]`))
		case annualReturnsEndpoint:
			w.Write([]byte(`[{"planoId":30,"ano":2024,"valor":12.5}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticAuth("Bearer t"))
	returns, err := c.FetchOfficialReturns()
	require.NoError(t, err)
	require.Len(t, returns, 3)

	jan := returns[0]
	assert.Equal(t, int64(30), jan.APIID)
	assert.Equal(t, 2024, jan.Year)
	assert.Equal(t, time.January, jan.Month)
	assert.InDelta(t, 0.0302, float64(jan.Value), 1e-12, "percent points must become fractions")

	assert.InDelta(t, -0.005, float64(returns[1].Value), 1e-12)

	annual := returns[2]
	assert.Equal(t, time.Month(0), annual.Month)
	assert.InDelta(t, 0.125, float64(annual.Value), 1e-12)
}

func TestFetchOfficialReturnsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticAuth("Bearer t"))
	_, err := c.FetchOfficialReturns()
	require.Error(t, err)
}
