package maestro

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Credentials hold the client-credentials grant parameters for the Maestro
// tenant.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Scope        string
}

// ErrMissingCredentials reports that the environment does not carry a
// complete set of Maestro credentials.
var ErrMissingCredentials = errors.New("missing maestro credentials")

// CredentialsFromEnv reads the grant parameters from TENANT_ID, CLIENT_ID,
// CLIENT_SECRET and SCOPE. All four are required.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		TenantID:     os.Getenv("TENANT_ID"),
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
		Scope:        os.Getenv("SCOPE"),
	}
	var missing []string
	if creds.TenantID == "" {
		missing = append(missing, "TENANT_ID")
	}
	if creds.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if creds.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}
	if creds.Scope == "" {
		missing = append(missing, "SCOPE")
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: %s not set", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return creds, nil
}

// TokenSource obtains bearer tokens through the OAuth2 client-credentials
// flow and caches them until shortly before they expire.
type TokenSource struct {
	creds Credentials
	// TokenURL is the token endpoint. It defaults to the Microsoft identity
	// platform endpoint for the tenant and can be overridden in tests.
	TokenURL string
	http     *http.Client

	token  string
	expiry time.Time
}

// NewTokenSource returns a token source for the given credentials.
func NewTokenSource(creds Credentials) *TokenSource {
	return &TokenSource{
		creds:    creds,
		TokenURL: fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", creds.TenantID),
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// AuthHeader returns the Authorization header value, requesting a fresh
// token only when the cached one has expired.
func (t *TokenSource) AuthHeader() (string, error) {
	if t.token != "" && time.Now().Before(t.expiry) {
		return "Bearer " + t.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {t.creds.ClientID},
		"client_secret": {t.creds.ClientSecret},
		"scope":         {t.creds.Scope},
	}
	resp, err := t.http.PostForm(t.TokenURL, form)
	if err != nil {
		return "", fmt.Errorf("cannot request token: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("cannot read token response: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("cannot request token: %v: %s", resp.Status, body)
	}

	var jresp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &jresp); err != nil {
		return "", fmt.Errorf("cannot parse token response: %w", err)
	}
	if jresp.AccessToken == "" {
		return "", errors.New("token response has no access_token")
	}

	t.token = jresp.AccessToken
	// renew a minute early so an in-flight request never carries a stale token
	t.expiry = time.Now().Add(time.Duration(jresp.ExpiresIn)*time.Second - time.Minute)
	return "Bearer " + t.token, nil
}
