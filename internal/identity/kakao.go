package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	// DefaultKakaoBaseURL is the public Kakao API host.
	DefaultKakaoBaseURL = "https://kapi.kakao.com"

	kakaoUserInfoPath = "/v2/user/me"

	// DefaultKakaoTimeout bounds the outbound profile fetch.
	DefaultKakaoTimeout = 5 * time.Second
)

// KakaoClient fetches account profiles from the Kakao user endpoint using an
// opaque access token.
type KakaoClient struct {
	baseURL string
	timeout time.Duration
}

// NewKakaoClient creates a client for the given endpoint. Empty baseURL and
// zero timeout select the public endpoint and the default 5 second bound.
func NewKakaoClient(baseURL string, timeout time.Duration) *KakaoClient {
	if baseURL == "" {
		baseURL = DefaultKakaoBaseURL
	}

	if timeout == 0 {
		timeout = DefaultKakaoTimeout
	}

	return &KakaoClient{baseURL: baseURL, timeout: timeout}
}

// kakaoProfile is the subset of the user endpoint response we consume.
// The account id is numeric in current responses but documented as
// numeric-or-string, hence json.Number.
type kakaoProfile struct {
	ID           json.Number `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// FetchProfile exchanges the access token for the account profile.
func (c *KakaoClient) FetchProfile(ctx context.Context, accessToken string) (Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// oauth2's static token source injects the Authorization header.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: c.timeout})
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+kakaoUserInfoPath, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to build kakao request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("kakao profile request failed")
		return Identity{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().Int("status", resp.StatusCode).Bytes("body", body).
			Msg("kakao responded with non-2xx status")

		return Identity{}, fmt.Errorf("%w: kakao responded with status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var profile kakaoProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return Identity{}, fmt.Errorf("%w: unparseable kakao response: %v", ErrInvalidCredential, err)
	}

	if profile.ID.String() == "" {
		return Identity{}, fmt.Errorf("%w: kakao response is missing the account id", ErrInvalidCredential)
	}

	return Identity{
		Provider: ProviderKakao,
		UID:      profile.ID.String(),
		Email:    profile.KakaoAccount.Email,
		Name:     profile.KakaoAccount.Profile.Nickname,
	}, nil
}
