package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"zodiacle/pkg/models"
)

type tokenData struct {
	Token string `json:"token"`
}

// apiClient talks to a running api-server.
type apiClient struct {
	http *resty.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(timeout)
	c.SetHeader("accept", "application/json")
	return &apiClient{http: c}
}

func (a *apiClient) login(password string) (string, error) {
	var out models.TokenResponse
	req := a.http.R().SetResult(&out).SetError(&models.ErrorResponse{})
	if password != "" {
		req.SetBody(map[string]string{"password": password})
	}
	resp, err := req.Post("/auth/login")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("empty token in response")
	}
	return out.AccessToken, nil
}

func (a *apiClient) protected(token string) (string, error) {
	var out models.ProtectedResponse
	resp, err := a.http.R().
		SetAuthToken(token).
		SetResult(&out).
		SetError(&models.ErrorResponse{}).
		Get("/auth/protected")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (subject %s)", out.Message, out.Subject), nil
}

func (a *apiClient) horoscope(token, path string, params map[string]string) (string, error) {
	var out models.Envelope
	resp, err := a.http.R().
		SetAuthToken(token).
		SetQueryParams(params).
		SetResult(&out).
		SetError(&models.ErrorResponse{}).
		Get(path)
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	if out.Data == nil {
		return "", nil
	}
	return *out.Data, nil
}

func (a *apiClient) compatibility(token, signA, signB string) (string, error) {
	var out models.CompatibilityEnvelope
	resp, err := a.http.R().
		SetAuthToken(token).
		SetQueryParams(map[string]string{"sign_a": signA, "sign_b": signB}).
		SetResult(&out).
		SetError(&models.ErrorResponse{}).
		Get("/compatibility/signs")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	if out.Compatibility == nil {
		return "", nil
	}
	return *out.Compatibility, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}
	if e, ok := resp.Error().(*models.ErrorResponse); ok && e.Error != "" {
		return fmt.Errorf("%d: %s", resp.StatusCode(), e.Error)
	}
	return fmt.Errorf("%d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.zodiacle-token.json"
	}
	return filepath.Join(home, ".zodiacle", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("token not found, please login: %w", err)
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(td.Token)
	if token == "" {
		return "", errors.New("token empty, please login")
	}
	return token, nil
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
