// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/models"
)

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] from the agent transport configuration.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) ServerAdapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &httpServerAdapter{client: cli, logger: log}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("register request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.acceptToken(resp)
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.acceptToken(resp)
}

func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/ping")
	if err != nil {
		return fmt.Errorf("ping request: %w: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Pull(ctx context.Context, entity models.Entity) ([]models.EntityRecord, error) {
	resp, err := h.authedRequest(ctx).Get("/api/sync/" + string(entity))
	if err != nil {
		return nil, fmt.Errorf("pull %s request: %w: %w", entity, ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var pr models.PullResponse
	if err = json.Unmarshal(resp.Body(), &pr); err != nil {
		return nil, fmt.Errorf("decode pull %s response: %w", entity, err)
	}

	return pr.Records, nil
}

func (h *httpServerAdapter) Push(ctx context.Context, item models.SyncQueueItem) error {
	var (
		resp *resty.Response
		err  error
	)

	switch item.Action {
	case models.ActionCreate:
		resp, err = h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(models.MutationRequest{EntityID: item.EntityID, Data: item.Data}).
			Post("/api/sync/" + string(item.Entity))
	case models.ActionUpdate:
		resp, err = h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(models.MutationRequest{EntityID: item.EntityID, Data: item.Data}).
			Put("/api/sync/" + string(item.Entity) + "/" + item.EntityID)
	case models.ActionDelete:
		resp, err = h.authedRequest(ctx).
			Delete("/api/sync/" + string(item.Entity) + "/" + item.EntityID)
	default:
		return fmt.Errorf("push: unsupported action %q", item.Action)
	}
	if err != nil {
		return fmt.Errorf("push %s %s request: %w: %w", item.Action, item.Entity, ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

// acceptToken extracts the bearer token from the Authorization response
// header, caches it for subsequent requests, and returns it together with the
// user id from the "sub" claim.
func (h *httpServerAdapter) acceptToken(resp *resty.Response) (models.Token, error) {
	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
