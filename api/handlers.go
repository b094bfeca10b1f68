package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/registry-api/errors"
	"github.com/kbukum/registry-api/httpclient"
	"github.com/kbukum/registry-api/logger"
	"github.com/kbukum/registry-api/observability"
	"github.com/kbukum/registry-api/server"
)

// configPath is appended to the upstream URL by Root.
const configPath = "/config"

func log() *logger.Logger { return logger.WithComponent("handlers") }

// Root fetches <upstream>/config with the caller's Authorization header and
// passes a 2xx body through unchanged.
func (s *State) Root(c *gin.Context) {
	if s.upstream.URL == "" || s.client == nil {
		server.RespondWithError(c, apperrors.NotFound())
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), "registry.fetch_config")
	defer span.End()

	resp, err := s.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    s.upstream.URL + configPath,
		Auth:   httpclient.ForwardAuth(c.GetHeader("Authorization")),
	})
	if err == nil && !resp.IsSuccess() {
		err = errors.New("unexpected upstream status " + http.StatusText(resp.StatusCode))
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
		log().WithContext(ctx).Warn("Upstream config request failed",
			logger.UpstreamFields(failureReason(err), statusOf(resp), err))
		server.RespondWithError(c, mapUpstreamError(err))
		return
	}

	contentType := resp.Headers["Content-Type"]
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

// mapUpstreamError turns a client failure into the response taxonomy.
// A downstream 403 is reported as Forbidden, which renders as 401.
func mapUpstreamError(err error) error {
	switch {
	case httpclient.IsUnauthorized(err):
		return apperrors.Unauthorized().WithCause(err)
	case httpclient.IsForbidden(err):
		return apperrors.Forbidden().WithCause(err)
	case httpclient.IsNotFound(err):
		return apperrors.NotFound().WithCause(err)
	default:
		return apperrors.Internal(err)
	}
}

// failureReason labels an upstream failure for the log line.
func failureReason(err error) string {
	switch {
	case httpclient.IsTimeout(err):
		return "timeout"
	case httpclient.IsConnection(err):
		return "connection"
	case httpclient.IsServerError(err):
		return "upstream_error"
	case errors.As(err, new(*httpclient.Error)):
		return "rejected"
	default:
		return "unexpected_status"
	}
}

func statusOf(resp *httpclient.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
