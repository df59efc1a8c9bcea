package ruwler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/httpclient"
	"github.com/ruwler/ruwler-go/validation"
)

// SendTransactionalRequest triggers one transactional message for a
// recipient. Campaign and CampaignMessage are numeric ids and are sent as
// IRIs.
type SendTransactionalRequest struct {
	Email           string         `json:"email" validate:"required,email"`
	Campaign        int64          `json:"campaign" validate:"gt=0"`
	CampaignMessage int64          `json:"campaignMessage,omitempty" validate:"gte=0"`
	Message         map[string]any `json:"message,omitempty"`
	Data            map[string]any `json:"data"`
}

// Validate checks the request fields.
func (r SendTransactionalRequest) Validate() error {
	return validation.Validate(r)
}

// Body renders the payload posted to /transactional. Data is always
// present; campaignMessage and message only when set.
func (r SendTransactionalRequest) Body() map[string]any {
	data := r.Data
	if data == nil {
		data = map[string]any{}
	}
	body := map[string]any{
		"email":    r.Email,
		"campaign": PathCampaigns + "/" + strconv.FormatInt(r.Campaign, 10),
		"data":     data,
	}
	if r.CampaignMessage != 0 {
		body["campaignMessage"] = PathCampaignMessages + "/" + strconv.FormatInt(r.CampaignMessage, 10)
	}
	if len(r.Message) > 0 {
		body["message"] = r.Message
	}
	return body
}

// Transactional sends single transactional messages.
type Transactional struct {
	c *Client
}

// Send validates req and posts it. Invalid requests fail with a
// MISSING_ARGUMENT error before any network activity.
func (t *Transactional) Send(ctx context.Context, req SendTransactionalRequest, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return t.c.Send(ctx, http.MethodPost, PathTransactional, req.Body(), nil, opts...)
}

// SendRaw posts a caller-built payload unchanged.
func (t *Transactional) SendRaw(ctx context.Context, content map[string]any, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	if content == nil {
		return nil, errors.MissingArgument("content")
	}
	return t.c.Send(ctx, http.MethodPost, PathTransactional, content, nil, opts...)
}

// Mail sends ad-hoc mail outside of campaigns.
type Mail struct {
	c *Client
}

// Send posts body to /mail/send.
func (m *Mail) Send(ctx context.Context, body any, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	if body == nil {
		return nil, errors.MissingArgument("body")
	}
	return m.c.Send(ctx, http.MethodPost, PathMailSend, body, nil, opts...)
}
