package ruwler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/httpclient"
)

// Resource paths.
const (
	PathTokens           = "/tokens"
	PathProjects         = "/projects"
	PathCampaigns        = "/campaigns"
	PathChannels         = "/channels"
	PathCampaignChannels = "/campaign_channels"
	PathCampaignMessages = "/campaign_messages"
	PathProviders        = "/providers"
	PathTemplates        = "/templates"
	PathMessages         = "/messages"
	PathContacts         = "/contacts"
	PathTransactional    = "/transactional"
	PathMailSend         = "/mail/send"
	PathLogin            = "/login_check"
)

// Sub-resource segments.
const (
	SubHistory    = "history"
	SubStatistics = "statistics"
)

// Entry describes one REST collection.
type Entry struct {
	// Name is the CLI and lookup name, e.g. "campaign_channels".
	Name string
	Path string
	// Writable collections accept Create, Update and Delete.
	Writable bool
	// Sub is an optional read-only sub-resource of each item.
	Sub string
}

var catalog = []Entry{
	{Name: "tokens", Path: PathTokens, Writable: true},
	{Name: "projects", Path: PathProjects, Writable: true, Sub: SubHistory},
	{Name: "campaigns", Path: PathCampaigns, Writable: true, Sub: SubStatistics},
	{Name: "channels", Path: PathChannels, Writable: true},
	{Name: "campaign_channels", Path: PathCampaignChannels, Writable: true},
	{Name: "campaign_messages", Path: PathCampaignMessages, Writable: true},
	{Name: "providers", Path: PathProviders},
	{Name: "templates", Path: PathTemplates, Writable: true, Sub: SubStatistics},
	{Name: "messages", Path: PathMessages},
	{Name: "contacts", Path: PathContacts},
}

// Catalog returns the REST collections the client knows about.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// bind wires every typed resource field from the catalog.
func (c *Client) bind() {
	c.resources = make(map[string]*ReadOnly, len(catalog))
	for _, e := range catalog {
		c.resources[e.Name] = &ReadOnly{c: c, path: e.Path}
	}
	collection := func(name string) *Collection { return &Collection{ReadOnly: c.resources[name]} }

	c.Tokens = collection("tokens")
	c.Projects = &Projects{Collection: collection("projects")}
	c.Campaigns = &Reported{Collection: collection("campaigns")}
	c.Channels = collection("channels")
	c.CampaignChannels = collection("campaign_channels")
	c.CampaignMessages = collection("campaign_messages")
	c.Providers = c.resources["providers"]
	c.Templates = &Reported{Collection: collection("templates")}
	c.Messages = c.resources["messages"]
	c.Contacts = c.resources["contacts"]
	c.Transactional = &Transactional{c: c}
	c.Mail = &Mail{c: c}
}

// Resource looks up a collection by catalog name for read access.
func (c *Client) Resource(name string) (*ReadOnly, bool) {
	r, ok := c.resources[name]
	return r, ok
}

// ReadOnly is a collection that can be listed and fetched.
type ReadOnly struct {
	c    *Client
	path string
}

// Path returns the collection path.
func (r *ReadOnly) Path() string { return r.path }

// List fetches one page of the collection. Filters become the query string.
func (r *ReadOnly) List(ctx context.Context, filters httpclient.Filters, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	return r.c.Send(ctx, http.MethodGet, r.path, nil, filters, opts...)
}

// Get fetches one item.
func (r *ReadOnly) Get(ctx context.Context, id string, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	p, err := r.item(id)
	if err != nil {
		return nil, err
	}
	return r.c.Send(ctx, http.MethodGet, p, nil, nil, opts...)
}

// item renders /collection/{id}[/sub...] with id path-escaped.
func (r *ReadOnly) item(id string, sub ...string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", errors.MissingArgument("id")
	}
	p := r.path + "/" + url.PathEscape(id)
	for _, s := range sub {
		p += "/" + s
	}
	return p, nil
}

// Collection is a fully writable collection.
type Collection struct {
	*ReadOnly
}

// Create posts a new item.
func (r *Collection) Create(ctx context.Context, content any, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	if content == nil {
		return nil, errors.MissingArgument("content")
	}
	return r.c.Send(ctx, http.MethodPost, r.path, content, nil, opts...)
}

// Update replaces an item. Nil content sends an empty object.
func (r *Collection) Update(ctx context.Context, id string, content any, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	p, err := r.item(id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = map[string]any{}
	}
	return r.c.Send(ctx, http.MethodPut, p, content, nil, opts...)
}

// Delete removes an item.
func (r *Collection) Delete(ctx context.Context, id string, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	p, err := r.item(id)
	if err != nil {
		return nil, err
	}
	return r.c.Send(ctx, http.MethodDelete, p, nil, nil, opts...)
}

// Projects adds the per-project history feed.
type Projects struct {
	*Collection
}

// History fetches /projects/{id}/history.
func (r *Projects) History(ctx context.Context, id string, filters httpclient.Filters, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	p, err := r.item(id, SubHistory)
	if err != nil {
		return nil, err
	}
	return r.c.Send(ctx, http.MethodGet, p, nil, filters, opts...)
}

// Reported adds per-item statistics, as campaigns and templates have.
type Reported struct {
	*Collection
}

// Statistics fetches /{collection}/{id}/statistics.
func (r *Reported) Statistics(ctx context.Context, id string, filters httpclient.Filters, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	p, err := r.item(id, SubStatistics)
	if err != nil {
		return nil, err
	}
	return r.c.Send(ctx, http.MethodGet, p, nil, filters, opts...)
}
