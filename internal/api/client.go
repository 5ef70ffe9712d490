// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"resty.dev/v3"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

const isResourceClass = "knora-api:isResourceClass"

// Client talks to the DSP API of a single server. All calls block until the
// server has answered or ctx is done.
type Client struct {
	endpoint string
	resty    *resty.Client
	token    string
}

func NewClient(cfg pkgmodel.ServerConfig, net *http.Client) *Client {
	client := resty.New()

	if net != nil {
		client = resty.NewWithClient(net)
	}

	return &Client{
		endpoint: strings.TrimSuffix(cfg.URL, "/"),
		resty:    client,
	}
}

// Token is the session token obtained by Login, empty before.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) Login(ctx context.Context, user, password string) error {
	const op = "login"

	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"email":    user,
			"password": password,
		}).
		Post(c.endpoint + "/v2/authentication")
	if err != nil {
		return transportError(op, err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return statusError(op, resp)
	}

	token := gjson.GetBytes(resp.Bytes(), "token")
	if !token.Exists() || token.String() == "" {
		return &RemoteOperationError{Operation: op, StatusCode: resp.StatusCode(), Body: "response carries no token"}
	}

	c.token = token.String()
	c.resty.SetAuthToken(c.token)
	slog.Debug("Logged in", "server", c.endpoint, "user", user)

	return nil
}

func (c *Client) Projects(ctx context.Context) ([]pkgmodel.Project, error) {
	body, err := c.get(ctx, "list projects", "/admin/projects")
	if err != nil {
		return nil, err
	}

	var projects []pkgmodel.Project
	gjson.GetBytes(body, "projects").ForEach(func(_, p gjson.Result) bool {
		projects = append(projects, pkgmodel.Project{
			ID:        p.Get("id").String(),
			Shortname: p.Get("shortname").String(),
			Shortcode: p.Get("shortcode").String(),
		})
		return true
	})

	return projects, nil
}

func (c *Client) Groups(ctx context.Context) ([]pkgmodel.Group, error) {
	body, err := c.get(ctx, "list groups", "/admin/groups")
	if err != nil {
		return nil, err
	}

	var groups []pkgmodel.Group
	gjson.GetBytes(body, "groups").ForEach(func(_, g gjson.Result) bool {
		groups = append(groups, pkgmodel.Group{
			ID:      g.Get("id").String(),
			Name:    g.Get("name").String(),
			Project: g.Get("project.id").String(),
		})
		return true
	})

	return groups, nil
}

// Directory fetches a snapshot of all projects and groups.
func (c *Client) Directory(ctx context.Context) (*pkgmodel.Directory, error) {
	projects, err := c.Projects(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := c.Groups(ctx)
	if err != nil {
		return nil, err
	}

	return &pkgmodel.Directory{Projects: projects, Groups: groups}, nil
}

// ProjectIRI returns the identifier of the project with the given shortcode.
func (c *Client) ProjectIRI(ctx context.Context, shortcode string) (string, error) {
	body, err := c.get(ctx, "get project "+shortcode, "/admin/projects/shortcode/"+url.PathEscape(shortcode))
	if err != nil {
		return "", err
	}

	id := gjson.GetBytes(body, "project.id")
	if !id.Exists() {
		return "", &RemoteOperationError{Operation: "get project " + shortcode, StatusCode: http.StatusOK, Body: "response carries no project id"}
	}
	return id.String(), nil
}

// TypeRegistry collects the resource classes of all ontologies of the project
// with the given shortcode.
func (c *Client) TypeRegistry(ctx context.Context, shortcode string) (*pkgmodel.TypeRegistry, error) {
	projectIRI, err := c.ProjectIRI(ctx, shortcode)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "list ontologies", "/v2/ontologies/metadata/"+url.PathEscape(projectIRI))
	if err != nil {
		return nil, err
	}

	registry := pkgmodel.NewTypeRegistry()
	for _, onto := range graph(gjson.ParseBytes(body)) {
		ontologyIRI := onto.Get("@id").String()
		name := ontologyName(ontologyIRI)
		registry.RegisterOntology(name, ontologyIRI)

		entities, err := c.get(ctx, "get ontology "+name, "/v2/ontologies/allentities/"+url.PathEscape(ontologyIRI))
		if err != nil {
			return nil, err
		}

		for _, entity := range graph(gjson.ParseBytes(entities)) {
			if !entity.Get(isResourceClass).Bool() {
				continue
			}
			classIRI := entity.Get("@id").String()
			registry.Register(name+":"+localName(classIRI), classIRI)
		}
	}

	slog.Debug("Loaded resource classes", "project", shortcode, "classes", len(registry.Names()))

	return registry, nil
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		Get(c.endpoint + path)
	if err != nil {
		return nil, transportError(op, err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, statusError(op, resp)
	}

	return resp.Bytes(), nil
}

// graph returns the nodes of a JSON-LD document, which is either a single node
// or a "@graph" of nodes.
func graph(doc gjson.Result) []gjson.Result {
	if nodes := doc.Get("@graph"); nodes.Exists() {
		return nodes.Array()
	}
	if doc.Get("@id").Exists() {
		return []gjson.Result{doc}
	}
	return nil
}

// ontologyName extracts the name of an ontology from its IRI, e.g. "books"
// from "http://0.0.0.0:3333/ontology/0811/books/v2".
func ontologyName(ontologyIRI string) string {
	path := strings.TrimSuffix(strings.TrimSuffix(ontologyIRI, "/"), "/v2")
	return path[strings.LastIndex(path, "/")+1:]
}

func localName(classIRI string) string {
	if i := strings.LastIndex(classIRI, "#"); i >= 0 {
		return classIRI[i+1:]
	}
	return classIRI[strings.LastIndex(classIRI, "/")+1:]
}
