// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// CreateRequest carries everything needed to create a single resource.
type CreateRequest struct {
	Resource   pkgmodel.Resource
	ClassIRI   string
	ProjectIRI string
	// Resource level permission object, nil for none
	Permissions fmt.Stringer
	// Internal file name assigned by the image server, empty for none
	StillImage string
	// Resolved values of Resource
	Values pkgmodel.Payload
	// Ontology name -> ontology IRI, used as JSON-LD prefixes
	Ontologies map[string]string
}

// CreateResource creates a resource and returns the identifier the server
// assigned to it.
func (c *Client) CreateResource(ctx context.Context, req CreateRequest) (string, error) {
	op := "create resource " + req.Resource.ID

	body, err := encodeResource(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode resource %s: %w", req.Resource.ID, err)
	}

	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/ld+json").
		SetBody(body).
		Post(c.endpoint + "/v2/resources")
	if err != nil {
		return "", transportError(op, err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return "", statusError(op, resp)
	}

	iri := gjson.GetBytes(resp.Bytes(), "@id")
	if !iri.Exists() || iri.String() == "" {
		return "", &RemoteOperationError{Operation: op, StatusCode: resp.StatusCode(), Body: "response carries no resource id"}
	}

	slog.Debug("Created resource", "id", req.Resource.ID, "iri", iri.String(), "class", req.ClassIRI)

	return iri.String(), nil
}
