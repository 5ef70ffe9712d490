// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"resty.dev/v3"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// SipiClient uploads image files to the image server. Uploads are authorized
// with the session token of the API client.
type SipiClient struct {
	endpoint string
	resty    *resty.Client
	token    func() string
}

func NewSipiClient(cfg pkgmodel.SipiConfig, token func() string, net *http.Client) *SipiClient {
	client := resty.New()

	if net != nil {
		client = resty.NewWithClient(net)
	}

	return &SipiClient{
		endpoint: strings.TrimSuffix(cfg.URL, "/"),
		resty:    client,
		token:    token,
	}
}

// UploadImage uploads the file at path and returns the internal file name
// assigned by the image server.
func (s *SipiClient) UploadImage(ctx context.Context, path string) (string, error) {
	op := "upload image " + filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	//nolint:errcheck
	defer f.Close()

	resp, err := s.resty.R().
		SetContext(ctx).
		SetQueryParam("token", s.token()).
		SetFileReader("file", filepath.Base(path), f).
		Post(s.endpoint + "/upload")
	if err != nil {
		return "", transportError(op, err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return "", statusError(op, resp)
	}

	name := gjson.GetBytes(resp.Bytes(), "uploadedFiles.0.internalFilename")
	if !name.Exists() || name.String() == "" {
		return "", &RemoteOperationError{Operation: op, StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	slog.Debug("Uploaded image", "file", path, "internalFilename", name.String())

	return name.String(), nil
}
