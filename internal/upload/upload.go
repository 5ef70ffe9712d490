// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package upload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/platform-engineering-labs/xmlupload/internal/api"
	"github.com/platform-engineering-labs/xmlupload/internal/orderer"
	"github.com/platform-engineering-labs/xmlupload/internal/parser"
	"github.com/platform-engineering-labs/xmlupload/internal/permission"
	"github.com/platform-engineering-labs/xmlupload/internal/resolver"
	"github.com/platform-engineering-labs/xmlupload/internal/util"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

type Validator interface {
	ValidateFile(path string) error
}

// DirectorySource provides the snapshot of projects and groups that permission
// groups are resolved against.
type DirectorySource interface {
	Directory(ctx context.Context) (*pkgmodel.Directory, error)
}

type OntologySource interface {
	ProjectIRI(ctx context.Context, shortcode string) (string, error)
	TypeRegistry(ctx context.Context, shortcode string) (*pkgmodel.TypeRegistry, error)
}

type ImageUploader interface {
	UploadImage(ctx context.Context, path string) (string, error)
}

type Creator interface {
	CreateResource(ctx context.Context, req api.CreateRequest) (string, error)
}

// Reporter receives the progress of a run.
type Reporter interface {
	orderer.Observer
	Validated(path string)
	Parsed(doc *pkgmodel.Document)
	Created(id, iri string)
}

type Options struct {
	File           string
	ImageDirectory string
}

type Result struct {
	RunID string
	Table *pkgmodel.ResolutionTable
	// Number of resources in the document
	Total int
}

// Created is the number of resources created before the run ended.
func (r *Result) Created() int {
	return r.Table.Len()
}

// Uploader runs the whole upload pipeline: validate, parse, order and create
// every resource in turn. Nothing is written to the remote side before the
// document has been parsed and ordered successfully.
type Uploader struct {
	validator  Validator
	directory  DirectorySource
	ontologies OntologySource
	images     ImageUploader
	creator    Creator
	reporter   Reporter
}

func NewUploader(validator Validator, directory DirectorySource, ontologies OntologySource, images ImageUploader, creator Creator, reporter Reporter) *Uploader {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Uploader{
		validator:  validator,
		directory:  directory,
		ontologies: ontologies,
		images:     images,
		creator:    creator,
		reporter:   reporter,
	}
}

// Run uploads the document named in opts. The returned result is never nil
// and holds the resources created so far, also when an error is returned.
func (u *Uploader) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID: util.NewID(),
		Table: pkgmodel.NewResolutionTable(),
	}
	log := slog.With("run", result.RunID)
	log.Info("Starting upload", "file", opts.File, "imageDirectory", opts.ImageDirectory)

	if err := u.validator.ValidateFile(opts.File); err != nil {
		return result, err
	}
	u.reporter.Validated(opts.File)

	directory, err := u.directory.Directory(ctx)
	if err != nil {
		return result, err
	}

	doc, err := parser.ParseFile(opts.File, parser.NewGroupResolver(directory))
	if err != nil {
		return result, err
	}
	result.Total = len(doc.Resources)
	u.reporter.Parsed(doc)

	ordered, err := orderer.Order(doc.Resources, u.reporter)
	if err != nil {
		log.Error("Failed to order resources", "error", err)
		return result, err
	}

	registry, err := u.ontologies.TypeRegistry(ctx, doc.Shortcode)
	if err != nil {
		return result, err
	}
	classes, err := resolveClasses(ordered, registry)
	if err != nil {
		return result, err
	}

	projectIRI, err := u.ontologies.ProjectIRI(ctx, doc.Shortcode)
	if err != nil {
		return result, err
	}

	res := resolver.New(result.Table, permission.Build(doc.Permissions))
	ontologies := registry.Ontologies()

	for _, r := range ordered {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("upload cancelled after %d of %d resources: %w", result.Created(), result.Total, err)
		}

		req := api.CreateRequest{
			Resource:   r,
			ClassIRI:   classes[r.Type],
			ProjectIRI: projectIRI,
			Ontologies: ontologies,
		}
		if set := res.PermissionSet(r.Permissions); set != nil {
			req.Permissions = set
		}

		if r.HasImage() {
			if req.StillImage, err = u.images.UploadImage(ctx, util.ResolvePath(opts.ImageDirectory, r.Image)); err != nil {
				return result, err
			}
		}

		if req.Values, err = res.Resolve(r); err != nil {
			return result, err
		}

		iri, err := u.creator.CreateResource(ctx, req)
		if err != nil {
			log.Error("Failed to create resource", "id", r.ID, "created", result.Created(), "error", err)
			return result, err
		}
		if err := result.Table.Add(r.ID, iri); err != nil {
			return result, err
		}
		u.reporter.Created(r.ID, iri)
	}

	log.Info("Upload finished", "created", result.Created())

	return result, nil
}

// resolveClasses looks up the class of every resource before anything is
// created, so an unknown type fails the run without partial writes.
func resolveClasses(resources []pkgmodel.Resource, registry *pkgmodel.TypeRegistry) (map[string]string, error) {
	classes := make(map[string]string)
	for _, r := range resources {
		if _, ok := classes[r.Type]; ok {
			continue
		}
		iri, err := registry.Lookup(r.Type)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", r.ID, err)
		}
		classes[r.Type] = iri
	}
	return classes, nil
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) Pass(int)                  {}
func (NopReporter) Remaining(int)             {}
func (NopReporter) Validated(string)          {}
func (NopReporter) Parsed(*pkgmodel.Document) {}
func (NopReporter) Created(string, string)    {}
