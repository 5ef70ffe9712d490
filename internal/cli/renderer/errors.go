// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"

	"github.com/platform-engineering-labs/xmlupload/internal/api"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/display"
	"github.com/platform-engineering-labs/xmlupload/internal/orderer"
	"github.com/platform-engineering-labs/xmlupload/internal/parser"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// RenderErrorMessage turns a failed run into an operator message. Errors
// without a dedicated rendering are printed as they are.
func RenderErrorMessage(err error) (string, error) {
	var stall *orderer.OrderingStallError
	if errors.As(err, &stall) {
		return renderOrderingStall(stall)
	}

	var violation *parser.SchemaViolation
	if errors.As(err, &violation) {
		return display.Redf("the input data file did not pass validation: %s\n", violation.Reason) +
			display.Greyf("  at %s", location(violation.Path, violation.Line, violation.Column)) + "\n", nil
	}

	var structural *parser.StructuralParseError
	if errors.As(err, &structural) {
		return renderStructuralParseError(structural)
	}

	var group *parser.UnknownGroupError
	if errors.As(err, &group) {
		return display.Redf("permission group `%s` could not be resolved: %s\n", group.Group, group.Reason), nil
	}

	var unknownType *pkgmodel.UnknownTypeError
	if errors.As(err, &unknownType) {
		return display.Redf("%s\n", err.Error()) +
			display.Gold("Make sure the ontologies of the project define this resource class.\n"), nil
	}

	if api.IsConnectionRefused(err) {
		return display.Redf("could not connect: %s\n", err.Error()) +
			display.Gold("Make sure the server and image server are running and the configured URLs are correct.\n"), nil
	}

	var remote *api.RemoteOperationError
	if errors.As(err, &remote) {
		return renderRemoteOperationError(remote)
	}

	return display.Redf("%s\n", err.Error()), nil
}

func renderOrderingStall(stall *orderer.OrderingStallError) (string, error) {
	root := gtree.NewRoot(display.Redf("%d resources could not be ordered because their references can never be satisfied:", len(stall.Stuck)))
	for _, s := range stall.Stuck {
		node := root.Add(s.ID)
		for _, target := range s.Unresolved {
			node.Add(display.Grey("references ") + target)
		}
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}

	buf.WriteString("\n")
	buf.WriteString(display.Gold("Check the referenced ids for typos or reference cycles.\n"))

	return buf.String(), nil
}

func renderStructuralParseError(e *parser.StructuralParseError) (string, error) {
	root := gtree.NewRoot(display.Redf("the input data file could not be parsed: unexpected %s", e.Found))
	root.Add(display.Grey("at ") + location("", e.Line, e.Column))
	if len(e.Expected) > 0 {
		root.Add(display.Grey("expected ") + strings.Join(e.Expected, " or "))
	}
	if e.Reason != "" {
		root.Add(display.Grey("reason ") + e.Reason)
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderRemoteOperationError(e *api.RemoteOperationError) (string, error) {
	root := gtree.NewRoot(display.Redf("%s failed", e.Operation))
	if e.Err != nil {
		root.Add(display.Grey("error ") + e.Err.Error())
	} else {
		root.Add(display.Grey("status ") + fmt.Sprintf("%d", e.StatusCode))
		if body := strings.TrimSpace(e.Body); body != "" {
			root.Add(display.Grey("response ") + body)
		}
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func location(path string, line, column int) string {
	if line == 0 {
		return path
	}
	pos := fmt.Sprintf("line %d, column %d", line, column)
	if path == "" {
		return pos
	}
	return path + " " + pos
}
