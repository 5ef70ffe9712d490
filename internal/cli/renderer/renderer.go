// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/xmlupload/internal/cli/display"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// RenderDocument renders a table of the parsed resources in document order.
func RenderDocument(doc *pkgmodel.Document) (string, error) {
	if len(doc.Resources) == 0 {
		return display.Gold("The document contains no resources.\n"), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
	table.Header(display.LightBlue("ID"), "Type", "Label", "Image", "Properties", "References")

	data := make([][]string, len(doc.Resources))
	for i, res := range doc.Resources {
		image := display.Grey("-")
		if res.HasImage() {
			image = res.Image
		}
		refs := display.Grey("-")
		if r := res.References(); len(r) > 0 {
			refs = strings.Join(r, ", ")
		}

		data[i] = []string{
			display.LightBlue(res.ID),
			res.Type,
			res.Label,
			image,
			fmt.Sprintf("%d", len(res.Properties)),
			refs,
		}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering document: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering document: %v", err)
	}

	summary := fmt.Sprintf("\n%s %d resources, %d permission sets, default ontology %s, project %s\n",
		display.Gold("Parsed"), len(doc.Resources), len(doc.Permissions), doc.DefaultOntology, doc.Shortcode)

	return buf.String() + summary, nil
}

// RenderOutcome summarizes how far a run got.
func RenderOutcome(created, total int, failed bool) string {
	if !failed {
		return display.Green(fmt.Sprintf("All %d resources were uploaded.\n", created))
	}
	if created == 0 {
		return display.Gold("No resources were created.\n")
	}
	return display.Gold(fmt.Sprintf("%d of %d resources were created before the upload stopped. ", created, total)) +
		display.Grey("Running the upload again creates them a second time.\n")
}
