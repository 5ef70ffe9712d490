// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package parser

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

var (
	colorPattern   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)
)

// checkLexical rejects literals whose text cannot be encoded as the value
// type. Value types without a fixed lexical form are accepted as is.
func checkLexical(vt pkgmodel.ValueType, content string) error {
	switch vt {
	case pkgmodel.ValueTypeInteger:
		if _, err := strconv.ParseInt(content, 10, 64); err != nil {
			return fmt.Errorf("invalid integer %q", content)
		}
	case pkgmodel.ValueTypeBoolean:
		switch content {
		case "true", "false", "1", "0":
		default:
			return fmt.Errorf("invalid boolean %q, expected true, false, 1 or 0", content)
		}
	case pkgmodel.ValueTypeDecimal:
		if !decimalPattern.MatchString(content) {
			return fmt.Errorf("invalid decimal %q", content)
		}
	case pkgmodel.ValueTypeURI:
		u, err := url.Parse(content)
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("invalid uri %q, expected an absolute uri", content)
		}
	case pkgmodel.ValueTypeColor:
		if !colorPattern.MatchString(content) {
			return fmt.Errorf("invalid color %q, expected #rrggbb", content)
		}
	}
	return nil
}
