// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	"fmt"
	"strings"

	"github.com/platform-engineering-labs/xmlupload"
)

var banner = LightBlue(BannerBlue)

func PrintBanner() {
	fmt.Println(strings.Replace(banner, "version", xmlupload.Version, 1))
}

func Warning(msg string) {
	fmt.Print(Gold(fmt.Sprintf("Warning: %s\n", msg)))
}

func Links(docLinkName string, deepLinkName string) string {
	deepLink := DocRoot
	if deepLinkName != "" {
		deepLink += "/" + deepLinkName + ".md"
	}

	return "\n" + Gold("Code: ") + xmlupload.Repository +
		"\n" + Gold(fmt.Sprintf("%s: ", docLinkName)) + deepLink +
		"\n" + Gold("Bugs: ") + xmlupload.Repository + "/issues"
}
