// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool       = "xmlupload"
	BannerBlue = `
                 o0o                    o0o
oo    oo ooo0o0o0  o0   oo    oo o0oo0   o0   oo0oo   oo0o0   oooo0
 0o  o0  o0  0o  0 o0   o0    o0 o0  0o  o0  0o   0o     o0 o0   o0
  o0o    o0  0o  0 o0   o0    o0 o0  0o  o0  0o   0o oo0oo0 o0   o0
 0o  o0  o0  0o  0 o0   o0    o0 o0  0o  o0  0o   0o o0  o0 o0   o0
oo    oo o0  0o  0  o0o  oo0oo0o o0oo0    o0o oo0oo   oo0oo0  oooo0
                                 o0
                                 o0                          vversion
`
	DocRoot = "https://github.com/platform-engineering-labs/xmlupload/blob/main/docs"
)
