// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package xmlupload

var Version = "0.0.0"

const Repository = "https://github.com/platform-engineering-labs/xmlupload"
