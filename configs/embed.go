// Package configs ships the default configuration files with the binary.
package configs

import _ "embed"

// TaxYears is the default tax table document, overridable with TAX_CONFIG_PATH.
//
//go:embed tax_years.yaml
var TaxYears []byte
