// Package yamlcfg is the YAML implementation of the configuration loading
// seam. It produces the same format-agnostic model as the HCL loader from
// .yaml/.yml files, proving the loader interface format-agnostic.
//
// YAML values are bridged into the model as synthesized HCL expressions:
// literals become LiteralValueExpr nodes and instance reference strings
// (e.g. "service.http_client.shared") become traversal expressions, so the
// graph builder and converter downstream treat both formats identically.
package yamlcfg
