// Package hclcfg is the HCL implementation of the configuration loading
// seam. It discovers .hcl files, decodes manifest blocks (screen_type,
// service_type) and wiring blocks (screen, service) through a single
// file-root schema, and translates them into the format-agnostic model
// defined in the config package.
//
// The package also provides the Converter used at execution time to decode
// raw HCL argument expressions into the params structs registered by
// handler modules.
package hclcfg
