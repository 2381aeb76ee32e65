// Package config declares the configuration schema of the REST proxy and
// resolves flat string properties against it.
//
// The package is consumed in two steps:
//  1. A [Schema] is composed at startup: the generic REST-service base
//     schema extended with the proxy's own key definitions.
//  2. [NewProxyConfig] validates raw properties against that schema,
//     applies defaults, and derives the embedded consumer client settings
//     from a cloned, override-patched copy of the same properties.
//
// Resolution is total-or-nothing: either a fully typed, immutable
// [ProxyConfig] is produced, or a [ValidationError] listing every
// offending key is returned and nothing is applied.
package config
