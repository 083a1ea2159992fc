/*
Package resourceid provides a structured representation of gasoline resource
identifiers.

A resource identifier is a colon-delimited string with at least four
segments:

	entityGroup:entity:resourceKind[:qualifier...]:uniqueSuffix

for example `core:base:cloudflare-worker:12345` or
`core:base:cloudflare-worker:api:v1:12345`. Identifiers are compared by exact
string equality; the structured Address exists for display and generation.
*/
package resourceid
