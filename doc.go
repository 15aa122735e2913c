// Package wikipage converts personal-wiki-flavored markdown documents
// into standalone HTML pages for static publishing.
//
// The pipeline rewrites wiki link targets, substitutes author-defined
// variables, renders the markdown with Goldmark and applies inline
// HTML attribute directives to the rendered tree. The wikipage binary
// under cmd/wikipage speaks the vimwiki plugin's converter contract.
package wikipage
