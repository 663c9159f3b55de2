// Package pipeline implements the Markdown-to-sheet conversion stages.
//
// Stages, in the order a sheet goes through them:
//   - Markdown preprocessing (line endings, blank lines)
//   - Markdown to HTML fragment via goldmark (GFM, ==highlight==), with the
//     heading outline read from the AST
//   - Rewriting of relative links between sheets into site routes
//   - Content transform: reference styling, then column layout
//   - CSS inlining for self-contained pages and PDF export
//
// Page assembly (sidebar, templates) lives in internal/site and the root
// package. The content transform matches literal markup emitted by the
// converter in this package and must not be fed untrusted HTML.
package pipeline
