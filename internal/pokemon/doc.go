// Package pokemon holds the domain model shared by the catalog, the list controller and
// the TUI: list items, pages, detail records, request validation and the fetch error
// taxonomy.
package pokemon
