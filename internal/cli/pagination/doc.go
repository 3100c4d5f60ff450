// Package pagination holds the paging and sorting flags shared by the list
// commands: offset/limit or page/page-size selection, "field:order" sort
// expressions and the metadata block emitted with structured output.
package pagination
