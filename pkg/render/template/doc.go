// Package template defines the template engine seam renderers depend on, so a
// renderer can be built over the bundled go-template adapter or over any
// engine a caller injects.
package template
