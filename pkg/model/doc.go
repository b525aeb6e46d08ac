// Package model defines the typed dialog tree consumed by the designer and the
// renderers. A Project owns Dialogs; a Dialog owns an ordered list of Tabs and an
// ordered list of Blocks, each Block pointing at one Tab through TabID. Block
// order inside Dialog.Blocks is significant: it drives both the designer canvas
// and the order in which renderers emit fields.
//
// Block properties are a tagged union keyed by FieldType. Every field type has
// its own Properties variant (TextFieldProperties, SelectProperties, ...), so
// renderers switch on concrete types instead of probing loosely typed maps.
// Payloads that cannot be decoded for their type are preserved as
// RawProperties so a single malformed block never prevents a project from
// loading; renderers reject those blocks individually.
//
// The JSON shape of every type mirrors the project files written by the
// browser designer, which keeps saved projects portable in both directions.
package model
