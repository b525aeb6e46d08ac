// Package aemxml serializes dialogs into the AEM cq:dialog XML dialect.
//
// The package has three layers. Escape makes text attribute-safe. RenderBlock
// turns one block into an XML fragment by dispatching on its field type
// through a component table; multifields reuse the same table for their
// nested components, restricted to textfield, textarea, select and pathfield.
// RenderDialog wraps the per-tab fragments into the dialog container
// structure. A block that fails to render is replaced by an XML comment and
// reported through render.RenderOptions.OnBlockError; the rest of the
// document is still produced.
//
// Output is deterministic: rendering the same dialog twice yields identical
// bytes.
package aemxml
