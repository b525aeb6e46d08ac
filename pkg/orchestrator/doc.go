// Package orchestrator wires project decoding, dialog selection, optional
// transformers and the renderer registry into a single Generate call, with
// dependency injection friendly options for each stage.
package orchestrator
