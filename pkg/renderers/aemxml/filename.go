package aemxml

import "github.com/goliatone/go-aemdialog/pkg/render"

// ExportFilename derives the download name of a dialog's XML document.
func ExportFilename(dialogName string) string {
	return render.Filename(dialogName, fileExtension)
}
