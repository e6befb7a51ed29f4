package transfer

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/promptfile"
)

// ExportArchive renders records as a zip of Markdown files, one per record,
// named after the sanitized record name. Duplicate file names get a numeric
// suffix so no entry shadows another.
func ExportArchive(records []catalog.Record, selectedIDs []string) ([]byte, error) {
	bundle := Export(records, selectedIDs)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]int)
	for _, rec := range bundle.Records() {
		name := filestore.SanitizeName(rec.Name)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n)
		} else {
			seen[name] = 1
		}

		w, err := zw.Create(name + ".md")
		if err != nil {
			return nil, fmt.Errorf("transfer: create archive entry %q: %w", name, err)
		}
		if _, err := w.Write([]byte(promptfile.Encode(&rec))); err != nil {
			return nil, fmt.Errorf("transfer: write archive entry %q: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("transfer: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
