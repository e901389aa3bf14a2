package document

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/quill/internal/rows"
)

// applyDiff turns store's lines into want with a line-level diff. A deletion
// followed by an insertion replaces rows in place before inserting or
// deleting the remainder. It returns the number of rows touched.
func applyDiff(store *rows.Store, want []string) int {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(store.String(), joinLines(want))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	row, edited := 0, 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			row += len(splitLines(d.Text))
		case diffmatchpatch.DiffDelete:
			deleted := len(splitLines(d.Text))
			var inserted []string
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				inserted = splitLines(diffs[i+1].Text)
				i++
			}
			n := min(deleted, len(inserted))
			for j := range n {
				store.SetRowContent(row+j, inserted[j])
			}
			row += n
			for range deleted - n {
				store.DeleteRow(row)
			}
			for _, line := range inserted[n:] {
				store.InsertRow(row, line)
				row++
			}
			edited += max(deleted, len(inserted))
		case diffmatchpatch.DiffInsert:
			for _, line := range splitLines(d.Text) {
				store.InsertRow(row, line)
				row++
				edited++
			}
		}
	}
	return edited
}

// joinLines matches rows.Store.String: every line ends with a newline.
func joinLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
