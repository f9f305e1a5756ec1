package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/idelchi/topfiles/internal/dirstat"
	"github.com/idelchi/topfiles/internal/pretty"
	"github.com/idelchi/topfiles/internal/topk"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// jsonFile is the serialized form of a file, with a human-readable size.
type jsonFile struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Path string `json:"path"`
}

// PrintJSON outputs the files as a JSON array of name, size and path, largest first.
func PrintJSON(files []topk.Record, writer io.Writer) error {
	out := make([]jsonFile, 0, len(files))
	for _, f := range files {
		out = append(out, jsonFile{Name: f.Name, Size: pretty.Size(f.Size), Path: f.Path})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintPaths outputs one path per line, largest first.
func PrintPaths(files []topk.Record, writer io.Writer) error {
	for _, f := range files {
		if _, err := fmt.Fprintln(writer, f.Path); err != nil {
			return err
		}
	}

	return nil
}

// PrintTable outputs statistics in human-readable table format.
func PrintTable(stats *dirstat.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nTop files in '%s':\t\t\t\n", stats.Root)

	if len(stats.TopFiles) == 0 {
		fmt.Fprintln(w, "  No files found.\t\t\t")
	}

	for i, f := range stats.TopFiles {
		pct := 0.0
		if stats.TotalBytes > 0 {
			pct = 100.0 * float64(f.Size) / float64(stats.TotalBytes)
		}

		fmt.Fprintf(w, "  %d) %s\t'%s'\t%s\t(%.1f%%)\n", i+1, f.Name, f.Path, pretty.Size(f.Size), pct)
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\n", stats.FileCount)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", pretty.Size(stats.TotalBytes), stats.TotalBytes)

	if stats.ErrorCount > 0 {
		fmt.Fprintf(w, "Unreadable:\t%d (skipped)\n", stats.ErrorCount)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)

	return w.Flush()
}
