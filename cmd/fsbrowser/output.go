package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

func sortedByPath(entries []types.Entry) []types.Entry {
	sorted := append([]types.Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

func displayName(e types.Entry) string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// printListing writes one entry per line, directories marked with a slash
func printListing(w io.Writer, entries []types.Entry, long bool) error {
	entries = sortedByPath(entries)

	if !long {
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, displayName(e)); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Type, displayName(e)) //nolint:errcheck
	}
	return tw.Flush()
}

// printTree indents each entry by its depth below base
func printTree(w io.Writer, base string, entries []types.Entry) error {
	prefix := strings.Trim(base, "/")
	if prefix != "" {
		prefix += "/"
	}

	for _, e := range sortedByPath(entries) {
		rel := strings.TrimPrefix(e.Path, prefix)
		depth := strings.Count(rel, "/")
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), displayName(e)); err != nil {
			return err
		}
	}
	return nil
}

// printPaths writes root-relative paths, one per line
func printPaths(w io.Writer, entries []types.Entry) error {
	for _, e := range sortedByPath(entries) {
		p := e.Path
		if e.IsDir() {
			p += "/"
		}
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
