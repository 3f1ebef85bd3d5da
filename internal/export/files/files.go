package files

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
)

// Output formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatBoth = "both"
)

// Target is the destination directory and file names; empty names use the lfx defaults
type Target struct {
	Dir      string
	CSVFile  string
	JSONFile string
}

// ParseFormat normalizes an output format, defaulting to both
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		return FormatBoth, nil
	case FormatCSV, FormatJSON, FormatBoth:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want csv, json or both)", format)
	}
}

// Save writes listing in format under target and returns the written paths.
// CSV is written before JSON; a failure stops before the next file.
func Save(ctx context.Context, listing *lfx.Listing, target Target, format string) ([]string, error) {
	if listing == nil {
		return nil, fmt.Errorf("listing is nil")
	}

	var paths []string

	if format == FormatCSV || format == FormatBoth {
		path, err := listing.SaveCSV(ctx, target.Dir, target.CSVFile)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if format == FormatJSON || format == FormatBoth {
		path, err := listing.SaveJSON(ctx, target.Dir, target.JSONFile)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
