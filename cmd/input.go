package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"
)

// readInput reads stdin for "-" and downloads anything else with afs.
func readInput(ctx context.Context, URL string) ([]byte, error) {
	if URL == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("read %v: %w", URL, err)
	}
	return data, nil
}
