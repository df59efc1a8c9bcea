package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ruwler/ruwler-go/httpclient"
)

// printResponse writes the decoded body, indented, followed by a newline.
func printResponse(w io.Writer, resp *httpclient.Response) error {
	if s, ok := resp.Data.AsString(); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	raw, err := resp.Data.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// parseFilters turns repeated key=value flags into filters.
func parseFilters(pairs []string) (httpclient.Filters, error) {
	f := httpclient.Filters{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", p)
		}
		f[k] = v
	}
	return f, nil
}
