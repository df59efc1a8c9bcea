package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRequestCmd(opts *Options) *cobra.Command {
	var (
		data    string
		filters []string
	)
	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send an arbitrary request",
		Long: `Send one request through the client pipeline and print the decoded body.

  ruwler request GET /campaigns --filter page=2
  ruwler request POST /tokens --data '{"name":"ci"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilters(filters)
			if err != nil {
				return err
			}
			var body any
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data is not valid JSON")
				}
				body = json.RawMessage(data)
			}

			ctx := cmd.Context()
			s, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			resp, err := s.client.Send(ctx, strings.ToUpper(args[0]), args[1], body, f)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Query filter key=value (repeatable)")
	return cmd
}
