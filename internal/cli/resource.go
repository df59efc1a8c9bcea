package cli

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/ruwler/ruwler-go"
	"github.com/ruwler/ruwler-go/validation"
)

// newResourceCmd builds "<name> list|get" and, where the collection has
// one, "<name> <sub> ID".
func newResourceCmd(opts *Options, e ruwler.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.Name,
		Short: fmt.Sprintf("Read %s (%s)", e.Name, e.Path),
	}

	var (
		page, perPage int
		filters       []string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of " + e.Name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := validation.New().
				Min("page", page, 0).
				Range("per-page", perPage, 0, ruwler.MaxItemsPerPage).
				Validate()
			if err != nil {
				return err
			}
			f, err := parseFilters(filters)
			if err != nil {
				return err
			}
			if page > 0 || perPage > 0 {
				for k, v := range ruwler.PageFilters(page, perPage) {
					f[k] = v
				}
			}

			ctx := cmd.Context()
			s, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			r, _ := s.client.Resource(e.Name)
			resp, err := r.List(ctx, f)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	list.Flags().IntVar(&page, "page", 0, "Page number")
	list.Flags().IntVar(&perPage, "per-page", 0, fmt.Sprintf("Items per page (max %d)", ruwler.MaxItemsPerPage))
	list.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Query filter key=value (repeatable)")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Fetch one item of " + e.Name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			r, _ := s.client.Resource(e.Name)
			resp, err := r.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.AddCommand(list, get)

	if e.Sub != "" {
		cmd.AddCommand(&cobra.Command{
			Use:   e.Sub + " ID",
			Short: fmt.Sprintf("Fetch %s/{id}/%s", e.Path, e.Sub),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				s, err := opts.open(ctx)
				if err != nil {
					return err
				}
				defer s.close(ctx)

				path := e.Path + "/" + url.PathEscape(args[0]) + "/" + e.Sub
				resp, err := s.client.Send(ctx, http.MethodGet, path, nil, nil)
				if err != nil {
					return err
				}
				return printResponse(cmd.OutOrStdout(), resp)
			},
		})
	}
	return cmd
}
