package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	domquery "github.com/kailas-cloud/aspectmind/internal/domain/search/query"
	"github.com/kailas-cloud/aspectmind/internal/session"
	analyticsuc "github.com/kailas-cloud/aspectmind/internal/usecase/analytics"
	comparisonuc "github.com/kailas-cloud/aspectmind/internal/usecase/comparison"
	feedbackuc "github.com/kailas-cloud/aspectmind/internal/usecase/feedback"
)

func searchCmd(g *globalFlags) *cobra.Command {
	var (
		category     string
		minSentiment float64
		sortBy       string
		compareTop   int
	)

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search products by desired qualities",
		Example: `  aspectmind search "tasty milk but cool design"
  aspectmind search --sort sentiment --min-sentiment 0.2 --compare 3 cereal`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := cliEnv(g)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			sess := session.New(uuid.NewString(), client, session.Options{Logger: logger})
			defer sess.Close()

			if category != "" {
				sess.ToggleCategory(category)
			}
			if cmd.Flags().Changed("min-sentiment") {
				if err := sess.SetMinSentiment(&minSentiment); err != nil {
					return err
				}
			}
			mode, err := domquery.ParseSortMode(sortBy)
			if err != nil {
				return err
			}
			if err := sess.SetSortMode(mode); err != nil {
				return err
			}

			res, err := sess.SubmitSearch(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return userError(err)
			}
			out := cmd.OutOrStdout()
			renderSearch(out, res)

			if compareTop <= 0 {
				return nil
			}
			for i, p := range res.Products() {
				if i == compareTop {
					break
				}
				if _, err := sess.ToggleProduct(p.ID()); err != nil {
					// selection full
					break
				}
			}
			report, err := sess.OpenComparison(cmd.Context())
			if err != nil {
				return userError(err)
			}
			fmt.Fprintln(out)
			renderComparison(out, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Restrict results to one category")
	cmd.Flags().Float64Var(&minSentiment, "min-sentiment", 0, "Minimum sentiment score in [-1, 1]")
	cmd.Flags().StringVar(&sortBy, "sort", string(domquery.Relevance), "Sort mode: relevance, sentiment or name")
	cmd.Flags().IntVar(&compareTop, "compare", 0, "Compare the top N results (2-4)")
	return cmd
}

func compareCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compare PRODUCT_ID PRODUCT_ID [PRODUCT_ID...]",
		Short: "Compare 2 to 4 products side by side",
		Args:  cobra.RangeArgs(domain.MinCompare, domain.MaxSelection),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := cliEnv(g)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ids := make([]product.ID, len(args))
			for i, a := range args {
				ids[i] = product.ID(a)
			}
			report, err := comparisonuc.New(client, logger).Request(cmd.Context(), ids)
			if err != nil {
				return userError(err)
			}
			renderComparison(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func analyticsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show the dataset summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := cliEnv(g)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			snap, err := analyticsuc.New(client, logger).Load(cmd.Context())
			if err != nil {
				return userError(err)
			}
			renderAnalytics(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

func analyzeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze TEXT...",
		Short: "Extract aspect sentiment from free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := cliEnv(g)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return nil
			}
			set, err := client.AnalyzeText(cmd.Context(), text)
			if err != nil {
				return userError(err)
			}
			renderSignals(cmd.OutOrStdout(), set)
			return nil
		},
	}
}

func feedbackCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback PRODUCT_ID TEXT...",
		Short: "Submit feedback for a product",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := cliEnv(g)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc := feedbackuc.New(client, nil, logger)
			rc, err := svc.Submit(cmd.Context(), product.ID(args[0]), strings.Join(args[1:], " "))
			if err != nil {
				return userError(err)
			}
			renderReceipt(cmd.OutOrStdout(), rc)
			return nil
		},
	}
}

// userError keeps the wrapped chain for logs but shows the component's message.
func userError(err error) error {
	return fmt.Errorf("%s (%w)", domain.UserMessage(err), err)
}
