package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/catalog"
	"github.com/rogerio-castellano/seller-dashboard/internal/dashboard"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Manage your product listings",
	}
	cmd.AddCommand(
		newProductsListCmd(a),
		newProductsStatsCmd(a),
		newProductsCreateCmd(a),
		newProductsUpdateCmd(a),
		newProductsDeleteCmd(a),
	)
	return cmd
}

func newProductsListCmd(a *app) *cobra.Command {
	var (
		search string
		sort   string
		page   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first unless --sort says otherwise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			c.SetTab(string(dashboard.TabProducts))
			c.SetSearch(search)
			c.SetSort(sort)
			c.SetPage(page)
			v := c.View(time.Now())

			out := cmd.OutOrStdout()
			if v.Products.TotalItems == 0 {
				if search != "" {
					fmt.Fprintf(out, "No products match %q\n", search)
				} else {
					fmt.Fprintln(out, "No products yet. Add one with `storefront products create`.")
				}
				return nil
			}

			t := newTable("ID", "NAME", "PRICE", "QTY", "STATUS", "LISTED")
			for _, p := range v.Products.Items {
				t.Row(
					p.ID,
					p.Name,
					fmt.Sprintf("$%.2f", p.Price),
					strconv.Itoa(p.Quantity),
					renderStatus(p.StockStatus),
					p.Listed.Local().Format("02 Jan 2006"),
				)
			}
			fmt.Fprintln(out, t.Render())
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("Page %d of %d, %d products", v.Products.Page, v.Products.TotalPages, v.Products.TotalItems)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&sort, "sort", string(catalog.SortByDate), "sort by name, price or date")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newProductsStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show inventory statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			v := c.View(time.Now())
			s := v.Stats
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, titleStyle.Render("Inventory"))
			t := newTable("METRIC", "VALUE").
				Row("Products", strconv.Itoa(s.TotalProducts)).
				Row("Units in stock", strconv.Itoa(s.TotalQuantity)).
				Row("Stock value", fmt.Sprintf("$%.2f", s.TotalRevenue)).
				Row("Average price", fmt.Sprintf("$%.2f", s.AvgPrice)).
				Row("Low stock", strconv.Itoa(s.LowStockCount)).
				Row("Out of stock", strconv.Itoa(s.OutOfStockCount))
			fmt.Fprintln(out, t.Render())

			if len(v.ValueSeries) > 0 {
				fmt.Fprintln(out, titleStyle.Render("Top products by stock value"))
				top := newTable("PRODUCT", "VALUE")
				for _, p := range v.ValueSeries {
					top.Row(p.Name, fmt.Sprintf("$%.2f", p.Value))
				}
				fmt.Fprintln(out, top.Render())
			}

			fmt.Fprintln(out, titleStyle.Render("Price distribution"))
			hist := newTable("RANGE", "PRODUCTS")
			for _, b := range v.Histogram {
				hist.Row(b.Label, strconv.Itoa(b.Count))
			}
			fmt.Fprintln(out, hist.Render())
			return nil
		},
	}
}

// productFlags are the create/update form fields.
type productFlags struct {
	form      dashboard.ProductForm
	imagePath string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.form.Name, "name", "", "product name")
	fl.StringVar(&f.form.Description, "description", "", "description")
	fl.StringVar(&f.form.Price, "price", "", "unit price")
	fl.StringVar(&f.form.Quantity, "quantity", "", "units in stock")
	fl.StringVar(&f.form.Category, "category", "", "category")
	fl.StringVar(&f.form.SubCategory, "sub-category", "", "sub-category")
	fl.StringVar(&f.form.Sizes, "sizes", "", "comma-separated sizes, e.g. S,M,L")
	fl.StringVar(&f.form.Colors, "colors", "", "comma-separated colors")
	fl.StringVar(&f.imagePath, "image", "", "path to a product image")
}

// apply copies the flags the user set onto base.
func (f *productFlags) apply(cmd *cobra.Command, base dashboard.ProductForm) (dashboard.ProductForm, error) {
	fl := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fl.Changed(name) {
			*dst = v
		}
	}
	set("name", &base.Name, f.form.Name)
	set("description", &base.Description, f.form.Description)
	set("price", &base.Price, f.form.Price)
	set("quantity", &base.Quantity, f.form.Quantity)
	set("category", &base.Category, f.form.Category)
	set("sub-category", &base.SubCategory, f.form.SubCategory)
	set("sizes", &base.Sizes, f.form.Sizes)
	set("colors", &base.Colors, f.form.Colors)

	if f.imagePath != "" {
		data, err := os.ReadFile(f.imagePath)
		if err != nil {
			return base, fmt.Errorf("read image: %w", err)
		}
		base.Image = &api.ImageUpload{Filename: filepath.Base(f.imagePath), Data: data}
	}
	return base, nil
}

func newProductsCreateCmd(a *app) *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			form, err := flags.apply(cmd, dashboard.ProductForm{})
			if err != nil {
				return err
			}
			c.OpenCreate()
			created, err := c.Create(cmd.Context(), form)
			if err != nil {
				return userError(err, "Failed to create product")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", lastNotice(c), created.Name, created.ID)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProductsUpdateCmd(a *app) *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a product; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			id := args[0]
			if err := c.OpenEdit(id); err != nil {
				return fmt.Errorf("product %s: %w", id, err)
			}
			form, err := flags.apply(cmd, c.View(time.Now()).Form.Form)
			if err != nil {
				return err
			}
			updated, err := c.Update(cmd.Context(), id, form)
			if err != nil {
				return userError(err, "Failed to update product")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", lastNotice(c), updated.Name)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProductsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			id := args[0]
			if err := c.RequestDelete(id); err != nil {
				return fmt.Errorf("product %s: %w", id, err)
			}
			out := cmd.OutOrStdout()
			if !yes {
				name := id
				if pending := c.View(time.Now()).PendingDelete; pending != nil {
					name = pending.Name
				}
				answer, err := prompt(cmd.InOrStdin(), out, fmt.Sprintf("Delete %s? [y/N]: ", name))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					c.CancelDelete()
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := c.ConfirmDelete(cmd.Context()); err != nil {
				if errors.Is(err, dashboard.ErrNoPendingDelete) {
					return err
				}
				return userError(err, "Failed to delete product")
			}
			fmt.Fprintln(out, lastNotice(c))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
