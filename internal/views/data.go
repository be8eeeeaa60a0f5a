package views

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/admindash/internal/api"
	"github.com/vango-dev/admindash/pkg/loader"
	"github.com/vango-dev/admindash/pkg/vdom"
	"github.com/vango-dev/admindash/pkg/view"
)

// ErrNoAPI is the load error of data views in a catalog built without an
// API client.
var ErrNoAPI = stderrors.New("views: no data API configured")

func dataViews() map[string]entry {
	return map[string]entry{
		"apps/ecommerce/shop":         {title: "Shop", load: withProducts(shopBody)},
		"apps/ecommerce/product-list": {title: "Product List", load: withProducts(productListBody)},
		"apps/ecommerce/detail":       {title: "Product Details", load: withProducts(productDetailBody)},
		"apps/invoice/list":           {title: "Invoices", load: withInvoices(invoiceListBody)},
		"apps/invoice/detail":         {title: "Invoice Details", load: withInvoices(invoiceDetailBody)},
		CVGeneratorView:               {title: "CV Generator", load: cvGenerator},
	}
}

// withProducts loads the catalog once; every render of the view reuses it.
func withProducts(body func([]api.Product, view.Props) *vdom.VNode) func(Deps) loader.LoadFunc {
	return func(d Deps) loader.LoadFunc {
		return func(ctx context.Context) (view.Definition, error) {
			if d.API == nil {
				return nil, ErrNoAPI
			}
			products, err := d.API.Products(ctx)
			if err != nil {
				return nil, err
			}
			return view.Func(func(p view.Props) *vdom.VNode { return body(products, p) }), nil
		}
	}
}

func withInvoices(body func([]api.Invoice, view.Props) *vdom.VNode) func(Deps) loader.LoadFunc {
	return func(d Deps) loader.LoadFunc {
		return func(ctx context.Context) (view.Definition, error) {
			if d.API == nil {
				return nil, ErrNoAPI
			}
			invoices, err := d.API.Invoices(ctx)
			if err != nil {
				return nil, err
			}
			return view.Func(func(p view.Props) *vdom.VNode { return body(invoices, p) }), nil
		}
	}
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func shopBody(products []api.Product, p view.Props) *vdom.VNode {
	if cat := p.Query.Get("category"); cat != "" && cat != "All" {
		var filtered []api.Product
		for _, pr := range products {
			if strings.EqualFold(pr.Category, cat) {
				filtered = append(filtered, pr)
			}
		}
		products = filtered
	}

	return vdom.Div(vdom.Class("page"),
		pageHeader("Shop"),
		vdom.If(len(products) == 0, vdom.P(vdom.Class("empty"), "There is no Product")),
		vdom.Div(vdom.Class("product-grid"),
			vdom.Range(products, func(pr api.Product, _ int) *vdom.VNode {
				return vdom.Article(vdom.Class("card", "product-card"), vdom.Data("id", strconv.Itoa(pr.ID)),
					vdom.A(vdom.Href("/apps/ecommerce/detail/"+strconv.Itoa(pr.ID)), vdom.H4(pr.Title)),
					vdom.Div(vdom.Class("product-price"),
						vdom.Strong(money(pr.Price)),
						vdom.If(pr.SalesPrice > pr.Price, vdom.Small(vdom.Class("strike"), money(pr.SalesPrice))),
					),
					rating(pr.Rating),
				)
			}),
		),
	)
}

func productListBody(products []api.Product, _ view.Props) *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		pageHeader("Product List"),
		vdom.Table(vdom.Class("table"),
			vdom.Thead(vdom.Tr(
				vdom.Th("Product"), vdom.Th("Category"), vdom.Th("Status"), vdom.Th("Price"),
			)),
			vdom.Tbody(
				vdom.Range(products, func(pr api.Product, _ int) *vdom.VNode {
					return vdom.Tr(
						vdom.Td(vdom.A(vdom.Href("/apps/ecommerce/detail/"+strconv.Itoa(pr.ID)), pr.Title)),
						vdom.Td(pr.Category),
						vdom.Td(stockLabel(pr.Stock)),
						vdom.Td(money(pr.Price)),
					)
				}),
			),
		),
	)
}

func productDetailBody(products []api.Product, p view.Props) *vdom.VNode {
	id, err := strconv.Atoi(p.Param("id"))
	var product *api.Product
	if err == nil {
		for i := range products {
			if products[i].ID == id {
				product = &products[i]
				break
			}
		}
	}
	if product == nil {
		return vdom.Div(vdom.Class("page"),
			pageHeader("Product Details"),
			notFoundCard("No product with id "+strconv.Quote(p.Param("id"))+".", "/apps/ecommerce/shop", "Go back to Shop"),
		)
	}

	return vdom.Div(vdom.Class("page"),
		pageHeader("Product Details"),
		vdom.Article(vdom.Class("card", "product-detail"), vdom.Data("id", strconv.Itoa(product.ID)),
			vdom.Span(vdom.Class("badge", stockClass(product.Stock)), stockLabel(product.Stock)),
			vdom.Small(vdom.Class("product-category"), product.Category),
			vdom.H2(product.Title),
			vdom.P(product.Description),
			vdom.Div(vdom.Class("product-price"),
				vdom.If(product.SalesPrice > product.Price, vdom.Small(vdom.Class("strike"), money(product.SalesPrice))),
				vdom.Strong(money(product.Price)),
				vdom.If(product.Discount() > 0, vdom.Span(vdom.Class("badge", "badge--discount"), fmt.Sprintf("%d%% off", product.Discount()))),
			),
			rating(product.Rating),
			vdom.If(len(product.Colors) > 0, vdom.Div(vdom.Class("product-colors"),
				vdom.Range(product.Colors, func(c string, _ int) *vdom.VNode {
					return vdom.Span(vdom.Class("swatch"), vdom.StyleAttr("background-color: "+c), vdom.AriaLabel(c))
				}),
			)),
		),
	)
}

func invoiceListBody(invoices []api.Invoice, _ view.Props) *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		pageHeader("Invoices"),
		vdom.Table(vdom.Class("table"),
			vdom.Thead(vdom.Tr(
				vdom.Th("Id"), vdom.Th("Bill From"), vdom.Th("Bill To"), vdom.Th("Total Cost"), vdom.Th("Status"),
			)),
			vdom.Tbody(
				vdom.Range(invoices, func(inv api.Invoice, _ int) *vdom.VNode {
					href := "/apps/invoice/detail/" + strconv.Itoa(inv.ID)
					return vdom.Tr(
						vdom.Td(vdom.A(vdom.Href(href), strconv.Itoa(inv.ID))),
						vdom.Td(inv.BillFrom),
						vdom.Td(inv.BillTo),
						vdom.Td(money(inv.Total())),
						vdom.Td(vdom.Span(vdom.Class("badge", "badge--"+strings.ToLower(inv.Status)), inv.Status)),
					)
				}),
			),
		),
	)
}

func invoiceDetailBody(invoices []api.Invoice, p view.Props) *vdom.VNode {
	id, err := strconv.Atoi(p.Param("id"))
	var inv *api.Invoice
	if err == nil {
		for i := range invoices {
			if invoices[i].ID == id {
				inv = &invoices[i]
				break
			}
		}
	}
	if inv == nil {
		return vdom.Div(vdom.Class("page"),
			pageHeader("Invoice Details"),
			notFoundCard("No invoice with id "+strconv.Quote(p.Param("id"))+".", "/apps/invoice/list", "Back to Invoices"),
		)
	}

	return vdom.Div(vdom.Class("page"),
		pageHeader("Invoice Details"),
		vdom.Article(vdom.Class("card", "invoice"), vdom.Data("id", strconv.Itoa(inv.ID)),
			vdom.Div(vdom.Class("invoice-head"),
				vdom.H3("#"+strconv.Itoa(inv.ID)),
				vdom.Span(vdom.Class("badge", "badge--"+strings.ToLower(inv.Status)), inv.Status),
				vdom.Small(inv.OrderDate),
			),
			vdom.Div(vdom.Class("invoice-parties"),
				vdom.Div(vdom.Strong("Bill From"), vdom.P(inv.BillFrom)),
				vdom.Div(vdom.Strong("Bill To"), vdom.P(inv.BillTo)),
			),
			vdom.Table(vdom.Class("table"),
				vdom.Thead(vdom.Tr(vdom.Th("Item Name"), vdom.Th("Unit Price"), vdom.Th("Units"), vdom.Th("Total Cost"))),
				vdom.Tbody(
					vdom.Range(inv.Items, func(it api.InvoiceItem, _ int) *vdom.VNode {
						return vdom.Tr(
							vdom.Td(it.Name),
							vdom.Td(money(it.UnitPrice)),
							vdom.Td(strconv.Itoa(it.Units)),
							vdom.Td(money(it.Total())),
						)
					}),
				),
			),
			vdom.Div(vdom.Class("invoice-total"), vdom.Strong("Grand Total: "), money(inv.Total())),
			vdom.A(vdom.Class("btn"), vdom.Href("/apps/invoice/edit/"+strconv.Itoa(inv.ID)), "Edit Invoice"),
		),
	)
}

func notFoundCard(msg, href, label string) *vdom.VNode {
	return vdom.Div(vdom.Class("card", "not-found"),
		vdom.P(msg),
		vdom.A(vdom.Class("btn"), vdom.Href(href), label),
	)
}

func rating(n int) *vdom.VNode {
	n = min(max(n, 0), 5)
	return vdom.Span(vdom.Class("rating"), vdom.AriaLabel(strconv.Itoa(n)+" of 5"),
		strings.Repeat("★", n)+strings.Repeat("☆", 5-n),
	)
}

func stockLabel(in bool) string {
	if in {
		return "In Stock"
	}
	return "Out of Stock"
}

func stockClass(in bool) string {
	if in {
		return "badge--success"
	}
	return "badge--error"
}
