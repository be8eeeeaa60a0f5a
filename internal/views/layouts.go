package views

import (
	"strings"

	"github.com/vango-dev/admindash/pkg/loader"
	"github.com/vango-dev/admindash/pkg/vdom"
)

type menuItem struct {
	label string
	href  string
}

type menuSection struct {
	title string
	items []menuItem
}

var menu = []menuSection{
	{"Home", []menuItem{
		{"Modern", "/dashboards/modern"},
		{"eCommerce", "/dashboards/ecommerce"},
	}},
	{"Apps", []menuItem{
		{"CV Generator", "/apps/cv-generator"},
		{"Chats", "/apps/chats"},
		{"Notes", "/apps/notes"},
		{"Calendar", "/apps/calendar"},
		{"Email", "/apps/email"},
		{"Tickets", "/apps/tickets"},
		{"Contacts", "/apps/contacts"},
		{"Shop", "/apps/ecommerce/shop"},
		{"Product List", "/apps/ecommerce/eco-product-list"},
		{"Invoices", "/apps/invoice/list"},
		{"Kanban", "/apps/kanban"},
		{"User Profile", "/user-profile"},
	}},
	{"Pages", []menuItem{
		{"Roll Base Access", "/pages/casl"},
		{"Pricing", "/pages/pricing"},
		{"Account Settings", "/pages/account-settings"},
		{"FAQ", "/pages/faq"},
		{"Landing Page", "/landingpage"},
	}},
	{"Forms", []menuItem{
		{"Form Elements", "/forms/form-elements/autocomplete"},
		{"Form Layouts", "/forms/form-layouts"},
		{"Form Wizard", "/forms/form-wizard"},
		{"Form Validation", "/forms/form-validation"},
		{"Tiptap Editor", "/forms/form-tiptap"},
	}},
	{"Tables", []menuItem{
		{"Basic", "/tables/basic"},
		{"Enhanced", "/tables/enhanced"},
		{"React Tables", "/react-tables/basic"},
	}},
	{"Charts", []menuItem{
		{"Line", "/charts/line-chart"},
		{"Area", "/charts/area-chart"},
		{"MUI Charts", "/muicharts/barcharts"},
	}},
	{"Auth", []menuItem{
		{"Login", "/auth/login"},
		{"Register", "/auth/register"},
		{"Error", "/auth/404"},
		{"Maintenance", "/auth/maintenance"},
	}},
}

// FullLayout is the dashboard shell: header, sidebar menu and content area.
// The header carries the reload control.
func FullLayout(ch Chrome, content *vdom.VNode) *vdom.VNode {
	return vdom.Div(vdom.Class("layout", "layout--full"),
		vdom.Header(vdom.Class("topbar"),
			vdom.A(vdom.Class("brand"), vdom.Href(Home), ch.AppName),
			vdom.Form(vdom.Class("topbar-reload"),
				vdom.Method("post"),
				vdom.Action(loader.ReloadAction),
				vdom.Input(vdom.Type("hidden"), vdom.Name("to"), vdom.Value(ch.Path)),
				vdom.Button(vdom.Type("submit"), vdom.AriaLabel("Reload"), "Reload"),
			),
		),
		vdom.Aside(vdom.Class("sidebar"),
			vdom.Nav(
				vdom.Range(menu, func(s menuSection, _ int) *vdom.VNode {
					return vdom.Div(vdom.Class("sidebar-section"),
						vdom.Small(vdom.Class("sidebar-caption"), s.title),
						vdom.Ul(
							vdom.Range(s.items, func(it menuItem, _ int) *vdom.VNode {
								return vdom.Li(
									vdom.A(vdom.Href(it.href), activeClass(ch.Path, it.href), it.label),
								)
							}),
						),
					)
				}),
			),
		),
		vdom.Main(vdom.Class("page-wrapper"), content),
	)
}

// BlankLayout centers content with no chrome.
func BlankLayout(_ Chrome, content *vdom.VNode) *vdom.VNode {
	return vdom.Div(vdom.Class("layout", "layout--blank"),
		vdom.Main(content),
	)
}

func activeClass(path, href string) vdom.Attr {
	if path == href || strings.HasPrefix(path, href+"/") {
		return vdom.Class("sidebar-link", "active")
	}
	return vdom.Class("sidebar-link")
}
