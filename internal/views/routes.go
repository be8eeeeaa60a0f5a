package views

import (
	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/pkg/router"
)

// Layout keys.
const (
	LayoutFull  = "full"
	LayoutBlank = "blank"
)

// Home is where "/" lands.
const Home = "/dashboards/modern"

// NotFound is where unknown paths land.
const NotFound = "/auth/404"

// Groups returns the dashboard's route table declaration. The bare group
// owns the authentication, landing and marketing pages; the shell group
// takes everything else.
func Groups() []router.Group {
	return []router.Group{
		{Name: "shell", Layout: LayoutFull, Entries: shellEntries()},
		{
			Name:     "bare",
			Layout:   LayoutBlank,
			Prefixes: []string{"auth", "landingpage", "frontend-pages"},
			Entries:  bareEntries(),
		},
	}
}

func shellEntries() []router.Entry {
	return []router.Entry{
		{Path: "/", Redirect: "/dashboards/modern"},
		{Path: "/dashboards/modern", View: "dashboard/modern"},
		{Path: "/dashboards/ecommerce", View: "dashboard/ecommerce"},
		{Path: "/apps/chats", View: "apps/chat"},
		{Path: "/apps/notes", View: "apps/notes"},
		{Path: "/apps/calendar", View: "apps/calendar"},
		{Path: "/apps/email", View: "apps/email"},
		{Path: "/apps/tickets", View: "apps/tickets"},
		{Path: "/apps/contacts", View: "apps/contacts"},
		{Path: "/apps/ecommerce/shop", View: "apps/ecommerce/shop"},
		{Path: "/apps/ecommerce/eco-product-list", View: "apps/ecommerce/product-list"},
		{Path: "/apps/ecommerce/eco-checkout", View: "apps/ecommerce/checkout"},
		{Path: "/apps/ecommerce/add-product", View: "apps/ecommerce/add-product"},
		{Path: "/apps/ecommerce/edit-product", View: "apps/ecommerce/edit-product"},
		{Path: "/apps/ecommerce/detail/:id", View: "apps/ecommerce/detail"},
		{Path: "/apps/kanban", View: "apps/kanban"},
		{Path: "/apps/cv-generator", View: "apps/cv-generator"},
		{Path: "/apps/invoice/list", View: "apps/invoice/list"},
		{Path: "/apps/invoice/create", View: "apps/invoice/create"},
		{Path: "/apps/invoice/detail/:id", View: "apps/invoice/detail"},
		{Path: "/apps/invoice/edit/:id", View: "apps/invoice/edit"},
		{Path: "/apps/followers", View: "apps/user-profile/followers"},
		{Path: "/apps/friends", View: "apps/user-profile/friends"},
		{Path: "/apps/gallery", View: "apps/user-profile/gallery"},
		{Path: "/user-profile", View: "apps/user-profile"},
		{Path: "/pages/casl", View: "pages/casl"},
		{Path: "/pages/pricing", View: "pages/pricing"},
		{Path: "/pages/account-settings", View: "pages/account-settings"},
		{Path: "/pages/faq", View: "pages/faq"},
		{Path: "/forms/form-elements/autocomplete", View: "forms/autocomplete"},
		{Path: "/forms/form-elements/button", View: "forms/button"},
		{Path: "/forms/form-elements/checkbox", View: "forms/checkbox"},
		{Path: "/forms/form-elements/radio", View: "forms/radio"},
		{Path: "/forms/form-elements/slider", View: "forms/slider"},
		{Path: "/forms/form-elements/date-time", View: "forms/date-time"},
		{Path: "/forms/form-elements/date-range", View: "forms/date-time"},
		{Path: "/forms/form-elements/switch", View: "forms/switch"},
		{Path: "/forms/form-tiptap", View: "forms/tiptap"},
		{Path: "/forms/form-layouts", View: "forms/layouts"},
		{Path: "/forms/form-horizontal", View: "forms/horizontal"},
		{Path: "/forms/form-vertical", View: "forms/vertical"},
		{Path: "/forms/form-custom", View: "forms/custom"},
		{Path: "/forms/form-wizard", View: "forms/wizard"},
		{Path: "/forms/form-validation", View: "forms/validation"},
		{Path: "/tables/basic", View: "tables/basic"},
		{Path: "/tables/collapsible", View: "tables/collapsible"},
		{Path: "/tables/enhanced", View: "tables/enhanced"},
		{Path: "/tables/fixed-header", View: "tables/fixed-header"},
		{Path: "/tables/pagination", View: "tables/pagination"},
		{Path: "/tables/search", View: "tables/search"},
		{Path: "/charts/line-chart", View: "charts/line"},
		{Path: "/charts/gredient-chart", View: "charts/gradient"},
		{Path: "/charts/doughnut-pie-chart", View: "charts/doughnut"},
		{Path: "/charts/area-chart", View: "charts/area"},
		{Path: "/charts/column-chart", View: "charts/column"},
		{Path: "/charts/candlestick-chart", View: "charts/candlestick"},
		{Path: "/charts/radialbar-chart", View: "charts/radialbar"},
		{Path: "/ui-components/alert", View: "ui/alert"},
		{Path: "/ui-components/accordion", View: "ui/accordion"},
		{Path: "/ui-components/avatar", View: "ui/avatar"},
		{Path: "/ui-components/chip", View: "ui/chip"},
		{Path: "/ui-components/dialog", View: "ui/dialog"},
		{Path: "/ui-components/list", View: "ui/list"},
		{Path: "/ui-components/popover", View: "ui/popover"},
		{Path: "/ui-components/rating", View: "ui/rating"},
		{Path: "/ui-components/tabs", View: "ui/tabs"},
		{Path: "/ui-components/tooltip", View: "ui/tooltip"},
		{Path: "/ui-components/transfer-list", View: "ui/transfer-list"},
		{Path: "/ui-components/typography", View: "ui/typography"},
		{Path: "/widgets/cards", View: "widgets/cards"},
		{Path: "/widgets/banners", View: "widgets/banners"},
		{Path: "/widgets/charts", View: "widgets/charts"},
		{Path: "/react-tables/basic", View: "react-tables/basic"},
		{Path: "/react-tables/column-visiblity", View: "react-tables/column-visibility"},
		{Path: "/react-tables/drag-drop", View: "react-tables/drag-drop"},
		{Path: "/react-tables/dense", View: "react-tables/dense"},
		{Path: "/react-tables/editable", View: "react-tables/editable"},
		{Path: "/react-tables/empty", View: "react-tables/empty"},
		{Path: "/react-tables/expanding", View: "react-tables/expanding"},
		{Path: "/react-tables/filter", View: "react-tables/filtering"},
		{Path: "/react-tables/pagination", View: "react-tables/pagination"},
		{Path: "/react-tables/row-selection", View: "react-tables/row-selection"},
		{Path: "/react-tables/sorting", View: "react-tables/sorting"},
		{Path: "/react-tables/sticky", View: "react-tables/sticky"},
		{Path: "/muicharts/barcharts", View: "muicharts/bar"},
		{Path: "/muicharts/gaugecharts", View: "muicharts/gauge"},
		{Path: "/muicharts/linecharts/area", View: "muicharts/area"},
		{Path: "/muicharts/linecharts/line", View: "muicharts/line"},
		{Path: "/muicharts/piecharts", View: "muicharts/pie"},
		{Path: "/muicharts/scattercharts", View: "muicharts/scatter"},
		{Path: "/muicharts/sparklinecharts", View: "muicharts/sparkline"},
		{Path: "/mui-trees/simpletree/simpletree-customization", View: "mui-trees/customization"},
		{Path: "/mui-trees/simpletree/simpletree-expansion", View: "mui-trees/expansion"},
		{Path: "/mui-trees/simpletree/simpletree-focus", View: "mui-trees/focus"},
		{Path: "/mui-trees/simpletree/simpletree-items", View: "mui-trees/items"},
		{Path: "/mui-trees/simpletree/simpletree-selection", View: "mui-trees/selection"},
		{Path: "*", Redirect: "/auth/404"},
	}
}

func bareEntries() []router.Entry {
	return []router.Entry{
		{Path: "/auth/404", View: "auth/error"},
		{Path: "/auth/login", View: "auth/login"},
		{Path: "/auth/login2", View: "auth/login2"},
		{Path: "/auth/register", View: "auth/register"},
		{Path: "/auth/register2", View: "auth/register2"},
		{Path: "/auth/forgot-password", View: "auth/forgot-password"},
		{Path: "/auth/forgot-password2", View: "auth/forgot-password2"},
		{Path: "/auth/two-steps", View: "auth/two-steps"},
		{Path: "/auth/two-steps2", View: "auth/two-steps2"},
		{Path: "/auth/maintenance", View: "auth/maintenance"},
		{Path: "/landingpage", View: "pages/landingpage"},
		{Path: "/frontend-pages/homepage", View: "frontend/homepage"},
		{Path: "/frontend-pages/about", View: "frontend/about"},
		{Path: "/frontend-pages/contact", View: "frontend/contact"},
		{Path: "/frontend-pages/portfolio", View: "frontend/portfolio"},
		{Path: "/frontend-pages/pricing", View: "frontend/pricing"},
		{Path: "/frontend-pages/blog", View: "frontend/blog"},
		{Path: "/frontend-pages/blog/detail/:id", View: "frontend/blog-post"},
		{Path: "*", Redirect: "/auth/404"},
	}
}

// NewTable builds the route table and checks it against c.
func NewTable(c *Catalog) (*router.Table, error) {
	table, err := router.Build(Groups()...)
	if err != nil {
		return nil, errors.New("D100").WithDetail(err.Error()).Wrap(err)
	}
	if c != nil {
		if err := c.Check(table); err != nil {
			return nil, err
		}
	}
	return table, nil
}
