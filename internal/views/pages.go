package views

// standIns are pages rendered from a title and a description only.
var standIns = map[string]struct{ title, description string }{
	"dashboard/modern":               {"Modern Dashboard", "Revenue, customers and project overview at a glance."},
	"dashboard/ecommerce":            {"eCommerce Dashboard", "Sales, orders and payment gateway summaries."},
	"apps/chat":                      {"Chat", "Conversations with your contacts."},
	"apps/notes":                     {"Notes", "Quick notes, color coded."},
	"apps/calendar":                  {"Calendar", "Events by month, week and day."},
	"apps/email":                     {"Email", "Inbox, sent and starred mail."},
	"apps/tickets":                   {"Tickets", "Support tickets and their status."},
	"apps/contacts":                  {"Contacts", "Your address book."},
	"apps/ecommerce/checkout":        {"Checkout", "Cart, billing address and payment."},
	"apps/ecommerce/add-product":     {"Add Product", "Create a catalog item."},
	"apps/ecommerce/edit-product":    {"Edit Product", "Update a catalog item."},
	"apps/kanban":                    {"Kanban", "Tasks grouped by board column."},
	"apps/invoice/create":            {"Create Invoice", "Bill a customer."},
	"apps/invoice/edit":              {"Edit Invoice", "Change the lines of an invoice."},
	"apps/user-profile":              {"User Profile", "Profile, posts and activity."},
	"apps/user-profile/followers":    {"Followers", "People following you."},
	"apps/user-profile/friends":      {"Friends", "People you follow."},
	"apps/user-profile/gallery":      {"Gallery", "Your photos."},
	"pages/casl":                     {"Roll Base Access", "Content shown according to the signed-in role."},
	"pages/pricing":                  {"Pricing", "Plans and what they include."},
	"pages/account-settings":         {"Account Settings", "Profile, notifications, billing and security."},
	"pages/faq":                      {"FAQ", "Frequently asked questions."},
	"pages/landingpage":              {"Landing Page", "The product landing page."},
	"forms/autocomplete":             {"Autocomplete", "Inputs that suggest values as you type."},
	"forms/button":                   {"Button", "Button variants and sizes."},
	"forms/checkbox":                 {"Checkbox", "Checkbox states and colors."},
	"forms/radio":                    {"Radio", "Radio groups."},
	"forms/slider":                   {"Slider", "Range and step sliders."},
	"forms/date-time":                {"Date Time", "Date, time and range pickers."},
	"forms/switch":                   {"Switch", "Toggle switches."},
	"forms/tiptap":                   {"Tiptap Editor", "Rich text editing."},
	"forms/layouts":                  {"Form Layouts", "Common form arrangements."},
	"forms/horizontal":               {"Form Horizontal", "Labels beside their inputs."},
	"forms/vertical":                 {"Form Vertical", "Labels above their inputs."},
	"forms/custom":                   {"Form Custom", "Custom styled inputs."},
	"forms/wizard":                   {"Form Wizard", "Multi-step forms."},
	"forms/validation":               {"Form Validation", "Inline validation messages."},
	"tables/basic":                   {"Basic Table", "A plain data table."},
	"tables/collapsible":             {"Collapsible Table", "Rows that expand to show details."},
	"tables/enhanced":                {"Enhanced Table", "Sorting, selection and pagination."},
	"tables/fixed-header":            {"Fixed Header Table", "A header that stays visible while scrolling."},
	"tables/pagination":              {"Pagination Table", "Rows split into pages."},
	"tables/search":                  {"Search Table", "Rows filtered by a search box."},
	"react-tables/basic":             {"Basic React Table", "Headless table basics."},
	"react-tables/column-visibility": {"Column Visibility", "Show and hide columns."},
	"react-tables/drag-drop":         {"Drag and Drop", "Reorder rows by dragging."},
	"react-tables/dense":             {"Dense Table", "Compact rows."},
	"react-tables/editable":          {"Editable Table", "Edit cells in place."},
	"react-tables/empty":             {"Empty Table", "The empty state of a table."},
	"react-tables/expanding":         {"Expanding Table", "Nested sub-rows."},
	"react-tables/filtering":         {"Filtering Table", "Per-column filters."},
	"react-tables/pagination":        {"Pagination", "Client side pagination."},
	"react-tables/row-selection":     {"Row Selection", "Select rows with checkboxes."},
	"react-tables/sorting":           {"Sorting Table", "Sort by any column."},
	"react-tables/sticky":            {"Sticky Table", "Sticky header and columns."},
	"charts/line":                    {"Line Chart", "Trends over time."},
	"charts/gradient":                {"Gradient Chart", "A line chart with a gradient fill."},
	"charts/doughnut":                {"Doughnut & Pie Chart", "Parts of a whole."},
	"charts/area":                    {"Area Chart", "Stacked volumes over time."},
	"charts/column":                  {"Column Chart", "Grouped and stacked columns."},
	"charts/candlestick":             {"Candlestick Chart", "Open, high, low and close prices."},
	"charts/radialbar":               {"Radialbar & Radar Chart", "Progress rings and radar plots."},
	"muicharts/bar":                  {"Bar Charts", "Horizontal and vertical bars."},
	"muicharts/gauge":                {"Gauge Charts", "A single value against a range."},
	"muicharts/area":                 {"Area Charts", "Filled line series."},
	"muicharts/line":                 {"Line Charts", "Line series with markers."},
	"muicharts/pie":                  {"Pie Charts", "Pie and donut series."},
	"muicharts/scatter":              {"Scatter Charts", "Point clouds."},
	"muicharts/sparkline":            {"Sparkline Charts", "Tiny inline charts."},
	"mui-trees/customization":        {"Simple Tree Customization", "Custom icons and labels."},
	"mui-trees/expansion":            {"Simple Tree Expansion", "Controlled expansion."},
	"mui-trees/focus":                {"Simple Tree Focus", "Keyboard focus handling."},
	"mui-trees/items":                {"Simple Tree Items", "Items from data."},
	"mui-trees/selection":            {"Simple Tree Selection", "Single and multi select."},
	"ui/alert":                       {"Alert", "Inline messages by severity."},
	"ui/accordion":                   {"Accordion", "Collapsible panels."},
	"ui/avatar":                      {"Avatar", "User pictures and initials."},
	"ui/chip":                        {"Chip", "Compact tags."},
	"ui/dialog":                      {"Dialog", "Modal dialogs."},
	"ui/list":                        {"List", "Lists with icons and actions."},
	"ui/popover":                     {"Popover", "Floating content anchored to an element."},
	"ui/rating":                      {"Rating", "Star ratings."},
	"ui/tabs":                        {"Tabs", "Tabbed panels."},
	"ui/tooltip":                     {"Tooltip", "Hints on hover."},
	"ui/transfer-list":               {"Transfer List", "Move items between two lists."},
	"ui/typography":                  {"Typography", "Headings and text styles."},
	"widgets/cards":                  {"Cards", "Widget cards."},
	"widgets/banners":                {"Banners", "Widget banners."},
	"widgets/charts":                 {"Charts", "Widget charts."},
	"auth/error":                     {"Page Not Found", "This page you are looking for could not be found."},
	"auth/login":                     {"Login", "Sign in to your account."},
	"auth/login2":                    {"Login", "Sign in to your account."},
	"auth/register":                  {"Register", "Create an account."},
	"auth/register2":                 {"Register", "Create an account."},
	"auth/forgot-password":           {"Forgot Password", "We will email you a link to reset it."},
	"auth/forgot-password2":          {"Forgot Password", "We will email you a link to reset it."},
	"auth/two-steps":                 {"Two Step Verification", "Enter the code we sent to your phone."},
	"auth/two-steps2":                {"Two Step Verification", "Enter the code we sent to your phone."},
	"auth/maintenance":               {"Maintenance Mode", "The site is down for maintenance. Please check back soon."},
	"frontend/homepage":              {"Homepage", "Marketing homepage."},
	"frontend/about":                 {"About Us", "Who we are."},
	"frontend/contact":               {"Contact", "Get in touch."},
	"frontend/portfolio":             {"Portfolio", "Selected work."},
	"frontend/pricing":               {"Pricing", "Plans and pricing."},
	"frontend/blog":                  {"Blog", "Latest posts."},
	"frontend/blog-post":             {"Blog Post", "A single post."},
}
