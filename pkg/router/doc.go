// Package router implements the dashboard's declarative route table.
//
// A Table is built once from a list of groups and never changes afterwards.
// Each group owns a layout and a list of entries:
//
//	shell := router.Group{
//	    Name:   "shell",
//	    Layout: "full",
//	    Entries: []router.Entry{
//	        {Path: "/", Redirect: "/dashboards/modern"},
//	        {Path: "/dashboards/modern", View: "dashboards/modern"},
//	        {Path: "/apps/ecommerce/detail/:id", View: "apps/ecommerce/detail"},
//	        {Path: "*", Redirect: "/auth/404"},
//	    },
//	}
//
// # Matching
//
// Resolution picks exactly one group by the first path segment (a group
// without prefixes is the default), then tries that group's entries in
// declaration order. Segments are matched literally, except:
//
//	:id        → captures one segment as params["id"]
//	:id:int    → captures one segment of digits
//	*          → matches the remaining segments (params["*"])
//
// The group's catch-all entry is only consulted once every other entry has
// failed to match.
//
// # Usage
//
//	table, err := router.Build(shell, bare)
//	res, err := table.Resolve("/apps/ecommerce/detail/42")
//	if res.Redirect != "" {
//	    // issue a navigation to res.Redirect
//	}
//	// res.View == "apps/ecommerce/detail", res.Params["id"] == "42"
package router
