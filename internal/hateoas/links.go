// Package hateoas renders the hypermedia links attached to a user in the v2
// API. Each user carries the same four relations in a fixed order, and only
// the user id varies between them. Route templates are resolved against an
// optional base URL taken from the incoming request.
package hateoas

import (
	"fmt"
	"strconv"
	"strings"

	"userResourceService/models"
)

// Route names accepted by Builder.Href.
const (
	RouteUserWithLinks = "getUserLinks"
	RouteUserOrg       = "getUserOrganisation"
	RouteUpdateUser    = "updateUser"
)

// Relation labels.
const (
	RelSelf   = "self"
	RelOrg    = "Get_users_organization"
	RelUpdate = "Update_with_PUT_method"
	RelDelete = "Delete_with_DELETE_method"
)

// routes maps operation names to path templates. "{id}" is replaced by the
// user id.
var routes = map[string]string{
	RouteUserWithLinks: "/v2/user/{id}",
	RouteUserOrg:       "/user/{id}/org",
	RouteUpdateUser:    "/v2/user/",
}

// relations lists the links of a user, in output order.
// The delete relation points at the update route, as it always has.
var relations = []struct {
	rel   string
	route string
}{
	{RelSelf, RouteUserWithLinks},
	{RelOrg, RouteUserOrg},
	{RelUpdate, RouteUpdateUser},
	{RelDelete, RouteUpdateUser},
}

// Builder renders links against an optional base URL such as
// "http://localhost:8080". With an empty base the hrefs are relative.
type Builder struct {
	base string
}

func NewBuilder(base string) Builder {
	return Builder{base: strings.TrimRight(base, "/")}
}

// Links returns the four links of user id in fixed order.
func (b Builder) Links(id uint64) []models.Link {
	out := make([]models.Link, 0, len(relations))
	for _, r := range relations {
		out = append(out, models.Link{Rel: r.rel, Href: b.Href(r.route, id)})
	}
	return out
}

// Href expands the named route for id. It panics on a route name not declared
// in this package.
func (b Builder) Href(route string, id uint64) string {
	tmpl, ok := routes[route]
	if !ok {
		panic(fmt.Sprintf("hateoas: unknown route %q", route))
	}
	path := strings.ReplaceAll(tmpl, "{id}", strconv.FormatUint(id, 10))
	return b.base + path
}

// WithLinks wraps u in its link envelope.
func (b Builder) WithLinks(u models.User) models.UserWithLinks {
	return models.UserWithLinks{User: u, Links: b.Links(u.ID)}
}
