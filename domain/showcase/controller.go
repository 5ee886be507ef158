package showcase

import (
	"github.com/akeren/referrly/config/router"
)

func NewShowcaseController(service ShowcaseService) *router.RESTController {
	return router.NewVersionedRESTController(
		"ShowcaseController",
		"v1",
		"/showcase",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, nil, "companies", func(ctx *router.RequestContext) *router.ServiceResult {
				return router.OKResult(service.Companies(), "Companies retrieved successfully")
			})

			rs.AddGetHandler(c, nil, "steps", func(ctx *router.RequestContext) *router.ServiceResult {
				return router.OKResult(service.ReferralSteps(), "Referral steps retrieved successfully")
			})

			rs.AddGetHandler(c, nil, "download", func(ctx *router.RequestContext) *router.ServiceResult {
				return router.OKResult(service.Download(), "Download details retrieved successfully")
			})
		},
	)
}
