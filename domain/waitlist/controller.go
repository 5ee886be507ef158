package waitlist

import (
	"net/http"

	"github.com/akeren/referrly/config/router"
	apperrors "github.com/akeren/referrly/pkg/errors"
)

func NewWaitlistController(service WaitlistService, sessions *SessionRegistry) *router.RESTController {
	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, nil, "subscriptions", submitHandler(sessions))
			rs.AddGetHandler(c, nil, "status", statusHandler(sessions))
			rs.AddGetHandler(c, nil, "subscribers/count", subscriberCountHandler(service))
		},
	)
}

func submitHandler(sessions *SessionRegistry) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubscribeRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		sessionID, form := sessions.Acquire(router.SessionID(ctx))
		ctx.Header(router.SessionHeader, sessionID)

		outcome, err := form.SubmitInput(ctx.Request.Context(), req.Email)
		response := ToSubmissionResponse(sessionID, outcome, form)

		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				response,
			)
		}

		statusCode := http.StatusOK
		if outcome == OutcomeSubscribed {
			statusCode = http.StatusCreated
		}

		return &router.ServiceResult{
			StatusCode: statusCode,
			Data:       response,
			Message:    outcome.Message(),
		}
	}
}

func statusHandler(sessions *SessionRegistry) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		sessionID := router.SessionID(ctx)
		if sessionID == "" {
			return router.BadRequestResult("Missing "+router.SessionHeader+" header", nil)
		}

		form, ok := sessions.Lookup(sessionID)
		if !ok {
			return router.NotFoundResult("Waitlist session not found")
		}

		return router.OKResult(ToStatusResponse(sessionID, form), "Waitlist status retrieved successfully")
	}
}

func subscriberCountHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		count, err := service.SubscriberCount(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(SubscriberCountResponse{Count: count}, "Subscriber count retrieved successfully")
	}
}
