package showcase

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/referrly/config/router"
	"github.com/akeren/referrly/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowcaseService_Companies(t *testing.T) {
	grid := NewShowcaseService().Companies()

	require.Len(t, grid.Companies, 20)
	assert.Equal(t, "Google", grid.Companies[0].Name)
	assert.Equal(t, "Google logo", grid.Companies[0].AltText)
	assert.Equal(t, "Visa", grid.Companies[19].Name)
	assert.Equal(t, 0.1, grid.StaggerSeconds)
	assert.Equal(t, 0.0, grid.Companies[0].DelaySeconds)
	assert.Equal(t, 0.3, grid.Companies[3].DelaySeconds)
	assert.Equal(t, 1.9, grid.Companies[19].DelaySeconds)
}

func TestShowcaseService_ReferralSteps(t *testing.T) {
	steps := NewShowcaseService().ReferralSteps()

	require.Len(t, steps.Sections, 2)
	assert.Equal(t, "For Job Seekers", steps.Sections[0].Title)
	assert.Equal(t, "For Referrers", steps.Sections[1].Title)
	assert.Equal(t, 0.0, steps.Sections[0].DelaySeconds)
	assert.Equal(t, 0.2, steps.Sections[1].DelaySeconds)

	for _, section := range steps.Sections {
		assert.Len(t, section.Steps, 3)
	}
}

func TestShowcaseService_Download(t *testing.T) {
	service := NewShowcaseService()

	download := service.Download()

	assert.Equal(t, "Launching Soon", download.LaunchStatus)
	assert.Len(t, download.Badges, 2)
	assert.Equal(t, "Subscribe to Our Waitlist", download.Waitlist.Heading)
	assert.Equal(t, "© 2025 Referrly. All rights reserved.", download.Copyright)
}

func TestShowcaseController_Routes(t *testing.T) {
	rs := router.CreateRouterService(log.NewLoggerWithJSONOutput(), nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewShowcaseController(NewShowcaseService()))

	for _, path := range []string{"/v1/showcase/companies", "/v1/showcase/steps", "/v1/showcase/download"} {
		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotNil(t, body["data"], path)
	}
}
