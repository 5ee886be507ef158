package showcase

import "math"

const copyrightNotice = "© 2025 Referrly. All rights reserved."

// ShowcaseService serves the static marketing content rendered around the waitlist form.
type ShowcaseService interface {
	Companies() CompanyGridResponse
	ReferralSteps() ReferralStepsResponse
	Download() DownloadResponse
}

type showcaseService struct{}

func NewShowcaseService() ShowcaseService {
	return &showcaseService{}
}

func (s *showcaseService) Companies() CompanyGridResponse {
	tiles := make([]CompanyResponse, 0, len(companies))
	for i, company := range companies {
		tiles = append(tiles, CompanyResponse{
			Name:         company.Name,
			LogoURL:      company.LogoURL,
			AltText:      company.Name + " logo",
			DelaySeconds: roundDelay(float64(i) * CompanyStaggerSeconds),
		})
	}

	return CompanyGridResponse{
		Heading:        "Get Referred in Top Companies🚀",
		StaggerSeconds: CompanyStaggerSeconds,
		Companies:      tiles,
	}
}

func (s *showcaseService) ReferralSteps() ReferralStepsResponse {
	sections := make([]ReferralSectionResponse, 0, len(referralSections))
	for i, section := range referralSections {
		steps := make([]ReferralStepResponse, 0, len(section.Steps))
		for _, step := range section.Steps {
			steps = append(steps, ReferralStepResponse{Title: step.Title, Description: step.Description})
		}

		sections = append(sections, ReferralSectionResponse{
			Title:        section.Title,
			DelaySeconds: roundDelay(float64(i) * SectionDelayStepSeconds),
			Steps:        steps,
		})
	}

	return ReferralStepsResponse{
		Heading:  "How it works?",
		Sections: sections,
	}
}

func (s *showcaseService) Download() DownloadResponse {
	badges := make([]StoreBadgeResponse, 0, len(storeBadges))
	for _, badge := range storeBadges {
		badges = append(badges, StoreBadgeResponse(badge))
	}

	return DownloadResponse{
		Heading:      "Get the App 🚀 - Launching Soon!",
		LaunchStatus: "Launching Soon",
		Pitch:        "Experience the best of Referrly on your phone. Launching soon for both Android and iOS, stay tuned!",
		Badges:       badges,
		Waitlist: WaitlistPitch{
			Brand:       "Referrly",
			Tagline:     "Revolutionizing referrals. Join the waitlist and be the first to experience Referrly.",
			Heading:     "Subscribe to Our Waitlist",
			Subheading:  "Get notified as soon as we launch!",
			Placeholder: "Enter your email",
			SubmitLabel: "Subscribe",
		},
		Copyright: copyrightNotice,
	}
}

// Float products like 3*0.1 drift; the renderer wants clean values.
func roundDelay(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}
