package showcase

type CompanyResponse struct {
	Name         string  `json:"name"`
	LogoURL      string  `json:"logo_url"`
	AltText      string  `json:"alt_text"`
	DelaySeconds float64 `json:"delay_seconds"`
}

type CompanyGridResponse struct {
	Heading        string            `json:"heading"`
	StaggerSeconds float64           `json:"stagger_seconds"`
	Companies      []CompanyResponse `json:"companies"`
}

type ReferralStepResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ReferralSectionResponse struct {
	Title        string                 `json:"title"`
	DelaySeconds float64                `json:"delay_seconds"`
	Steps        []ReferralStepResponse `json:"steps"`
}

type ReferralStepsResponse struct {
	Heading  string                    `json:"heading"`
	Sections []ReferralSectionResponse `json:"sections"`
}

type StoreBadgeResponse struct {
	Store    string `json:"store"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
}

type DownloadResponse struct {
	Heading      string               `json:"heading"`
	LaunchStatus string               `json:"launch_status"`
	Pitch        string               `json:"pitch"`
	Badges       []StoreBadgeResponse `json:"badges"`
	Waitlist     WaitlistPitch        `json:"waitlist"`
	Copyright    string               `json:"copyright"`
}

type WaitlistPitch struct {
	Brand       string `json:"brand"`
	Tagline     string `json:"tagline"`
	Heading     string `json:"heading"`
	Subheading  string `json:"subheading"`
	Placeholder string `json:"placeholder"`
	SubmitLabel string `json:"submit_label"`
}
