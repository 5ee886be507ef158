package showcase

// Company is one tile in the logo grid.
type Company struct {
	Name    string
	LogoURL string
}

type ReferralStep struct {
	Title       string
	Description string
}

type ReferralSection struct {
	Title string
	Steps []ReferralStep
}

type StoreBadge struct {
	Store    string
	Link     string
	ImageURL string
	AltText  string
}

const (
	// CompanyStaggerSeconds is the delay between consecutive logo tiles.
	CompanyStaggerSeconds = 0.1
	// SectionDelayStepSeconds is multiplied by the section index for its entrance delay.
	SectionDelayStepSeconds = 0.2

	appLandingURL = "https://get-referred.vercel.app/"
)

var companies = []Company{
	{Name: "Google", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/2/2f/Google_2015_logo.svg/1200px-Google_2015_logo.svg.png"},
	{Name: "Amazon", LogoURL: "https://cdn.logojoy.com/wp-content/uploads/20230629132639/current-logo-600x338.png"},
	{Name: "Microsoft", LogoURL: "https://pngimg.com/uploads/microsoft/microsoft_PNG4.png"},
	{Name: "Apple", LogoURL: "https://cdn.icon-icons.com/icons2/2699/PNG/512/apple_logo_icon_168588.png"},
	{Name: "Facebook", LogoURL: "https://banner2.cleanpng.com/20180806/xqr/b88519fb9b5d5ce25c0f2a73eab7810d.webp"},
	{Name: "Netflix", LogoURL: "https://cdn.prod.website-files.com/5ee732bebd9839b494ff27cd/5ee732bebd98393d75ff281d_580b57fcd9996e24bc43c529.png"},
	{Name: "American Express", LogoURL: "https://w7.pngwing.com/pngs/382/146/png-transparent-american-express-logo-icons-logos-emojis-iconic-brands.png"},
	{Name: "IBM", LogoURL: "https://animationvisarts.com/wp-content/uploads/2021/01/IBM-Logo-Design-1972-present.png"},
	{Name: "Intel", LogoURL: "https://logos-world.net/wp-content/uploads/2021/09/Intel-Logo-2006-2020-700x394.png"},
	{Name: "Oracle", LogoURL: "https://banner2.cleanpng.com/20180816/pqy/474842f9870048b1c2b5eb21e3b8515d.webp"},
	{Name: "Salesforce", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/f/f9/Salesforce.com_logo.svg/1280px-Salesforce.com_logo.svg.png"},
	{Name: "Adobe", LogoURL: "https://logos-world.net/wp-content/uploads/2020/06/Adobe-Logo.png"},
	{Name: "Intuit", LogoURL: "https://banner2.cleanpng.com/20180413/ijq/kisspng-intuit-logo-chief-executive-management-id-5ad051d2658c12.600728071523601874416.jpg"},
	{Name: "Uber", LogoURL: "https://download.logo.wine/logo/Uber/Uber-Logo.wine.png"},
	{Name: "Airbnb", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/6/69/Airbnb_Logo_B%C3%A9lo.svg/1200px-Airbnb_Logo_B%C3%A9lo.svg.png"},
	{Name: "Cisco", LogoURL: "https://1000logos.net/wp-content/uploads/2016/11/Cisco-logo.png"},
	{Name: "Pwc", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/f/f2/Logo-pwc.png"},
	{Name: "Atlassian", LogoURL: "https://assets.themuse.com/uploaded/companies/741/small_logo.png?v=7f5c1ad7a79da7f23abbb7b3967b320e1fe8f93c2843ce272b4d602e51474423"},
	{Name: "Sprinklr", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/7/79/Sprinklr_Logo.png"},
	{Name: "Visa", LogoURL: "https://purepng.com/public/uploads/large/purepng.com-visa-logologobrand-logoiconslogos-251519938794uqvcz.png"},
}

var referralSections = []ReferralSection{
	{
		Title: "For Job Seekers",
		Steps: []ReferralStep{
			{Title: "Step 1: Tell Us Your Dream Company", Description: "No more cold DMs. Share where you want to work, and we’ll connect you to the right referrers."},
			{Title: "Step 2: Get Matched to a Referrer", Description: "We match you with verified professionals at your target company."},
			{Title: "Step 3: Secure Your Referral", Description: "Skip the application black hole – get a referral from someone who believes in your skills."},
		},
	},
	{
		Title: "For Referrers",
		Steps: []ReferralStep{
			{Title: "Step 1: Discover Top Talent", Description: "No more DM requests. Browse job seekers aligned with your company."},
			{Title: "Step 2: Refer the Right Candidates", Description: "Don’t waste your referrals – connect top talent with real opportunities."},
			{Title: "Step 3: Earn Rewards & Build Credibility", Description: "Get rewarded for successful referrals and establish yourself as an industry expert."},
		},
	},
}

var storeBadges = []StoreBadge{
	{
		Store:    "google_play",
		Link:     appLandingURL,
		ImageURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/7/78/Google_Play_Store_badge_EN.svg/1920px-Google_Play_Store_badge_EN.svg.png",
		AltText:  "Google Play Store",
	},
	{
		Store:    "app_store",
		Link:     appLandingURL,
		ImageURL: "https://developer.apple.com/assets/elements/badges/download-on-the-app-store.svg",
		AltText:  "App Store",
	},
}
