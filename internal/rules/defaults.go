package rules

// Tables is the raw, uncompiled form of the rule data
type Tables struct {
	SuspiciousTLDs    []string `yaml:"suspicious_tlds"`
	LegitimateDomains []string `yaml:"legitimate_domains"`
	DisposableDomains []string `yaml:"disposable_domains"`
	PhishingPatterns  []string `yaml:"phishing_patterns"`
}

var defaultSuspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".click", ".link",
}

var defaultLegitimateDomains = []string{
	"google.com", "gmail.com", "youtube.com", "facebook.com",
	"twitter.com", "instagram.com", "linkedin.com", "github.com",
	"microsoft.com", "apple.com", "amazon.com", "netflix.com",
	"spotify.com", "paypal.com", "wikipedia.org", "reddit.com",
	"stackoverflow.com", "w3schools.com", "mdn.mozilla.org",
	"lovable.dev", "vercel.com", "netlify.com",
}

var defaultDisposableDomains = []string{
	"tempmail.com", "throwaway.email", "mailinator.com",
	"guerrillamail.com", "yopmail.com", "trashmail.com",
	"sharklasers.com", "guerrillamailblock.com",
}

// Patterns are matched case-insensitively and unanchored against the
// whole lowercased address.
var defaultPhishingPatterns = []string{
	`noreply@.*\.(tk|ml|ga|cf|gq)`,
	`support@.*free\.com`,
	`security.*alert@`,
	`account.*verify@`,
	`urgent.*action@`,
}

// DefaultTables returns a fresh copy of the built-in rule data
func DefaultTables() Tables {
	return Tables{
		SuspiciousTLDs:    clone(defaultSuspiciousTLDs),
		LegitimateDomains: clone(defaultLegitimateDomains),
		DisposableDomains: clone(defaultDisposableDomains),
		PhishingPatterns:  clone(defaultPhishingPatterns),
	}
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
