package inputs

//
// Default inputs
//

import "github.com/proars/Test-DNS-Speed/internal/model"

// DefaultResolvers returns the list of well known public resolvers we
// test when the user does not provide their own list.
func DefaultResolvers() []model.Resolver {
	return []model.Resolver{
		{Address: "8.8.8.8", Label: "Google Public DNS"},
		{Address: "1.1.1.1", Label: "Cloudflare DNS"},
		{Address: "9.9.9.9", Label: "Quad9 DNS"},
		{Address: "208.67.222.222", Label: "OpenDNS"},
	}
}

// DefaultDomains returns the list of popular domains we test when the
// user does not provide their own list.
func DefaultDomains() []string {
	return []string{
		"example.com", "google.com", "amazon.com", "apple.com", "microsoft.com",
		"facebook.com", "yahoo.com", "wikipedia.org", "github.com", "stackoverflow.com",
		"netflix.com", "reddit.com", "linkedin.com", "bing.com", "quora.com",
		"twitter.com", "instagram.com", "nytimes.com", "cnn.com", "bbc.com",
		"whatsapp.com", "tiktok.com", "paypal.com", "ebay.com", "adobe.com",
		"dropbox.com", "cloudflare.com", "spotify.com", "pinterest.com", "zoom.us",
		"salesforce.com", "wordpress.com", "medium.com", "bitbucket.org", "archive.org",
		"live.com", "msn.com", "weebly.com", "mozilla.org", "oracle.com",
		"booking.com", "airbnb.com", "twitch.tv", "imgur.com", "duckduckgo.com",
		"ikea.com", "hulu.com", "bloomberg.com", "forbes.com", "telegram.org",
	}
}
