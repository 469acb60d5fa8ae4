package handlers

// ShortenRequest is the request body for creating a short URL. minutes == 0
// creates a permanent mapping; a positive value creates a cache-only mapping
// with that lifetime.
type ShortenRequest struct {
	Body struct {
		URL     string `doc:"The URL to shorten"                 example:"https://example.com/very/long/path" format:"uri" json:"url" maxLength:"2048"`
		Minutes int    `doc:"Lifetime in minutes, 0 = permanent" example:"0"                                  json:"minutes,omitempty" maximum:"525960" minimum:"0"`
	}
}

// ShortenResponse is the response for a successfully created short URL.
type ShortenResponse struct {
	Body struct {
		Code         string `doc:"The short code"     example:"aZ3k9"                        json:"code"`
		OriginalURL  string `doc:"The original URL"   example:"https://example.com/very/long/path" json:"original_url"`
		ShortenedURL string `doc:"The full short URL" example:"https://sl.example/aZ3k9"     json:"shortened_url"`
	}
}

// RedirectRequest is the request for redirecting a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aZ3k9" path:"code"`
}

// RedirectResponse carries the 302 redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
