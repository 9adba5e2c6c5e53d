package viewmodel

type Layout struct {
	Page  string
	IsDev bool
	// TeardownURL is beaconed by the page when it is left.
	TeardownURL string
}
