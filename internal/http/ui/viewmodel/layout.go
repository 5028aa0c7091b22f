package viewmodel

// User is the signed-in principal as shown in the page chrome.
type User struct {
	Name          string
	Email         string
	Role          string
	HasActivePlan bool
}

// NavItem is one sidebar link.
type NavItem struct {
	Page   string
	Label  string
	Href   string
	Icon   string
	Active bool
}

// LocaleOption is one entry of the language switcher.
type LocaleOption struct {
	Code    string
	Name    string
	Current bool
}

// Layout captures shared chrome metadata (titles, navigation, language, auth).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	Lang            string
	Dir             string
	Locales         []LocaleOption
	IsAuthenticated bool
	User            *User
	// Section is the URL prefix of the signed-in area: /dashboard, /Promoter or /Owner.
	Section string
	Nav     []NavItem
}
