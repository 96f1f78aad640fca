package config

const (
	// DefaultDatabasePath is the default path for the vocabulary database
	DefaultDatabasePath = "./lexscheduler.db"

	DefaultLingvoAPIURL  = "https://developers.lingvolive.com/api/v1/"
	DefaultLingvoAuthURL = "https://developers.lingvolive.com/api/v1.1/"

	// Default language pair: English -> Russian
	DefaultSourceLang      = 1033
	DefaultDestinationLang = 1049
)
