package version

const (
	// AppName is the bot's display name.
	AppName = "sunetbot"
	// AppVersion is stamped manually per release.
	AppVersion = "1.3.0"
)
