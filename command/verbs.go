package command

// Connect builds the login command.
func Connect(username, password, clientType string) *Command {
	return New(VerbConnect,
		NewElement("username").SetText(username),
		NewElement("password").SetText(password),
		NewElement("type").SetText(clientType),
	)
}

// DeviceInfo builds the getdevinfo command, which enumerates every channel the server knows.
func DeviceInfo() *Command {
	return New(VerbDeviceInfo)
}

// Status builds a getchlstatus command for targets.
func Status(targets []Target) (*Command, error) {
	return batch(VerbStatus, "status", targets, flagTrue)
}

// Inquire builds an inquire command for targets, requesting the live reading
// and barcode of each channel.
func Inquire(targets []Target) (*Command, error) {
	return batch(VerbInquire, "inquire", targets, func(el *Element) {
		el.Attr("aux", "0").Attr("barcode", "1").SetText("true")
	})
}

// InquireDF builds an inquiredf command for targets, requesting the current
// test id and number of stored datapoints of each channel.
func InquireDF(targets []Target) (*Command, error) {
	return batch(VerbInquireDF, "inquiredf", targets, flagTrue)
}

// Stop builds a stop command for targets.
func Stop(targets []Target) (*Command, error) {
	return batch(VerbStop, "stop", targets, flagTrue)
}

// ClearFlag builds a clearflag command for targets.
func ClearFlag(targets []Target) (*Command, error) {
	return batch(VerbClearFlag, "clearflag", targets, flagTrue)
}

// Light builds a light command for targets.
func Light(targets []Target) (*Command, error) {
	return batch(VerbLight, "light", targets, flagTrue)
}

// Download builds one page request for the telemetry of t, starting at record startPos.
func Download(t Target, startPos, count int) *Command {
	return New(VerbDownload, t.deviceElement("download").
		Attr("auxid", "0").
		Attr("testid", "0").
		IntAttr("startpos", startPos).
		IntAttr("count", count),
	)
}

// DownloadLog builds one page request for the event log of t.
func DownloadLog(t Target, startPos, count int) *Command {
	return New(VerbDownloadLog, t.deviceElement("download").
		Attr("testid", "0").
		IntAttr("startpos", startPos).
		IntAttr("count", count),
	)
}

// DownloadStepLayer builds one page request for the per-step summary of t.
func DownloadStepLayer(t Target, startPos, count int) *Command {
	return New(VerbDownloadStepLayer, t.deviceElement("downloadStepLayer").
		Attr("testid", "0").
		IntAttr("startpos", startPos).
		IntAttr("count", count),
	)
}
