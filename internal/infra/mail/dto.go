package mail

type LeadAlertData struct {
	LeadEmail string
	FirstSeen bool
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
