package ui

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// notifiedMsg reports the outcome of a desktop notification
type notifiedMsg struct {
	Err error
}
