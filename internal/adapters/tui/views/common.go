package views

import (
	"errors"

	"daybook/internal/application"
	"daybook/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool

	// AuthRequired is set once a load fails for lack of a session
	AuthRequired bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// SetError shows err, switching to the sign in notice when it is an auth failure
func (s *ViewState) SetError(err error) {
	if errors.Is(err, application.ErrAuthRequired) {
		s.AuthRequired = true
	}
	s.SetMessage(err.Error(), true)
}

// CloseHelpMsg returns to the view that was active before help opened
type CloseHelpMsg struct{}

// EditContentMsg asks the app to open an entry's content in $EDITOR
type EditContentMsg struct {
	Entry domain.DatedEntry
}

// ContentEditedMsg carries the saved editor buffer back to the calendar
type ContentEditedMsg struct {
	Entry   domain.DatedEntry
	Content string
	Err     error
}
