// Package errors provides the structured error type returned by socketlib.
//
// Every failure carries a Kind (which variant of failure occurred) and an Op
// (the name of the failing operation). The rendered message is always
//
//	<Op>: <Detail>
//
// for example "BindConnection: The given address is already in use. ...".
// Callers dispatch on the Kind, never on the message text:
//
//	switch errors.KindOf(err) {
//	case errors.KindInvalidAddress:
//		// ask for a corrected literal
//	case errors.KindBind:
//		// pick another port, or close and recreate the socket
//	}
//
// The sentinels ErrSocketCreation, ErrInvalidAddress and ErrBind match any
// error of their Kind with the standard errors.Is. When the failure came from
// the operating system, Unwrap returns the errno, so errors.Is(err,
// unix.EADDRINUSE) also works.
//
// Use the Builder for structured construction:
//
//	err := errors.New("BindConnection", errors.KindBind).
//		Detail("The given address is already in use.").
//		Cause(unix.EADDRINUSE).
//		Build()
package errors
