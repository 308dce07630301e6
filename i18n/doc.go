// Package i18n renders user-facing messages, such as bean construction
// failures, in the configured locale using golang.org/x/text catalogs.
//
//	tr, _ := i18n.New("de")
//	tr.Tr(i18n.MsgCannotCreate, "Repository", "connection refused")
//	// Repository kann nicht erstellt werden: connection refused
package i18n
