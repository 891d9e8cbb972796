// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import "github.com/taibuivan/inkwell/internal/platform/apperr"

// InvalidForm is the toast shown when a submission fails validation.
const InvalidForm = "Please fix the errors before submitting"

/*
Failure publishes an error toast for a failed operation and returns err.

Validation errors get [InvalidForm]. Other application errors show their
client-safe message, except 5xx errors which show fallback. Anything else
shows fallback.
*/
func Failure(notifier Notifier, userID string, err error, fallback string) error {
	message := fallback
	if appErr := apperr.As(err); appErr != nil {
		switch {
		case appErr.Code == apperr.CodeValidation:
			message = InvalidForm
		case appErr.HTTPStatus < 500:
			message = appErr.Message
		}
	}
	notifier.Notify(userID, KindError, message)
	return err
}
