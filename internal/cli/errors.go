// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/taibuivan/yomira-reader/internal/platform/apperr"
)

// describe flattens validation details into a single line for the terminal.
func describe(err error) error {
	appError := apperr.As(err)
	if appError == nil || len(appError.Details) == 0 {
		return err
	}

	fields := lo.Map(appError.Details, func(detail apperr.FieldError, _ int) string {
		return detail.Field + ": " + detail.Message
	})
	return errors.New(appError.Message + " (" + strings.Join(fields, "; ") + ")")
}
