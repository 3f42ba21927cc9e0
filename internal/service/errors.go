package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shinyyama/teamchat-backend/internal/reqctx"
	"go.uber.org/zap"
)

// Every error returned by this package wraps exactly one of these kinds.
var (
	ErrValidation = errors.New("invalid input")
	ErrPermission = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func permissionError(msg string) error {
	return fmt.Errorf("%w: %s", ErrPermission, msg)
}

// notFoundError reads naturally: notFoundError("message") -> "message not found".
func notFoundError(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// storageError logs the underlying failure and hides it behind ErrStorage.
func storageError(ctx context.Context, logger *zap.Logger, op string, err error) error {
	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	if rid := reqctx.RID(ctx); rid != "" {
		fields = append(fields, zap.String("rid", rid))
	}
	logger.Error("storage failure", fields...)
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
