package service

import (
	"errors"

	"gorm.io/gorm"

	"go-bizmanager/pkg/apperror"
)

// notFound turns a missing row into a NotFound error and passes anything else through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s not found", what)
	}
	return err
}

// conflict turns a unique-key violation into a Conflict error.
func conflict(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("%s", message)
	}
	return err
}

func requireAdmin(actor interface{ IsAdmin() bool }, action string) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("Access denied: only an administrator can %s", action)
	}
	return nil
}
